package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"msinnov-backend/internal/calendar"
	"msinnov-backend/internal/config"
	"msinnov-backend/internal/handler"
	"msinnov-backend/internal/mailer"
	"msinnov-backend/internal/middleware"
	"msinnov-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.GetLogger().Fatalf("config: %v", err)
	}
	config.ApplyLogLevel(cfg.LogLevel)
	log := config.GetLogger()

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warnf("migration file not found, skipping: %v", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		log.Warnf("migration warning: %v", err)
	} else {
		log.Info("migration applied")
	}

	st := store.New(pool)

	var mail handler.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		log.Warn("SMTP_HOST not set, email notifications disabled")
	}

	gcal := calendar.New(cfg, st)
	if !gcal.Configured() {
		log.Warn("google oauth not configured, calendar events disabled")
	}

	h := handler.New(st, gcal, mail, cfg, log)
	rl := middleware.NewRateLimiter(5, 10)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Routes(rl),
	}
	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
