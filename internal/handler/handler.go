package handler

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"msinnov-backend/internal/calendar"
	"msinnov-backend/internal/config"
	"msinnov-backend/internal/middleware"
	"msinnov-backend/internal/model"
	"msinnov-backend/internal/store"
)

// CalendarService is the slice of the Google client the handlers need.
// Injectable so calendar failures can be simulated in tests.
type CalendarService interface {
	Configured() bool
	AuthURL() string
	Exchange(ctx context.Context, code string) error
	CreateEvent(ctx context.Context, in calendar.EventInput) (*model.CalendarEvent, error)
}

// Mailer sends one plain-text mail. Failures are the caller's problem to
// log, never to propagate.
type Mailer interface {
	Send(to, subject, body string) error
}

type Handler struct {
	store    *store.Store
	calendar CalendarService
	mailer   Mailer
	cfg      *config.Config
	log      *logrus.Logger
}

func New(st *store.Store, cal CalendarService, mail Mailer, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{store: st, calendar: cal, mailer: mail, cfg: cfg, log: log}
}

// Routes wires the full HTTP surface onto a fresh engine.
func (h *Handler) Routes(rl *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "x-admin-key", "Authorization"},
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "MSInnov backend is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	api := r.Group("/api")
	api.POST("/enquiries", middleware.RateLimit(rl), h.CreateEnquiry)
	api.POST("/appointments", middleware.RateLimit(rl), h.CreateAppointment)
	api.POST("/admin/login", h.AdminLogin)

	admin := api.Group("/admin", middleware.AdminAuth(h.cfg.AdminKey, h.cfg.AdminKeyHash, h.cfg.JWTSecret))
	admin.GET("/enquiries", h.ListEnquiries)

	oauth := r.Group("/auth")
	oauth.GET("/google", h.GoogleAuth)
	oauth.GET("/google/callback", h.GoogleCallback)
	oauth.GET("/status", h.AuthStatus)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not Found"})
	})

	return r
}
