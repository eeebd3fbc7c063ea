package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrConflict means the requested slot overlaps a non-cancelled booking.
	ErrConflict = errors.New("slot conflict")
	// ErrNoToken means no Google credential bundle has been stored yet.
	ErrNoToken = errors.New("no stored token")
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// 23P01 = exclusion_violation (the no-overlap constraint), 23505 = unique_violation
func isConflictViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}
