package store

import (
	"context"
	"time"

	"msinnov-backend/internal/model"
)

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, name, email, phone, starts_at, ends_at, duration_minutes, notes, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING created_at, updated_at`,
		a.ID, a.Name, a.Email, a.Phone, a.StartsAt, a.EndsAt, a.DurationMinutes, a.Notes, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		// the exclusion constraint caught a race the app-level check missed
		if isConflictViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) HasOverlap(ctx context.Context, start, end time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE status <> 'cancelled'
			  AND starts_at < $2
			  AND ends_at > $1
		)`, start, end,
	).Scan(&exists)
	return exists, err
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, starts_at, ends_at, duration_minutes,
		        notes, status, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.StartsAt, &a.EndsAt,
		&a.DurationMinutes, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
