package store

import (
	"context"

	"msinnov-backend/internal/model"
)

func (s *Store) CreateEnquiry(ctx context.Context, e *model.Enquiry) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO enquiries (id, name, email, phone, message)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		e.ID, e.Name, e.Email, e.Phone, e.Message,
	).Scan(&e.CreatedAt)
}

// ListEnquiries returns the newest enquiries first, capped at limit.
func (s *Store) ListEnquiries(ctx context.Context, limit int) ([]model.Enquiry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, message, created_at
		 FROM enquiries
		 ORDER BY created_at DESC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Enquiry
	for rows.Next() {
		var e model.Enquiry
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
