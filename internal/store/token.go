package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"msinnov-backend/internal/model"
)

// SaveToken upserts the single credential row. The OAuth callback overwrites
// whatever was there; the calendar client saves refreshed tokens back.
func (s *Store) SaveToken(ctx context.Context, t *model.TokenRecord) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO google_tokens (id, access_token, refresh_token, token_type, expiry, updated_at)
		 VALUES (1, $1, $2, $3, $4, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET access_token = EXCLUDED.access_token,
		     refresh_token = EXCLUDED.refresh_token,
		     token_type = EXCLUDED.token_type,
		     expiry = EXCLUDED.expiry,
		     updated_at = NOW()
		 RETURNING updated_at`,
		t.AccessToken, t.RefreshToken, t.TokenType, t.Expiry,
	).Scan(&t.UpdatedAt)
}

func (s *Store) Token(ctx context.Context) (*model.TokenRecord, error) {
	t := &model.TokenRecord{}
	err := s.pool.QueryRow(ctx,
		`SELECT access_token, refresh_token, token_type, expiry, updated_at
		 FROM google_tokens WHERE id = 1`,
	).Scan(&t.AccessToken, &t.RefreshToken, &t.TokenType, &t.Expiry, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
