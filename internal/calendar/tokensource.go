package calendar

import (
	"context"

	"golang.org/x/oauth2"

	"msinnov-backend/internal/model"
)

// persistingTokenSource writes refreshed tokens back to the store so the
// next event creation starts from a live access token instead of
// re-refreshing on every call.
type persistingTokenSource struct {
	ctx   context.Context
	inner oauth2.TokenSource
	store TokenStore
	last  string
}

func newPersistingTokenSource(ctx context.Context, inner oauth2.TokenSource, store TokenStore, rec *model.TokenRecord) oauth2.TokenSource {
	return &persistingTokenSource{ctx: ctx, inner: inner, store: store, last: rec.AccessToken}
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.inner.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		// keep the stored refresh token if the provider omitted it
		rec := fromOAuth(tok)
		if rec.RefreshToken == "" {
			if old, err := p.store.Token(p.ctx); err == nil {
				rec.RefreshToken = old.RefreshToken
			}
		}
		if err := p.store.SaveToken(p.ctx, rec); err != nil {
			return nil, err
		}
	}
	return tok, nil
}
