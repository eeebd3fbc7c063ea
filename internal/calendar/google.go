// Package calendar wraps the Google Calendar v3 API behind the stored
// OAuth token bundle: consent URL, code exchange, and event creation.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"msinnov-backend/internal/config"
	"msinnov-backend/internal/model"
)

var ErrNotConfigured = errors.New("google oauth is not configured")

// TokenStore persists the single credential bundle.
type TokenStore interface {
	Token(ctx context.Context) (*model.TokenRecord, error)
	SaveToken(ctx context.Context, t *model.TokenRecord) error
}

type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

type Client struct {
	conf       *oauth2.Config
	tokens     TokenStore
	calendarID string
	location   *time.Location
}

func New(cfg *config.Config, tokens TokenStore) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		tokens:     tokens,
		calendarID: cfg.GoogleCalendarID,
		location:   cfg.Location,
	}
}

func (c *Client) Configured() bool {
	return c.conf.ClientID != "" && c.conf.ClientSecret != "" && c.conf.RedirectURL != ""
}

// AuthURL builds the consent URL. Offline access with a forced consent
// prompt so Google returns a refresh token every time.
func (c *Client) AuthURL() string {
	return c.conf.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for tokens and overwrites the
// stored bundle.
func (c *Client) Exchange(ctx context.Context, code string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("token exchange: %w", err)
	}
	return c.tokens.SaveToken(ctx, fromOAuth(tok))
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*model.CalendarEvent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	rec, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	ts := newPersistingTokenSource(ctx, c.conf.TokenSource(ctx, toOAuth(rec)), c.tokens, rec)
	srv, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}

	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start: &calendar.EventDateTime{
			DateTime: in.Start.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: in.End.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
	}
	got, err := srv.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return &model.CalendarEvent{
		ID:       got.Id,
		Status:   got.Status,
		HTMLLink: got.HtmlLink,
		Summary:  got.Summary,
		Start:    in.Start,
		End:      in.End,
	}, nil
}

func toOAuth(t *model.TokenRecord) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func fromOAuth(t *oauth2.Token) *model.TokenRecord {
	return &model.TokenRecord{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}
