package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"msinnov-backend/internal/model"
)

func TestAdminEnquiriesAuth(t *testing.T) {
	e := setup(t)

	if rec := e.do(t, http.MethodGet, "/api/admin/enquiries", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: expected 401, got %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/admin/enquiries", nil, map[string]string{"x-admin-key": "wrong"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: expected 401, got %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/admin/enquiries", nil, map[string]string{"x-admin-key": testAdminKey}); rec.Code != http.StatusOK {
		t.Errorf("right key: expected 200, got %d", rec.Code)
	}
}

func TestAdminEnquiriesListing(t *testing.T) {
	e := setup(t)

	marker := uuid.New().String()[:8]
	for i := 0; i < 3; i++ {
		rec := e.do(t, http.MethodPost, "/api/enquiries", map[string]any{
			"name":    fmt.Sprintf("Lister %s %d", marker, i),
			"email":   "l@example.com",
			"message": "listing test",
		}, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed enquiry: %d", rec.Code)
		}
	}

	rec := e.do(t, http.MethodGet, "/api/admin/enquiries", nil, map[string]string{"x-admin-key": testAdminKey})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	raw, _ := body["enquiries"].([]any)
	if len(raw) == 0 || len(raw) > 200 {
		t.Fatalf("expected 1..200 enquiries, got %d", len(raw))
	}

	// newest first
	var prev time.Time
	for i, it := range raw {
		enq := it.(map[string]any)
		ts, err := time.Parse(time.RFC3339Nano, enq["created_at"].(string))
		if err != nil {
			t.Fatalf("created_at parse: %v", err)
		}
		if i > 0 && ts.After(prev) {
			t.Fatal("enquiries not in descending created_at order")
		}
		prev = ts
	}
}

func TestAdminLogin(t *testing.T) {
	e := setup(t)

	if rec := e.do(t, http.MethodPost, "/api/admin/login", map[string]any{"key": "wrong"}, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: expected 401, got %d", rec.Code)
	}

	rec := e.do(t, http.MethodPost, "/api/admin/login", map[string]any{"key": testAdminKey}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := decode(t, rec)["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}

	// the minted token opens the admin surface
	rec = e.do(t, http.MethodGet, "/api/admin/enquiries", nil, map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusOK {
		t.Errorf("bearer token: expected 200, got %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/enquiries", nil, map[string]string{"Authorization": "Bearer not-a-token"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestGoogleAuthRedirect(t *testing.T) {
	e := setup(t)
	rec := e.do(t, http.MethodGet, "/auth/google", nil, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc == "" {
		t.Fatal("expected a redirect location")
	}
}

func TestGoogleCallback(t *testing.T) {
	e := setup(t)

	if rec := e.do(t, http.MethodGet, "/auth/google/callback", nil, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing code: expected 400, got %d", rec.Code)
	}

	rec := e.do(t, http.MethodGet, "/auth/google/callback?code=abc123", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(e.cal.exchange) != 1 || e.cal.exchange[0] != "abc123" {
		t.Errorf("expected code handed to exchange, got %v", e.cal.exchange)
	}

	e.cal.fail = true
	rec = e.do(t, http.MethodGet, "/auth/google/callback?code=abc123", nil, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("failed exchange: expected 500, got %d", rec.Code)
	}
}

func TestAuthStatus(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	// whatever state the table is in, a saved bundle must flip it connected
	if err := e.store.SaveToken(ctx, &model.TokenRecord{
		AccessToken:  "at",
		RefreshToken: "rt",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("save token: %v", err)
	}

	rec := e.do(t, http.MethodGet, "/auth/status", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["connected"] != true {
		t.Errorf("expected connected true, got %v", body["connected"])
	}
	if body["updated_at"] == nil {
		t.Error("expected updated_at with a stored bundle")
	}
}
