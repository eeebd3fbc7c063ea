package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 3)

	r := gin.New()
	r.POST("/x", RateLimit(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	if codes[http.StatusOK] != 3 {
		t.Errorf("expected burst of 3 allowed, got %d", codes[http.StatusOK])
	}
	if codes[http.StatusTooManyRequests] != 2 {
		t.Errorf("expected 2 throttled, got %d", codes[http.StatusTooManyRequests])
	}

	// a different client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client should be allowed, got %d", rec.Code)
	}
}
