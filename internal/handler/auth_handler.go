package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"msinnov-backend/internal/store"
)

// GoogleAuth redirects the operator to the provider consent page.
func (h *Handler) GoogleAuth(c *gin.Context) {
	if h.calendar == nil || !h.calendar.Configured() {
		h.log.Error("google oauth misconfigured")
		c.String(http.StatusInternalServerError, "Error generating Google auth URL")
		return
	}
	c.Redirect(http.StatusFound, h.calendar.AuthURL())
}

// GoogleCallback exchanges the authorization code and overwrites the
// stored token bundle.
func (h *Handler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Missing code")
		return
	}
	if h.calendar == nil {
		c.String(http.StatusInternalServerError, "Google OAuth failed")
		return
	}
	if err := h.calendar.Exchange(c.Request.Context(), code); err != nil {
		h.log.WithError(err).Error("google token exchange failed")
		c.String(http.StatusInternalServerError, "Google OAuth failed")
		return
	}
	c.String(http.StatusOK, "Google Calendar connected successfully. You can close this tab.")
}

// AuthStatus reports whether a token bundle is stored.
func (h *Handler) AuthStatus(c *gin.Context) {
	tok, err := h.store.Token(c.Request.Context())
	if errors.Is(err, store.ErrNoToken) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "connected": false})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("token lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "connected": true, "updated_at": tok.UpdatedAt})
}
