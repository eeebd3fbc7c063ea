package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"msinnov-backend/internal/auth"
	"msinnov-backend/internal/model"
)

const enquiryListCap = 200

func (h *Handler) ListEnquiries(c *gin.Context) {
	enquiries, err := h.store.ListEnquiries(c.Request.Context(), enquiryListCap)
	if err != nil {
		h.log.WithError(err).Error("enquiry list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if enquiries == nil {
		enquiries = []model.Enquiry{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "enquiries": enquiries})
}

// AdminLogin trades the shared admin key for a short-lived bearer token.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Key string `json:"key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if h.cfg.JWTSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admin sessions are not configured"})
		return
	}
	if !auth.CheckAdminKey(req.Key, h.cfg.AdminKey, h.cfg.AdminKeyHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tok, err := auth.MakeToken(h.cfg.JWTSecret)
	if err != nil {
		h.log.WithError(err).Error("admin token mint failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": tok})
}
