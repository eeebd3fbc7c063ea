package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"msinnov-backend/internal/model"
)

type enquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *Handler) CreateEnquiry(c *gin.Context) {
	var req enquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, message are required"})
		return
	}

	e := &model.Enquiry{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Phone:   optional(req.Phone),
		Message: message,
	}
	if err := h.store.CreateEnquiry(c.Request.Context(), e); err != nil {
		h.log.WithError(err).Error("enquiry insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	// best-effort operator notification
	if h.mailer != nil && h.cfg.NotifyTo != "" {
		body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s\n",
			e.Name, e.Email, phoneOrNA(e.Phone), e.Message)
		if err := h.mailer.Send(h.cfg.NotifyTo, "New enquiry from MSInnov website", body); err != nil {
			h.log.WithFields(logrus.Fields{"enquiry_id": e.ID}).
				WithError(err).Warn("enquiry email failed")
		}
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "enquiry": e})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func phoneOrNA(p *string) string {
	if p == nil {
		return "N/A"
	}
	return *p
}
