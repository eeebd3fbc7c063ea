package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"msinnov-backend/internal/calendar"
	"msinnov-backend/internal/model"
	"msinnov-backend/internal/store"
)

type appointmentRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Notes           string `json:"notes"`
	DurationMinutes *int   `json:"durationMinutes"`
}

// CreateAppointment books a slot. The insert is the authoritative write;
// the calendar event and both mails are best-effort and never fail the
// booking once the row is stored.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	date := strings.TrimSpace(req.Date)
	tm := strings.TrimSpace(req.Time)
	if name == "" || email == "" || date == "" || tm == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, date and time are required"})
		return
	}

	duration := h.cfg.MeetingDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "durationMinutes must be a positive integer"})
		return
	}

	// callers send wall-clock local time in the configured zone
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+tm, h.cfg.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or time, expected YYYY-MM-DD and HH:MM"})
		return
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	ctx := c.Request.Context()

	if dup, err := h.store.HasOverlap(ctx, start, end); err != nil {
		h.log.WithError(err).Error("overlap check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	} else if dup {
		c.JSON(http.StatusConflict, gin.H{"error": "This time slot is already booked. Please pick another time."})
		return
	}

	apt := &model.Appointment{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           email,
		Phone:           optional(req.Phone),
		StartsAt:        start,
		EndsAt:          end,
		DurationMinutes: duration,
		Notes:           optional(req.Notes),
		Status:          model.StatusPending,
	}
	if err := h.store.CreateAppointment(ctx, apt); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// a concurrent booking won the slot between check and insert
			c.JSON(http.StatusConflict, gin.H{"error": "This time slot is already booked. Please pick another time."})
			return
		}
		h.log.WithError(err).Error("appointment insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var event *model.CalendarEvent
	if h.calendar != nil {
		ev, err := h.calendar.CreateEvent(ctx, calendar.EventInput{
			Summary:     "MSInnov Appointment - " + apt.Name,
			Description: eventDescription(apt),
			Start:       start,
			End:         end,
		})
		if err != nil {
			h.log.WithFields(logrus.Fields{"appointment_id": apt.ID}).
				WithError(err).Warn("calendar event creation failed")
		} else {
			event = ev
		}
	}

	h.notifyAppointment(apt, event)

	c.JSON(http.StatusCreated, gin.H{
		"ok":            true,
		"appointment":   apt,
		"calendarEvent": event,
		"computed": gin.H{
			"startISO":        start.UTC().Format(time.RFC3339),
			"endISO":          end.UTC().Format(time.RFC3339),
			"durationMinutes": duration,
		},
	})
}

func eventDescription(a *model.Appointment) string {
	var b strings.Builder
	b.WriteString("Appointment request via MSInnov website\n\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\n\n", a.Name, a.Email, phoneOrNA(a.Phone))
	if a.Notes != nil {
		fmt.Fprintf(&b, "Notes:\n%s\n\n", *a.Notes)
	}
	fmt.Fprintf(&b, "Appointment ID: %s\n", a.ID)
	return b.String()
}

// notifyAppointment sends the requester and operator mails. The two sends
// fail independently and neither touches the booking outcome.
func (h *Handler) notifyAppointment(a *model.Appointment, event *model.CalendarEvent) {
	if h.mailer == nil {
		return
	}

	when := fmt.Sprintf("%s (%s) for %d minutes",
		a.StartsAt.In(h.cfg.Location).Format("Monday, 2 January 2006 at 3:04 PM"),
		h.cfg.Location, a.DurationMinutes)

	link := ""
	if event != nil && event.HTMLLink != "" {
		link = fmt.Sprintf("Calendar event link:\n%s\n\n", event.HTMLLink)
	}
	notes := ""
	if a.Notes != nil {
		notes = fmt.Sprintf("Notes:\n%s\n\n", *a.Notes)
	}

	clientBody := fmt.Sprintf(
		"Hi %s,\n\nThank you for booking an appointment with MSInnov.\n\n"+
			"Requested time: %s.\n\n"+
			"We will review this request and send further details shortly.\n\n"+
			"Details you submitted:\nName: %s\nEmail: %s\nPhone: %s\n\n%s%s"+
			"Regards,\nMSInnov",
		a.Name, when, a.Name, a.Email, phoneOrNA(a.Phone), notes, link)
	if err := h.mailer.Send(a.Email, "Your appointment request with MSInnov", clientBody); err != nil {
		h.log.WithFields(logrus.Fields{"appointment_id": a.ID, "to": "client"}).
			WithError(err).Warn("appointment email failed")
	}

	if h.cfg.NotifyTo == "" {
		return
	}
	ownerBody := fmt.Sprintf(
		"New appointment request via MSInnov website.\n\n"+
			"Requested time: %s.\n\n"+
			"Client details:\nName: %s\nEmail: %s\nPhone: %s\n\n%s"+
			"Appointment ID: %s\n%s",
		when, a.Name, a.Email, phoneOrNA(a.Phone), notes, a.ID, link)
	if err := h.mailer.Send(h.cfg.NotifyTo, "New appointment request from "+a.Name, ownerBody); err != nil {
		h.log.WithFields(logrus.Fields{"appointment_id": a.ID, "to": "operator"}).
			WithError(err).Warn("appointment email failed")
	}
}
