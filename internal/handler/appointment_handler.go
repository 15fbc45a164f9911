package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astroseva/backend-go/internal/database/repository"
	"github.com/astroseva/backend-go/internal/database/service"
)

// AppointmentHandler handles HTTP requests for appointment booking and
// management. Every route below sits behind the auth middleware.
type AppointmentHandler struct {
	service service.AppointmentService
	logger  *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service service.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs. Presence of the booking fields is checked by the service so
// that each gate reports its own error kind.
type BookAppointmentRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Astrologer       string `json:"astrologer"`
	ConsultationType string `json:"consultation_type"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Book handles POST /appointments
func (h *AppointmentHandler) Book(c *gin.Context) {
	ownerID, ok := currentUserID(c, h.logger)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid booking request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Book(ownerID, service.BookingInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Date:             req.Date,
		Time:             req.Time,
		Astrologer:       req.Astrologer,
		ConsultationType: req.ConsultationType,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment booked successfully",
		"appointment": appointment,
	})
}

// List handles GET /appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	ownerID, ok := currentUserID(c, h.logger)
	if !ok {
		return
	}

	appointments, err := h.service.ListForOwner(ownerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// UpdateStatus handles PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := currentUserID(c, h.logger)
	if !ok {
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparsable id cannot match any appointment
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid status update request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status required"})
		return
	}

	appointment, err := h.service.UpdateStatus(ownerID, appointmentID, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment status updated",
		"appointment": appointment,
	})
}

// Cancel handles DELETE /appointments/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ownerID, ok := currentUserID(c, h.logger)
	if !ok {
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if err := h.service.Cancel(ownerID, appointmentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}

// handleServiceError maps service errors to HTTP responses
func (h *AppointmentHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrPastDate),
		errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID pulls the authenticated user id set by the auth middleware
func currentUserID(c *gin.Context, logger *slog.Logger) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		logger.Error("❌ [Handler] User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}

	userIDUint, ok := userID.(uint)
	if !ok {
		logger.Error("❌ [Handler] Invalid user ID type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return 0, false
	}

	return userIDUint, true
}
