package service

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/astroseva/backend-go/internal/database/models"
	"github.com/astroseva/backend-go/internal/database/repository"
)

// Validation errors
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("phone number must be exactly 10 digits")
	ErrPastDate     = errors.New("appointment date cannot be in the past")
	ErrInvalidDate  = errors.New("invalid appointment date")
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// BookingInput carries the client-supplied fields of a new appointment. Date
// is a calendar date in YYYY-MM-DD form.
type BookingInput struct {
	Name             string
	Email            string
	Phone            string
	Date             string
	Time             string
	Astrologer       string
	ConsultationType string
}

// AppointmentService defines the interface for appointment lifecycle logic.
// Every operation is scoped to the owning user.
type AppointmentService interface {
	Book(ownerID uint, input BookingInput) (*models.Appointment, error)
	ListForOwner(ownerID uint) ([]models.Appointment, error)
	UpdateStatus(ownerID uint, appointmentID uuid.UUID, status string) (*models.Appointment, error)
	Cancel(ownerID uint, appointmentID uuid.UUID) error
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	logger          *slog.Logger
}

// NewAppointmentService creates a new appointment service instance
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	logger *slog.Logger,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Book validates the input and persists the appointment with status pending.
// Gates run in order, the first failure wins and nothing is written.
func (s *appointmentService) Book(ownerID uint, input BookingInput) (*models.Appointment, error) {
	s.logger.Info("📅 [AppointmentService] Booking attempt", "user_id", ownerID, "astrologer", input.Astrologer)

	date, err := s.validate(input)
	if err != nil {
		s.logger.Warn("⚠️ [AppointmentService] Booking rejected", "user_id", ownerID, "error", err)
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:           ownerID,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Date:             date,
		Time:             input.Time,
		Astrologer:       input.Astrologer,
		ConsultationType: input.ConsultationType,
		Status:           models.StatusPending,
	}

	if err := s.appointmentRepo.Create(appointment); err != nil {
		s.logger.Error("❌ [AppointmentService] Failed to create appointment", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AppointmentService] Appointment booked", "appointment_id", appointment.ID, "user_id", ownerID)
	return appointment, nil
}

// ListForOwner returns the owner's appointments, newest-created-first
func (s *appointmentService) ListForOwner(ownerID uint) ([]models.Appointment, error) {
	appointments, err := s.appointmentRepo.FindByOwner(ownerID)
	if err != nil {
		s.logger.Error("❌ [AppointmentService] Failed to list appointments", "user_id", ownerID, "error", err)
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus overwrites the status of an owned appointment. The value is
// stored as sent: there is no status enumeration and no transition table.
func (s *appointmentService) UpdateStatus(ownerID uint, appointmentID uuid.UUID, status string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.UpdateStatus(appointmentID, ownerID, status)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			s.logger.Warn("⚠️ [AppointmentService] Appointment not found for status update",
				"appointment_id", appointmentID, "user_id", ownerID)
			return nil, err
		}
		s.logger.Error("❌ [AppointmentService] Failed to update status", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AppointmentService] Status updated",
		"appointment_id", appointmentID, "user_id", ownerID, "status", status)
	return appointment, nil
}

// Cancel hard-deletes an owned appointment
func (s *appointmentService) Cancel(ownerID uint, appointmentID uuid.UUID) error {
	if err := s.appointmentRepo.Delete(appointmentID, ownerID); err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			s.logger.Warn("⚠️ [AppointmentService] Appointment not found for cancel",
				"appointment_id", appointmentID, "user_id", ownerID)
			return err
		}
		s.logger.Error("❌ [AppointmentService] Failed to cancel appointment", "error", err)
		return err
	}

	s.logger.Info("✅ [AppointmentService] Appointment cancelled", "appointment_id", appointmentID, "user_id", ownerID)
	return nil
}

// validate runs the ordered booking gates and returns the parsed calendar
// date on success.
func (s *appointmentService) validate(input BookingInput) (time.Time, error) {
	// Gate 1: presence
	required := []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"date", input.Date},
		{"time", input.Time},
		{"astrologer", input.Astrologer},
		{"consultation_type", input.ConsultationType},
	}
	for _, field := range required {
		if field.value == "" {
			return time.Time{}, fmt.Errorf("%w: %s", ErrMissingField, field.name)
		}
	}

	// Gate 2: email shape
	if !emailPattern.MatchString(input.Email) {
		return time.Time{}, ErrInvalidEmail
	}

	// Gate 3: phone shape
	if !phonePattern.MatchString(input.Phone) {
		return time.Time{}, ErrInvalidPhone
	}

	// Gate 4: calendar date, today or later. Both sides are normalized to
	// midnight so time-of-day never decides the comparison.
	date, err := time.ParseInLocation("2006-01-02", input.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, input.Date)
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, ErrPastDate
	}

	return date, nil
}
