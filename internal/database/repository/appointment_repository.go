package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astroseva/backend-go/internal/database/models"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// AppointmentRepository defines the interface for appointment data operations.
// Every mutation is scoped to the owning user inside a single query predicate,
// so an appointment belonging to someone else is indistinguishable from one
// that does not exist.
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	FindByOwner(ownerID uint) ([]models.Appointment, error)
	UpdateStatus(id uuid.UUID, ownerID uint, status string) (*models.Appointment, error)
	Delete(id uuid.UUID, ownerID uint) error
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create persists a new appointment as a single insert
func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// FindByOwner returns all appointments of the owner, newest-created-first
func (r *appointmentRepository) FindByOwner(ownerID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus overwrites the status of the owner's appointment in one
// conditional UPDATE. Zero affected rows means no owned match.
func (r *appointmentRepository) UpdateStatus(id uuid.UUID, ownerID uint, status string) (*models.Appointment, error) {
	res := r.db.Model(&models.Appointment{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}

	var appointment models.Appointment
	if err := r.db.Where("id = ?", id).First(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Delete removes the owner's appointment in one conditional DELETE. Zero
// affected rows means no owned match.
func (r *appointmentRepository) Delete(id uuid.UUID, ownerID uint) error {
	res := r.db.
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
