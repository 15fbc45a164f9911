package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusPending is the status every appointment is created with. Status is a
// free-form string after that: the status-update operation stores whatever the
// owner sends.
const StatusPending = "pending"

// Appointment represents a booked consultation slot, exclusively owned by the
// user that created it.
type Appointment struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index:idx_appointments_user_created" json:"user_id"`
	Name             string    `gorm:"not null" json:"name"`
	Email            string    `gorm:"not null" json:"email"`
	Phone            string    `gorm:"type:varchar(10);not null" json:"phone"`
	Date             time.Time `gorm:"type:date;not null" json:"date"`
	Time             string    `gorm:"type:varchar(20);not null" json:"time"`
	Astrologer       string    `gorm:"not null" json:"astrologer"`
	ConsultationType string    `gorm:"not null" json:"consultation_type"`
	Status           string    `gorm:"type:varchar(50);not null;default:pending" json:"status"`
	CreatedAt        time.Time `gorm:"index:idx_appointments_user_created" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate hook to generate UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
