package models

import (
	"time"
)

// User represents a registered client of the consultation service. Identity
// fields are immutable after signup; there is no update or delete surface.
type User struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	ZodiacSign string    `gorm:"not null" json:"zodiac_sign"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Appointments []Appointment `gorm:"foreignKey:UserID" json:"appointments,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
