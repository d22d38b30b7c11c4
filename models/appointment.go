package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status constants
const (
	AppointmentStatusScheduled = "SCHEDULED"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCancelled = "CANCELLED"
	AppointmentStatusCompleted = "COMPLETED"
)

// DefaultAppointmentType is applied when no type is supplied
const DefaultAppointmentType = "CONSULTATION"

// Appointment represents a calendar entry, optionally attached to a client and case
type Appointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner (tenant isolation)
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	ClientID *string `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	LegalCaseID *string    `gorm:"type:uuid;index" json:"legal_case_id,omitempty"`
	LegalCase   *LegalCase `gorm:"foreignKey:LegalCaseID" json:"legal_case,omitempty"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Notes       *string `gorm:"type:text" json:"notes,omitempty"`

	AppointmentType string `gorm:"not null;default:CONSULTATION" json:"appointment_type"`
	Status          string `gorm:"not null;default:SCHEDULED;index" json:"status"`

	StartDatetime time.Time `gorm:"not null;index" json:"start_datetime"`
	EndDatetime   time.Time `gorm:"not null" json:"end_datetime"`

	// Set once by the reminder job so an appointment is never notified twice
	ReminderSent bool `gorm:"not null;default:false" json:"reminder_sent"`
}

// BeforeCreate hook to generate UUID and apply creation defaults
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AppointmentStatusScheduled
	}
	if a.AppointmentType == "" {
		a.AppointmentType = DefaultAppointmentType
	}
	return nil
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// NeedsReminder reports whether the appointment qualifies for a reminder email
func (a *Appointment) NeedsReminder() bool {
	return !a.ReminderSent &&
		(a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed)
}

// IsValidAppointmentStatus checks if the status is valid
func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}
