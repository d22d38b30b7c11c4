package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen       = "OPEN"
	CaseStatusInProgress = "IN_PROGRESS"
	CaseStatusClosed     = "CLOSED"
	CaseStatusSuspended  = "SUSPENDED"
)

// Priority constants, shared by cases and tasks
const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityNormal = "NORMAL"
	PriorityLow    = "LOW"
)

// LegalCase represents a legal case (dossier)
type LegalCase struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner (tenant isolation)
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_case_number" json:"user_id"`

	// Client relationship (optional)
	ClientID *string `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Case identification
	CaseNumber  string  `gorm:"not null;uniqueIndex:idx_user_case_number" json:"case_number"`
	Title       string  `gorm:"not null" json:"title"`
	CaseType    string  `gorm:"not null" json:"case_type"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	// Status and lifecycle
	Status    string     `gorm:"not null;default:OPEN;index" json:"status"`
	Priority  string     `gorm:"not null;default:NORMAL" json:"priority"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// Court details
	OpposingParty *string `json:"opposing_party,omitempty"`
	CourtName     *string `json:"court_name,omitempty"`

	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	ActualValue    *float64 `json:"actual_value,omitempty"`

	// Relationships
	Documents []Document `gorm:"foreignKey:LegalCaseID" json:"documents,omitempty"`
}

// BeforeCreate hook to generate UUID and apply creation defaults
func (c *LegalCase) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = CaseStatusOpen
	}
	if c.Priority == "" {
		c.Priority = PriorityNormal
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Now()
	}
	return nil
}

// TableName specifies the table name for LegalCase model
func (LegalCase) TableName() string {
	return "legal_cases"
}

// IsOpen checks if the case is open
func (c *LegalCase) IsOpen() bool {
	return c.Status == CaseStatusOpen
}

// IsClosed checks if the case is closed
func (c *LegalCase) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// IsActive reports whether the case counts towards the active-case dashboard stat
func (c *LegalCase) IsActive() bool {
	return c.Status == CaseStatusOpen || c.Status == CaseStatusInProgress
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusOpen, CaseStatusInProgress, CaseStatusClosed, CaseStatusSuspended:
		return true
	}
	return false
}

// IsValidPriority checks if the priority is valid
func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}
