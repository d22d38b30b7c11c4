package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Communication direction constants
const (
	CommunicationDirectionInbound  = "INBOUND"
	CommunicationDirectionOutbound = "OUTBOUND"
)

// Communication records an exchange with a client or about a case
type Communication struct {
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

	CommunicationType string  `gorm:"not null;default:EMAIL" json:"communication_type"`
	Direction         string  `gorm:"not null" json:"direction"`
	Subject           *string `json:"subject,omitempty"`
	Content           *string `gorm:"type:text" json:"content,omitempty"`
	ContactPerson     *string `json:"contact_person,omitempty"`

	CommunicationDate time.Time  `gorm:"not null" json:"communication_date"`
	FollowUpRequired  bool       `gorm:"not null;default:false" json:"follow_up_required"`
	FollowUpDate      *time.Time `json:"follow_up_date,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Communication) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CommunicationDate.IsZero() {
		c.CommunicationDate = time.Now()
	}
	return nil
}

// TableName specifies the table name for Communication model
func (Communication) TableName() string {
	return "communications"
}

// IsValidDirection checks if the direction is valid
func IsValidDirection(direction string) bool {
	return direction == CommunicationDirectionInbound || direction == CommunicationDirectionOutbound
}
