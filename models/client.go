package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client type constants
const (
	ClientTypeIndividual   = "INDIVIDUAL"
	ClientTypeOrganization = "ORGANIZATION"
)

// Client represents a client of the practice, either a person or an organization
type Client struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner (tenant isolation)
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	ClientType string `gorm:"not null;default:INDIVIDUAL" json:"client_type"`

	// Individual fields
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`

	// Organization fields
	CompanyName        *string `json:"company_name,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`

	// Contact fields
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    *string `json:"country,omitempty"`

	Notes *string `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// DisplayName resolves the client name according to its type: organizations show
// the company name, individuals show first + last name
func (c *Client) DisplayName() string {
	if c.ClientType == ClientTypeOrganization {
		if c.CompanyName != nil && *c.CompanyName != "" {
			return *c.CompanyName
		}
		return "Unnamed organization"
	}

	first := ""
	if c.FirstName != nil {
		first = *c.FirstName
	}
	last := ""
	if c.LastName != nil {
		last = *c.LastName
	}
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "Unnamed client"
	}
	return name
}

// IsValidClientType checks if the client type is valid
func IsValidClientType(clientType string) bool {
	return clientType == ClientTypeIndividual || clientType == ClientTypeOrganization
}
