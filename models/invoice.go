package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice status constants
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice represents a client invoice. Monetary totals are derived server-side:
// tax_amount and total_amount are recomputed from subtotal and tax_rate on every
// write and never trusted from input.
type Invoice struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner (tenant isolation)
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_invoice_number" json:"user_id"`

	// Client relationship (required)
	ClientID string  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Case relationship (optional)
	LegalCaseID *string    `gorm:"type:uuid;index" json:"legal_case_id,omitempty"`
	LegalCase   *LegalCase `gorm:"foreignKey:LegalCaseID" json:"legal_case,omitempty"`

	InvoiceNumber string `gorm:"not null;uniqueIndex:idx_user_invoice_number" json:"invoice_number"`
	Status        string `gorm:"not null;default:DRAFT;index" json:"status"`

	IssueDate time.Time `gorm:"not null" json:"issue_date"`
	DueDate   time.Time `gorm:"not null;index" json:"due_date"`

	Subtotal    float64 `gorm:"not null;default:0" json:"subtotal"`
	TaxRate     float64 `gorm:"not null;default:0" json:"tax_rate"`
	TaxAmount   float64 `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount float64 `gorm:"not null;default:0" json:"total_amount"`
	PaidAmount  float64 `gorm:"not null;default:0" json:"paid_amount"`

	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	Notes         *string    `gorm:"type:text" json:"notes,omitempty"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
}

// BeforeCreate hook to generate UUID and apply creation defaults
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = InvoiceStatusDraft
	}
	if i.IssueDate.IsZero() {
		i.IssueDate = time.Now()
	}
	return nil
}

// TableName specifies the table name for Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsOverdue reports whether the invoice is past due and still collectible
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled {
		return false
	}
	return i.DueDate.Before(now)
}

// IsValidInvoiceStatus checks if the status is valid
func IsValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceLine is a single billed item on an invoice
type InvoiceLine struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID string `gorm:"type:uuid;not null;index" json:"invoice_id"`

	Description string  `gorm:"not null" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	TotalPrice  float64 `gorm:"not null" json:"total_price"`
}

// BeforeCreate hook to generate UUID
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
