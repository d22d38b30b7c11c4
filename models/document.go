package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document category constants. DocumentCategories preserves the declared order,
// which the required-documents checklist depends on.
const (
	DocumentCategoryContracts      = "CONTRACTS"
	DocumentCategoryExhibits       = "EXHIBITS"
	DocumentCategoryCorrespondence = "CORRESPONDENCE"
	DocumentCategoryEvidence       = "EVIDENCE"
	DocumentCategoryPleadings      = "PLEADINGS"
	DocumentCategoryOther          = "OTHER"
)

// DocumentCategories is the fixed, ordered set of document categories
var DocumentCategories = []string{
	DocumentCategoryContracts,
	DocumentCategoryExhibits,
	DocumentCategoryCorrespondence,
	DocumentCategoryEvidence,
	DocumentCategoryPleadings,
	DocumentCategoryOther,
}

// Document represents a stored file attached to a case
type Document struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner (tenant isolation)
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	// Case relationship (required)
	LegalCaseID string     `gorm:"type:uuid;not null;index" json:"legal_case_id"`
	LegalCase   *LegalCase `gorm:"foreignKey:LegalCaseID" json:"legal_case,omitempty"`

	// Client relationship (optional)
	ClientID *string `gorm:"type:uuid;index" json:"client_id,omitempty"`

	Title    string `gorm:"not null" json:"title"`
	Category string `gorm:"not null;default:OTHER" json:"category"`

	// File metadata
	FilePath         string `gorm:"not null" json:"-"` // Not exposed in JSON for security
	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `gorm:"not null" json:"file_original_name"`
	FileSize         int64  `gorm:"not null" json:"file_size"`
	MimeType         string `json:"mime_type,omitempty"`

	IsConfidential bool `gorm:"not null;default:true" json:"is_confidential"`
	Version        int  `gorm:"not null;default:1" json:"version"`

	// Set when the metadata row could not be removed after the storage object
	// was already deleted; flagged for reconciliation instead of silently
	// diverging from storage.
	StorageOrphaned bool `gorm:"not null;default:false" json:"storage_orphaned"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Category == "" {
		d.Category = DocumentCategoryOther
	}
	return nil
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// IsValidDocumentCategory checks if the category is one of the fixed set
func IsValidDocumentCategory(category string) bool {
	for _, c := range DocumentCategories {
		if c == category {
			return true
		}
	}
	return false
}
