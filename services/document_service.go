package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"juriscloud/models"

	"gorm.io/gorm"
)

// MissingCategories computes which required document categories have no document
// yet, as the set difference against the fixed category list. Order follows the
// declared category order.
func MissingCategories(existing []string) []string {
	present := make(map[string]bool, len(existing))
	for _, cat := range existing {
		present[cat] = true
	}

	missing := make([]string, 0, len(models.DocumentCategories))
	for _, cat := range models.DocumentCategories {
		if !present[cat] {
			missing = append(missing, cat)
		}
	}
	return missing
}

// GetCaseDocuments retrieves all documents for a case, newest first
func GetCaseDocuments(db *gorm.DB, userID, caseID string) ([]models.Document, error) {
	var documents []models.Document
	err := db.Where("user_id = ? AND legal_case_id = ?", userID, caseID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case documents: %w", err)
	}
	return documents, nil
}

// UploadCaseDocument writes the file to storage under a key namespaced by
// user/case/category, then inserts the metadata row. When the row insert fails
// the just-uploaded object is removed again so storage and metadata stay
// consistent.
func UploadCaseDocument(ctx context.Context, db *gorm.DB, userID string, legalCase *models.LegalCase, file *multipart.FileHeader, title, category string) (*models.Document, error) {
	key := GenerateDocumentKey(userID, legalCase.ID, category, file.Filename)

	result, err := Storage.Upload(ctx, file, key)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	if title == "" {
		title = file.Filename
	}

	doc := &models.Document{
		UserID:           userID,
		LegalCaseID:      legalCase.ID,
		ClientID:         legalCase.ClientID,
		Title:            title,
		Category:         category,
		FilePath:         result.Key,
		FileName:         result.FileName,
		FileOriginalName: file.Filename,
		FileSize:         result.FileSize,
		MimeType:         result.MimeType,
	}

	if err := db.Create(doc).Error; err != nil {
		// Compensate: remove the uploaded object so no orphan is left behind
		if delErr := Storage.Delete(ctx, key); delErr != nil {
			log.Printf("[WARNING] Failed to remove orphaned object %s after metadata insert failure: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	return doc, nil
}

// DeleteDocument removes the storage object first, then the metadata row. When
// the storage delete fails the row is kept untouched. When the row delete fails
// after the object is already gone, the row is flagged storage_orphaned for
// reconciliation instead of leaving the mismatch undetected.
func DeleteDocument(ctx context.Context, db *gorm.DB, doc *models.Document) error {
	if err := Storage.Delete(ctx, doc.FilePath); err != nil {
		return fmt.Errorf("failed to delete storage object: %w", err)
	}

	if err := db.Delete(doc).Error; err != nil {
		if markErr := db.Model(doc).Update("storage_orphaned", true).Error; markErr != nil {
			log.Printf("[WARNING] Failed to flag document %s as storage-orphaned: %v", doc.ID, markErr)
		}
		return fmt.Errorf("failed to delete document record: %w", err)
	}

	return nil
}

// DocumentSignedURL returns a short-lived download URL for the document
func DocumentSignedURL(ctx context.Context, doc *models.Document) (string, error) {
	return Storage.GetSignedURL(ctx, doc.FilePath, SignedURLTTL)
}
