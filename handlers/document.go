package handlers

import (
	"fmt"
	"net/http"

	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
)

// MaxUploadSize caps document uploads at 25 MB
const MaxUploadSize = 25 << 20

// ListCaseDocumentsHandler returns all documents of an owned case, newest first
func ListCaseDocumentsHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	legalCase, err := findOwnedCase(c)
	if err != nil {
		return err
	}

	documents, err := services.GetCaseDocuments(db.DB, user.ID, legalCase.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch documents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": documents})
}

// CaseDocumentChecklistHandler reports which required document categories the
// case is still missing
func CaseDocumentChecklistHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	legalCase, err := findOwnedCase(c)
	if err != nil {
		return err
	}

	var existing []string
	err = db.DB.Model(&models.Document{}).
		Where("user_id = ? AND legal_case_id = ?", user.ID, legalCase.ID).
		Distinct().
		Pluck("category", &existing).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch documents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": models.DocumentCategories,
		"missing":    services.MissingCategories(existing),
	})
}

// UploadCaseDocumentHandler accepts a multipart upload and attaches it to an
// owned case
func UploadCaseDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	legalCase, err := findOwnedCase(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return validationError(c, map[string]string{"file": "A file is required"})
	}
	if file.Size > MaxUploadSize {
		return validationError(c, map[string]string{"file": "File exceeds the 25 MB upload limit"})
	}

	category := c.FormValue("category")
	if category == "" {
		category = models.DocumentCategoryOther
	}
	if !models.IsValidDocumentCategory(category) {
		return validationError(c, map[string]string{"category": "Invalid document category"})
	}

	title := services.SanitizeText(c.FormValue("title"))

	doc, err := services.UploadCaseDocument(c.Request().Context(), db.DB, user.ID, legalCase, file, title, category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload document")
	}

	return c.JSON(http.StatusCreated, doc)
}

// DownloadDocumentHandler serves an owned document. With R2 configured the
// client is redirected to a short-lived signed URL; local storage streams the
// file directly.
func DownloadDocumentHandler(c echo.Context) error {
	doc, err := findOwnedDocument(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, remote := services.Storage.(*services.R2Storage); remote {
		url, err := services.DocumentSignedURL(ctx, doc)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate download URL")
		}
		return c.Redirect(http.StatusTemporaryRedirect, url)
	}

	reader, contentType, err := services.Storage.Get(ctx, doc.FilePath)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document file not found")
	}
	defer reader.Close()

	if contentType == "" {
		contentType = doc.MimeType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, services.SanitizeFilename(doc.FileOriginalName)))
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteDocumentHandler removes an owned document from storage and the database
func DeleteDocumentHandler(c echo.Context) error {
	doc, err := findOwnedDocument(c)
	if err != nil {
		return err
	}

	if err := services.DeleteDocument(c.Request().Context(), db.DB, doc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete document")
	}

	return c.NoContent(http.StatusNoContent)
}

// findOwnedCase loads the case in :id scoped to the current user
func findOwnedCase(c echo.Context) (*models.LegalCase, error) {
	var legalCase models.LegalCase
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&legalCase, "id = ?", c.Param("id")).Error
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}
	return &legalCase, nil
}

// findOwnedDocument loads the document in :id scoped to the current user
func findOwnedDocument(c echo.Context) (*models.Document, error) {
	var doc models.Document
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&doc, "id = ?", c.Param("id")).Error
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	return &doc, nil
}
