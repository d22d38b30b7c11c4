package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupDocumentCase(t *testing.T, database *gorm.DB, email string) (*models.User, *models.LegalCase) {
	user := createTestUser(t, database, email)
	legalCase := &models.LegalCase{
		UserID:     user.ID,
		CaseNumber: "DOC-001",
		Title:      "Documented case",
		CaseType:   "CIVIL",
	}
	assert.NoError(t, database.Create(legalCase).Error)
	return user, legalCase
}

func multipartUpload(t *testing.T, path, filename, category, title string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)

	if category != "" {
		assert.NoError(t, writer.WriteField("category", category))
	}
	if title != "" {
		assert.NoError(t, writer.WriteField("title", title))
	}
	assert.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return c, rec
}

func TestUploadCaseDocumentHandler(t *testing.T) {
	database := setupTestDB(t)
	services.Storage = services.NewLocalStorage(t.TempDir())
	user, legalCase := setupDocumentCase(t, database, "upload@test.com")

	t.Run("Success", func(t *testing.T) {
		c, rec := multipartUpload(t, "/api/cases/"+legalCase.ID+"/documents",
			"contract v1.pdf", models.DocumentCategoryContracts, "Signed contract", []byte("pdf-bytes"))
		c.SetParamNames("id")
		c.SetParamValues(legalCase.ID)
		c.Set(middleware.ContextKeyUser, user)

		assert.NoError(t, UploadCaseDocumentHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var doc models.Document
		assert.NoError(t, database.Where("legal_case_id = ?", legalCase.ID).First(&doc).Error)
		assert.Equal(t, "Signed contract", doc.Title)
		assert.Equal(t, models.DocumentCategoryContracts, doc.Category)
		assert.Equal(t, "contract v1.pdf", doc.FileOriginalName)
		assert.Equal(t, int64(len("pdf-bytes")), doc.FileSize)
		// Stored under user/case/category with a sanitized name
		assert.Contains(t, doc.FilePath, user.ID)
		assert.Contains(t, doc.FilePath, legalCase.ID)
		assert.Contains(t, doc.FilePath, models.DocumentCategoryContracts)
		assert.NotContains(t, doc.FilePath, " ")
	})

	t.Run("Invalid category rejected", func(t *testing.T) {
		c, rec := multipartUpload(t, "/api/cases/"+legalCase.ID+"/documents",
			"x.txt", "NOT_A_CATEGORY", "", []byte("x"))
		c.SetParamNames("id")
		c.SetParamValues(legalCase.ID)
		c.Set(middleware.ContextKeyUser, user)

		assert.NoError(t, UploadCaseDocumentHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing category defaults to OTHER", func(t *testing.T) {
		c, rec := multipartUpload(t, "/api/cases/"+legalCase.ID+"/documents",
			"misc.txt", "", "", []byte("misc"))
		c.SetParamNames("id")
		c.SetParamValues(legalCase.ID)
		c.Set(middleware.ContextKeyUser, user)

		assert.NoError(t, UploadCaseDocumentHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var doc models.Document
		database.Where("file_original_name = ?", "misc.txt").First(&doc)
		assert.Equal(t, models.DocumentCategoryOther, doc.Category)
	})

	t.Run("Foreign case rejected", func(t *testing.T) {
		other := createTestUser(t, database, "other-upload@test.com")

		c, _ := multipartUpload(t, "/api/cases/"+legalCase.ID+"/documents",
			"x.txt", models.DocumentCategoryOther, "", []byte("x"))
		c.SetParamNames("id")
		c.SetParamValues(legalCase.ID)
		c.Set(middleware.ContextKeyUser, other)

		err := UploadCaseDocumentHandler(c)
		assert.Error(t, err)
	})
}

func TestCaseDocumentChecklistHandler(t *testing.T) {
	database := setupTestDB(t)
	services.Storage = services.NewLocalStorage(t.TempDir())
	user, legalCase := setupDocumentCase(t, database, "checklist@test.com")

	database.Create(&models.Document{
		UserID:           user.ID,
		LegalCaseID:      legalCase.ID,
		Title:            "Contract",
		Category:         models.DocumentCategoryContracts,
		FilePath:         "k1",
		FileName:         "c.pdf",
		FileOriginalName: "c.pdf",
		FileSize:         1,
	})
	database.Create(&models.Document{
		UserID:           user.ID,
		LegalCaseID:      legalCase.ID,
		Title:            "Evidence",
		Category:         models.DocumentCategoryEvidence,
		FilePath:         "k2",
		FileName:         "e.pdf",
		FileOriginalName: "e.pdf",
		FileSize:         1,
	})

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/"+legalCase.ID+"/documents/checklist", nil)
	c.SetParamNames("id")
	c.SetParamValues(legalCase.ID)
	c.Set(middleware.ContextKeyUser, user)

	assert.NoError(t, CaseDocumentChecklistHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories []string `json:"categories"`
		Missing    []string `json:"missing"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.DocumentCategories, resp.Categories)
	assert.Equal(t, []string{
		models.DocumentCategoryExhibits,
		models.DocumentCategoryCorrespondence,
		models.DocumentCategoryPleadings,
		models.DocumentCategoryOther,
	}, resp.Missing)
}

func TestDownloadDocumentHandler(t *testing.T) {
	database := setupTestDB(t)
	services.Storage = services.NewLocalStorage(t.TempDir())
	user, legalCase := setupDocumentCase(t, database, "download@test.com")

	c, rec := multipartUpload(t, "/api/cases/"+legalCase.ID+"/documents",
		"notes.txt", models.DocumentCategoryOther, "", []byte("file-content"))
	c.SetParamNames("id")
	c.SetParamValues(legalCase.ID)
	c.Set(middleware.ContextKeyUser, user)
	assert.NoError(t, UploadCaseDocumentHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var doc models.Document
	assert.NoError(t, database.Where("legal_case_id = ?", legalCase.ID).First(&doc).Error)

	_, dc, drec := setupEcho(http.MethodGet, "/api/documents/"+doc.ID+"/download", nil)
	dc.SetParamNames("id")
	dc.SetParamValues(doc.ID)
	dc.Set(middleware.ContextKeyUser, user)

	assert.NoError(t, DownloadDocumentHandler(dc))
	assert.Equal(t, http.StatusOK, drec.Code)
	assert.Equal(t, "file-content", drec.Body.String())
	assert.Contains(t, drec.Header().Get(echo.HeaderContentDisposition), "notes.txt")
}

func TestDeleteDocumentHandler(t *testing.T) {
	database := setupTestDB(t)
	services.Storage = services.NewLocalStorage(t.TempDir())
	user, legalCase := setupDocumentCase(t, database, "delete-doc@test.com")

	// Upload through the handler so the storage object really exists
	c, rec := multipartUpload(t, "/api/cases/"+legalCase.ID+"/documents",
		"doomed.txt", models.DocumentCategoryOther, "", []byte("bye"))
	c.SetParamNames("id")
	c.SetParamValues(legalCase.ID)
	c.Set(middleware.ContextKeyUser, user)
	assert.NoError(t, UploadCaseDocumentHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var doc models.Document
	assert.NoError(t, database.Where("legal_case_id = ?", legalCase.ID).First(&doc).Error)

	_, dc, drec := setupEcho(http.MethodDelete, "/api/documents/"+doc.ID, nil)
	dc.SetParamNames("id")
	dc.SetParamValues(doc.ID)
	dc.Set(middleware.ContextKeyUser, user)

	assert.NoError(t, DeleteDocumentHandler(dc))
	assert.Equal(t, http.StatusNoContent, drec.Code)

	var count int64
	database.Model(&models.Document{}).Where("id = ?", doc.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Storage object is gone too
	_, _, err := services.Storage.Get(dc.Request().Context(), doc.FilePath)
	assert.Error(t, err)
}
