package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"juriscloud/models"

	"github.com/stretchr/testify/assert"
)

func TestMissingCategories(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		expected []string
	}{
		{
			"Nothing uploaded yet",
			nil,
			models.DocumentCategories,
		},
		{
			"Two categories covered",
			[]string{models.DocumentCategoryContracts, models.DocumentCategoryExhibits},
			[]string{
				models.DocumentCategoryCorrespondence,
				models.DocumentCategoryEvidence,
				models.DocumentCategoryPleadings,
				models.DocumentCategoryOther,
			},
		},
		{
			"All covered",
			models.DocumentCategories,
			[]string{},
		},
		{
			"Duplicates are harmless",
			[]string{models.DocumentCategoryOther, models.DocumentCategoryOther},
			[]string{
				models.DocumentCategoryContracts,
				models.DocumentCategoryExhibits,
				models.DocumentCategoryCorrespondence,
				models.DocumentCategoryEvidence,
				models.DocumentCategoryPleadings,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MissingCategories(tt.existing))
		})
	}
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(1<<20))

	_, header, err := req.FormFile("file")
	assert.NoError(t, err)
	return header
}

func TestUploadCaseDocument(t *testing.T) {
	db := newTestDB(t)
	Storage = NewLocalStorage(t.TempDir())

	legalCase := &models.LegalCase{UserID: "u1", CaseNumber: "UP-1", Title: "Case", CaseType: "CIVIL"}
	assert.NoError(t, db.Create(legalCase).Error)

	header := makeFileHeader(t, "brief final.pdf", []byte("content"))

	doc, err := UploadCaseDocument(context.Background(), db, "u1", legalCase, header, "", models.DocumentCategoryPleadings)
	assert.NoError(t, err)

	// Title falls back to the original filename
	assert.Equal(t, "brief final.pdf", doc.Title)
	assert.Equal(t, models.DocumentCategoryPleadings, doc.Category)
	assert.Equal(t, int64(len("content")), doc.FileSize)

	// The storage object exists under the namespaced key
	reader, _, err := Storage.Get(context.Background(), doc.FilePath)
	assert.NoError(t, err)
	reader.Close()

	var count int64
	db.Model(&models.Document{}).Where("id = ?", doc.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteDocument(t *testing.T) {
	db := newTestDB(t)
	Storage = NewLocalStorage(t.TempDir())

	legalCase := &models.LegalCase{UserID: "u1", CaseNumber: "DEL-1", Title: "Case", CaseType: "CIVIL"}
	assert.NoError(t, db.Create(legalCase).Error)

	header := makeFileHeader(t, "gone.txt", []byte("bye"))
	doc, err := UploadCaseDocument(context.Background(), db, "u1", legalCase, header, "Gone", models.DocumentCategoryOther)
	assert.NoError(t, err)

	assert.NoError(t, DeleteDocument(context.Background(), db, doc))

	// Both the row and the object are gone
	var count int64
	db.Model(&models.Document{}).Where("id = ?", doc.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	_, _, err = Storage.Get(context.Background(), doc.FilePath)
	assert.Error(t, err)
}

func TestUploadCaseDocumentCompensation(t *testing.T) {
	db := newTestDB(t)
	Storage = NewLocalStorage(t.TempDir())

	legalCase := &models.LegalCase{UserID: "u1", CaseNumber: "COMP-1", Title: "Case", CaseType: "CIVIL"}
	assert.NoError(t, db.Create(legalCase).Error)

	// Force the metadata insert to fail by dropping the table
	assert.NoError(t, db.Migrator().DropTable(&models.Document{}))

	header := makeFileHeader(t, "orphan.txt", []byte("orphan"))
	doc, err := UploadCaseDocument(context.Background(), db, "u1", legalCase, header, "", models.DocumentCategoryOther)
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestGetCaseDocuments(t *testing.T) {
	db := newTestDB(t)

	mustCreate := func(doc *models.Document) {
		assert.NoError(t, db.Create(doc).Error)
	}

	mustCreate(&models.Document{UserID: "u1", LegalCaseID: "case-1", Title: "A",
		FilePath: "k1", FileName: "a", FileOriginalName: "a", FileSize: 1})
	mustCreate(&models.Document{UserID: "u1", LegalCaseID: "case-1", Title: "B",
		FilePath: "k2", FileName: "b", FileOriginalName: "b", FileSize: 1})
	mustCreate(&models.Document{UserID: "u1", LegalCaseID: "case-2", Title: "Elsewhere",
		FilePath: "k3", FileName: "c", FileOriginalName: "c", FileSize: 1})
	mustCreate(&models.Document{UserID: "u2", LegalCaseID: "case-1", Title: "Foreign",
		FilePath: "k4", FileName: "d", FileOriginalName: "d", FileSize: 1})

	docs, err := GetCaseDocuments(db, "u1", "case-1")
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
}
