package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"juriscloud/config"
	"juriscloud/db"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Client{},
		&models.LegalCase{},
		&models.Task{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.Appointment{},
		&models.Document{},
		&models.Communication{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

func createTestUser(t *testing.T, database *gorm.DB, email string) *models.User {
	hash, err := services.HashPassword("correct-horse-battery")
	assert.NoError(t, err)

	user := &models.User{
		Email:     email,
		Password:  hash,
		FirstName: "Test",
		LastName:  "Lawyer",
		IsActive:  true,
	}
	assert.NoError(t, database.Create(user).Error)
	return user
}

func stringToPtr(s string) *string {
	return &s
}
