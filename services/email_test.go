package services

import (
	"testing"
	"time"

	"juriscloud/config"
	"juriscloud/models"

	"github.com/stretchr/testify/assert"
)

func testModeConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		EmailFrom:     "noreply@juriscloud.app",
		EmailFromName: "JurisCloud",
	}
}

func TestSendEmailTestMode(t *testing.T) {
	// Test mode logs instead of sending, so no API key is needed
	err := SendEmail(testModeConfig(), &Email{
		To:       []string{"someone@test.com"},
		Subject:  "Hello",
		HTMLBody: "<p>Hi</p>",
	})
	assert.NoError(t, err)
}

func TestSendWelcomeEmail(t *testing.T) {
	user := &models.User{
		Email:     "new@test.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	assert.NoError(t, SendWelcomeEmail(testModeConfig(), user))
}

func TestSendAppointmentReminder(t *testing.T) {
	user := &models.User{Email: "owner@test.com", FirstName: "Owner"}
	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	appointment := &models.Appointment{
		Title:         "Deposition",
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
		Location:      stringPtr("Courtroom 3"),
	}

	assert.NoError(t, SendAppointmentReminder(testModeConfig(), user, appointment))
}

func stringPtr(s string) *string {
	return &s
}
