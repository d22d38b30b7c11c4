package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"juriscloud/middleware"
	"juriscloud/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCommunicationHandler(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "comms@test.com")

	t.Run("Success", func(t *testing.T) {
		body := `{
			"direction":"OUTBOUND",
			"communication_type":"PHONE",
			"subject":"Settlement call",
			"content":"Discussed the offer",
			"communication_date":"2026-08-20T11:00"
		}`
		_, c, rec := setupEcho(http.MethodPost, "/api/communications", strings.NewReader(body))
		c.Set(middleware.ContextKeyUser, user)

		assert.NoError(t, CreateCommunicationHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Communication
		assert.NoError(t, database.Where("user_id = ?", user.ID).First(&created).Error)
		assert.Equal(t, models.CommunicationDirectionOutbound, created.Direction)
		assert.Equal(t, "PHONE", created.CommunicationType)
	})

	t.Run("Direction required", func(t *testing.T) {
		body := `{"subject":"No direction"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/communications", strings.NewReader(body))
		c.Set(middleware.ContextKeyUser, user)

		assert.NoError(t, CreateCommunicationHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListCommunicationsHandler(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "list-comms@test.com")

	older := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	database.Create(&models.Communication{
		UserID: user.ID, Direction: models.CommunicationDirectionInbound,
		Subject: stringToPtr("Older"), CommunicationDate: older,
	})
	database.Create(&models.Communication{
		UserID: user.ID, Direction: models.CommunicationDirectionOutbound,
		Subject: stringToPtr("Newer"), CommunicationDate: newer,
	})

	_, c, rec := setupEcho(http.MethodGet, "/api/communications", nil)
	c.Set(middleware.ContextKeyUser, user)

	assert.NoError(t, ListCommunicationsHandler(c))

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 2)

	// Most recent communication first
	assert.Equal(t, "Newer", data[0].(map[string]interface{})["subject"])
}
