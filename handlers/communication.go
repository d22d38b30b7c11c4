package handlers

import (
	"net/http"

	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
)

// communicationListOptions configures the shared list controller for the
// communication log
var communicationListOptions = services.ListOptions{
	SearchColumns: []string{"subject", "content", "contact_person"},
	Order:         "communication_date DESC",
	Preloads:      []string{"Client", "LegalCase"},
}

type communicationRequest struct {
	CommunicationType string  `json:"communication_type"`
	Direction         string  `json:"direction"`
	Subject           *string `json:"subject"`
	Content           *string `json:"content"`
	ContactPerson     *string `json:"contact_person"`
	ClientID          *string `json:"client_id"`
	LegalCaseID       *string `json:"legal_case_id"`
	CommunicationDate string  `json:"communication_date"`
	FollowUpRequired  bool    `json:"follow_up_required"`
	FollowUpDate      string  `json:"follow_up_date"`
}

// ListCommunicationsHandler returns one page of the user's communication log
func ListCommunicationsHandler(c echo.Context) error {
	query := middleware.GetOwnerScopedQuery(c, db.DB)

	result, err := services.FetchPage[models.Communication](query, getListParams(c), communicationListOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch communications")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       result.Items,
		"pagination": result.Meta(),
	})
}

// CreateCommunicationHandler records a communication entry
func CreateCommunicationHandler(c echo.Context) error {
	var req communicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if !models.IsValidDirection(req.Direction) {
		return validationError(c, map[string]string{"direction": "Direction must be INBOUND or OUTBOUND"})
	}

	user := middleware.GetCurrentUser(c)
	comm := models.Communication{
		UserID:           user.ID,
		Direction:        req.Direction,
		Subject:          services.SanitizeTextPtr(req.Subject),
		Content:          services.SanitizeTextPtr(req.Content),
		ContactPerson:    services.SanitizeTextPtr(req.ContactPerson),
		FollowUpRequired: req.FollowUpRequired,
	}
	if req.CommunicationType != "" {
		comm.CommunicationType = req.CommunicationType
	}

	if req.ClientID != nil && *req.ClientID != "" {
		if !clientBelongsToUser(user.ID, *req.ClientID) {
			return validationError(c, map[string]string{"client_id": "Client not found"})
		}
		comm.ClientID = req.ClientID
	}
	if req.LegalCaseID != nil && *req.LegalCaseID != "" {
		if !caseBelongsToUser(user.ID, *req.LegalCaseID) {
			return validationError(c, map[string]string{"legal_case_id": "Case not found"})
		}
		comm.LegalCaseID = req.LegalCaseID
	}

	if req.CommunicationDate != "" {
		date, err := services.ParseDateTime(req.CommunicationDate)
		if err != nil {
			return validationError(c, map[string]string{"communication_date": err.Error()})
		}
		comm.CommunicationDate = date
	}
	if req.FollowUpDate != "" {
		date, err := services.ParseDateTime(req.FollowUpDate)
		if err != nil {
			return validationError(c, map[string]string{"follow_up_date": err.Error()})
		}
		comm.FollowUpDate = &date
	}

	if err := db.DB.Create(&comm).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record communication")
	}

	return c.JSON(http.StatusCreated, comm)
}

// DeleteCommunicationHandler removes an owned communication entry
func DeleteCommunicationHandler(c echo.Context) error {
	var comm models.Communication
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&comm, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Communication not found")
	}

	if err := db.DB.Delete(&comm).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete communication")
	}

	return c.NoContent(http.StatusNoContent)
}
