package handlers

import (
	"net/http"
	"strings"

	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// caseListOptions configures the shared list controller for cases
var caseListOptions = services.ListOptions{
	SearchColumns: []string{"title", "case_number", "case_type"},
	Order:         "created_at DESC",
	Preloads:      []string{"Client"},
}

type caseRequest struct {
	Title          string   `json:"title"`
	CaseNumber     string   `json:"case_number"`
	CaseType       string   `json:"case_type"`
	Description    *string  `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	ClientID       *string  `json:"client_id"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	OpposingParty  *string  `json:"opposing_party"`
	CourtName      *string  `json:"court_name"`
	EstimatedValue *float64 `json:"estimated_value"`
	ActualValue    *float64 `json:"actual_value"`
}

// ListCasesHandler returns one page of the user's cases
func ListCasesHandler(c echo.Context) error {
	query := middleware.GetOwnerScopedQuery(c, db.DB)

	result, err := services.FetchPage[models.LegalCase](query, getListParams(c), caseListOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch cases")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       result.Items,
		"pagination": result.Meta(),
	})
}

// GetCaseHandler returns one case with its client and documents
func GetCaseHandler(c echo.Context) error {
	var legalCase models.LegalCase
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Documents").
		First(&legalCase, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}
	return c.JSON(http.StatusOK, legalCase)
}

// CreateCaseHandler creates a case for the current user
func CreateCaseHandler(c echo.Context) error {
	var req caseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user := middleware.GetCurrentUser(c)

	fields := validateCaseRequest(&req)
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	if req.ClientID != nil && *req.ClientID != "" {
		if !clientBelongsToUser(user.ID, *req.ClientID) {
			return validationError(c, map[string]string{"client_id": "Client not found"})
		}
	} else {
		req.ClientID = nil
	}

	legalCase := models.LegalCase{
		UserID:         user.ID,
		ClientID:       req.ClientID,
		CaseNumber:     strings.TrimSpace(req.CaseNumber),
		Title:          services.SanitizeText(strings.TrimSpace(req.Title)),
		CaseType:       strings.TrimSpace(req.CaseType),
		Description:    services.SanitizeTextPtr(req.Description),
		Status:         req.Status,
		Priority:       req.Priority,
		OpposingParty:  services.SanitizeTextPtr(req.OpposingParty),
		CourtName:      services.SanitizeTextPtr(req.CourtName),
		EstimatedValue: req.EstimatedValue,
		ActualValue:    req.ActualValue,
	}

	if req.StartDate != "" {
		startDate, err := services.ParseDate(req.StartDate)
		if err != nil {
			return validationError(c, map[string]string{"start_date": err.Error()})
		}
		legalCase.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := services.ParseDate(req.EndDate)
		if err != nil {
			return validationError(c, map[string]string{"end_date": err.Error()})
		}
		legalCase.EndDate = &endDate
	}

	if err := db.DB.Create(&legalCase).Error; err != nil {
		if isUniqueConstraintError(err) {
			return validationError(c, map[string]string{"case_number": "Case number already in use"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create case")
	}

	return c.JSON(http.StatusCreated, legalCase)
}

// UpdateCaseHandler updates an owned case
func UpdateCaseHandler(c echo.Context) error {
	var legalCase models.LegalCase
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&legalCase, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	var req caseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields := validateCaseRequest(&req)
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	user := middleware.GetCurrentUser(c)
	if req.ClientID != nil && *req.ClientID != "" {
		if !clientBelongsToUser(user.ID, *req.ClientID) {
			return validationError(c, map[string]string{"client_id": "Client not found"})
		}
		legalCase.ClientID = req.ClientID
	} else {
		legalCase.ClientID = nil
	}

	legalCase.CaseNumber = strings.TrimSpace(req.CaseNumber)
	legalCase.Title = services.SanitizeText(strings.TrimSpace(req.Title))
	legalCase.CaseType = strings.TrimSpace(req.CaseType)
	legalCase.Description = services.SanitizeTextPtr(req.Description)
	legalCase.Status = req.Status
	legalCase.Priority = req.Priority
	legalCase.OpposingParty = services.SanitizeTextPtr(req.OpposingParty)
	legalCase.CourtName = services.SanitizeTextPtr(req.CourtName)
	legalCase.EstimatedValue = req.EstimatedValue
	legalCase.ActualValue = req.ActualValue

	if req.StartDate != "" {
		startDate, err := services.ParseDate(req.StartDate)
		if err != nil {
			return validationError(c, map[string]string{"start_date": err.Error()})
		}
		legalCase.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := services.ParseDate(req.EndDate)
		if err != nil {
			return validationError(c, map[string]string{"end_date": err.Error()})
		}
		legalCase.EndDate = &endDate
	} else {
		legalCase.EndDate = nil
	}

	if err := db.DB.Save(&legalCase).Error; err != nil {
		if isUniqueConstraintError(err) {
			return validationError(c, map[string]string{"case_number": "Case number already in use"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update case")
	}

	return c.JSON(http.StatusOK, legalCase)
}

// DeleteCaseHandler deletes an owned case
func DeleteCaseHandler(c echo.Context) error {
	var legalCase models.LegalCase
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&legalCase, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	if err := db.DB.Delete(&legalCase).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete case")
	}

	return c.NoContent(http.StatusNoContent)
}

func validateCaseRequest(req *caseRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(req.CaseNumber) == "" {
		fields["case_number"] = "Case number is required"
	}
	if strings.TrimSpace(req.CaseType) == "" {
		fields["case_type"] = "Case type is required"
	}
	if req.Status == "" {
		req.Status = models.CaseStatusOpen
	} else if !models.IsValidCaseStatus(req.Status) {
		fields["status"] = "Invalid case status"
	}
	if req.Priority == "" {
		req.Priority = models.PriorityNormal
	} else if !models.IsValidPriority(req.Priority) {
		fields["priority"] = "Invalid priority"
	}
	return fields
}

// clientBelongsToUser checks that the referenced client is owned by the user
func clientBelongsToUser(userID, clientID string) bool {
	var count int64
	db.DB.Model(&models.Client{}).
		Where("id = ? AND user_id = ?", clientID, userID).
		Count(&count)
	return count > 0
}

// isUniqueConstraintError detects a unique index violation from the driver
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
