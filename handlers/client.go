package handlers

import (
	"net/http"
	"strings"

	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
)

// clientListOptions configures the shared list controller for clients
var clientListOptions = services.ListOptions{
	SearchColumns: []string{"first_name", "last_name", "company_name", "email", "phone"},
	Order:         "created_at DESC",
}

type clientRequest struct {
	ClientType         string  `json:"client_type"`
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	CompanyName        *string `json:"company_name"`
	RegistrationNumber *string `json:"registration_number"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	PostalCode         *string `json:"postal_code"`
	Country            *string `json:"country"`
	Notes              *string `json:"notes"`
}

// ListClientsHandler returns one page of the user's clients
func ListClientsHandler(c echo.Context) error {
	query := middleware.GetOwnerScopedQuery(c, db.DB)

	result, err := services.FetchPage[models.Client](query, getListParams(c), clientListOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch clients")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       result.Items,
		"pagination": result.Meta(),
	})
}

// GetClientHandler returns one client
func GetClientHandler(c echo.Context) error {
	var client models.Client
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&client, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Client not found")
	}
	return c.JSON(http.StatusOK, client)
}

// CreateClientHandler creates a client for the current user
func CreateClientHandler(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields := validateClientRequest(&req)
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	user := middleware.GetCurrentUser(c)
	client := models.Client{
		UserID: user.ID,
	}
	applyClientRequest(&client, &req)

	if err := db.DB.Create(&client).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create client")
	}

	return c.JSON(http.StatusCreated, client)
}

// UpdateClientHandler updates an owned client
func UpdateClientHandler(c echo.Context) error {
	var client models.Client
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&client, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Client not found")
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields := validateClientRequest(&req)
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	applyClientRequest(&client, &req)

	if err := db.DB.Save(&client).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update client")
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClientHandler deletes an owned client
func DeleteClientHandler(c echo.Context) error {
	var client models.Client
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&client, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Client not found")
	}

	if err := db.DB.Delete(&client).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete client")
	}

	return c.NoContent(http.StatusNoContent)
}

func validateClientRequest(req *clientRequest) map[string]string {
	fields := map[string]string{}

	if req.ClientType == "" {
		req.ClientType = models.ClientTypeIndividual
	} else if !models.IsValidClientType(req.ClientType) {
		fields["client_type"] = "Invalid client type"
	}

	switch req.ClientType {
	case models.ClientTypeIndividual:
		if !hasValue(req.FirstName) && !hasValue(req.LastName) {
			fields["first_name"] = "Individual clients need a first or last name"
		}
	case models.ClientTypeOrganization:
		if !hasValue(req.CompanyName) {
			fields["company_name"] = "Organization clients need a company name"
		}
	}

	return fields
}

func applyClientRequest(client *models.Client, req *clientRequest) {
	client.ClientType = req.ClientType
	client.FirstName = services.SanitizeTextPtr(req.FirstName)
	client.LastName = services.SanitizeTextPtr(req.LastName)
	client.CompanyName = services.SanitizeTextPtr(req.CompanyName)
	client.RegistrationNumber = req.RegistrationNumber
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = services.SanitizeTextPtr(req.Address)
	client.City = services.SanitizeTextPtr(req.City)
	client.PostalCode = req.PostalCode
	client.Country = services.SanitizeTextPtr(req.Country)
	client.Notes = services.SanitizeTextPtr(req.Notes)
}

func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
