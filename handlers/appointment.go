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

// appointmentListOptions configures the shared list controller for appointments.
// The calendar reads soonest-first.
var appointmentListOptions = services.ListOptions{
	SearchColumns: []string{"title", "description", "location"},
	Order:         "start_datetime ASC",
	Preloads:      []string{"Client", "LegalCase"},
}

type appointmentRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Location        *string `json:"location"`
	Notes           *string `json:"notes"`
	AppointmentType string  `json:"appointment_type"`
	Status          string  `json:"status"`
	ClientID        *string `json:"client_id"`
	LegalCaseID     *string `json:"legal_case_id"`
	StartDatetime   string  `json:"start_datetime"`
	EndDatetime     string  `json:"end_datetime"`
}

// ListAppointmentsHandler returns one page of the user's appointments
func ListAppointmentsHandler(c echo.Context) error {
	query := middleware.GetOwnerScopedQuery(c, db.DB)

	result, err := services.FetchPage[models.Appointment](query, getListParams(c), appointmentListOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch appointments")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       result.Items,
		"pagination": result.Meta(),
	})
}

// GetAppointmentHandler returns one appointment
func GetAppointmentHandler(c echo.Context) error {
	var appointment models.Appointment
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("LegalCase").
		First(&appointment, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	return c.JSON(http.StatusOK, appointment)
}

// CreateAppointmentHandler creates an appointment for the current user
func CreateAppointmentHandler(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user := middleware.GetCurrentUser(c)
	appointment := models.Appointment{UserID: user.ID}

	if fields := applyAppointmentRequest(&appointment, &req, user.ID); len(fields) > 0 {
		return validationError(c, fields)
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create appointment")
	}

	return c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointmentHandler updates an owned appointment
func UpdateAppointmentHandler(c echo.Context) error {
	var appointment models.Appointment
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&appointment, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}

	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user := middleware.GetCurrentUser(c)
	previousStart := appointment.StartDatetime

	if fields := applyAppointmentRequest(&appointment, &req, user.ID); len(fields) > 0 {
		return validationError(c, fields)
	}

	// Rescheduling re-arms the reminder
	if !appointment.StartDatetime.Equal(previousStart) {
		appointment.ReminderSent = false
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update appointment")
	}

	return c.JSON(http.StatusOK, appointment)
}

// DeleteAppointmentHandler deletes an owned appointment
func DeleteAppointmentHandler(c echo.Context) error {
	var appointment models.Appointment
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&appointment, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete appointment")
	}

	return c.NoContent(http.StatusNoContent)
}

// applyAppointmentRequest validates the request and copies it onto the model.
// A non-empty return means validation failed and holds the per-field messages;
// the model is only modified when validation passed.
func applyAppointmentRequest(appointment *models.Appointment, req *appointmentRequest, userID string) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if req.Status == "" {
		req.Status = models.AppointmentStatusScheduled
	} else if !models.IsValidAppointmentStatus(req.Status) {
		fields["status"] = "Invalid appointment status"
	}
	if req.StartDatetime == "" {
		fields["start_datetime"] = "Start time is required"
	}
	if req.EndDatetime == "" {
		fields["end_datetime"] = "End time is required"
	}
	if len(fields) > 0 {
		return fields
	}

	start, err := services.ParseDateTime(req.StartDatetime)
	if err != nil {
		return map[string]string{"start_datetime": err.Error()}
	}
	end, err := services.ParseDateTime(req.EndDatetime)
	if err != nil {
		return map[string]string{"end_datetime": err.Error()}
	}
	if !end.After(start) {
		return map[string]string{"end_datetime": "End time must be after the start time"}
	}

	if req.ClientID != nil && *req.ClientID != "" {
		if !clientBelongsToUser(userID, *req.ClientID) {
			return map[string]string{"client_id": "Client not found"}
		}
		appointment.ClientID = req.ClientID
	} else {
		appointment.ClientID = nil
	}
	if req.LegalCaseID != nil && *req.LegalCaseID != "" {
		if !caseBelongsToUser(userID, *req.LegalCaseID) {
			return map[string]string{"legal_case_id": "Case not found"}
		}
		appointment.LegalCaseID = req.LegalCaseID
	} else {
		appointment.LegalCaseID = nil
	}

	appointment.Title = services.SanitizeText(strings.TrimSpace(req.Title))
	appointment.Description = services.SanitizeTextPtr(req.Description)
	appointment.Location = services.SanitizeTextPtr(req.Location)
	appointment.Notes = services.SanitizeTextPtr(req.Notes)
	appointment.Status = req.Status
	if req.AppointmentType != "" {
		appointment.AppointmentType = req.AppointmentType
	}
	appointment.StartDatetime = start
	appointment.EndDatetime = end

	return nil
}
