package handlers

import (
	"net/http"
	"time"

	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler aggregates the practice overview: entity counts, overdue
// work, today's calendar and invoice revenue figures
func DashboardHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	now := time.Now()

	var activeCases, totalClients, openTasks int64
	db.DB.Model(&models.LegalCase{}).
		Where("user_id = ? AND status IN (?)", user.ID,
			[]string{models.CaseStatusOpen, models.CaseStatusInProgress}).
		Count(&activeCases)
	db.DB.Model(&models.Client{}).
		Where("user_id = ?", user.ID).
		Count(&totalClients)
	db.DB.Model(&models.Task{}).
		Where("user_id = ? AND status IN (?)", user.ID,
			[]string{models.TaskStatusTodo, models.TaskStatusInProgress}).
		Count(&openTasks)

	overdueTasks, err := services.CountOverdueTasks(db.DB, user.ID, now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard")
	}

	invoiceStats, err := services.GetInvoiceStats(db.DB, user.ID, now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard")
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todaysAppointments []models.Appointment
	db.DB.Where("user_id = ? AND start_datetime >= ? AND start_datetime < ?", user.ID, dayStart, dayEnd).
		Where("status IN (?)", []string{models.AppointmentStatusScheduled, models.AppointmentStatusConfirmed}).
		Order("start_datetime ASC").
		Preload("Client").
		Find(&todaysAppointments)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"active_cases":        activeCases,
		"total_clients":       totalClients,
		"open_tasks":          openTasks,
		"overdue_tasks":       overdueTasks,
		"invoices":            invoiceStats,
		"todays_appointments": todaysAppointments,
	})
}
