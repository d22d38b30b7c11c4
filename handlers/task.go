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

// taskListOptions configures the shared list controller for tasks. Tasks are
// ordered by due date so the most pressing work comes first; sqlite sorts
// NULLs first on ASC, so undated tasks are pushed to the end explicitly.
var taskListOptions = services.ListOptions{
	SearchColumns: []string{"title", "description", "task_type"},
	Order:         "due_date IS NULL, due_date ASC",
	Preloads:      []string{"LegalCase"},
}

type taskRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	TaskType     string  `json:"task_type"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	LegalCaseID  *string `json:"legal_case_id"`
	DueDate      string  `json:"due_date"`
	ReminderDate string  `json:"reminder_date"`
	AssignedTo   *string `json:"assigned_to"`
}

// ListTasksHandler returns one page of the user's tasks
func ListTasksHandler(c echo.Context) error {
	query := middleware.GetOwnerScopedQuery(c, db.DB)

	result, err := services.FetchPage[models.Task](query, getListParams(c), taskListOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tasks")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       result.Items,
		"pagination": result.Meta(),
	})
}

// GetTaskHandler returns one task
func GetTaskHandler(c echo.Context) error {
	var task models.Task
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		Preload("LegalCase").
		First(&task, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTaskHandler creates a task for the current user
func CreateTaskHandler(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields := validateTaskRequest(&req)
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	user := middleware.GetCurrentUser(c)
	if req.LegalCaseID != nil && *req.LegalCaseID != "" {
		if !caseBelongsToUser(user.ID, *req.LegalCaseID) {
			return validationError(c, map[string]string{"legal_case_id": "Case not found"})
		}
	} else {
		req.LegalCaseID = nil
	}

	task := models.Task{
		UserID:      user.ID,
		LegalCaseID: req.LegalCaseID,
		Title:       services.SanitizeText(strings.TrimSpace(req.Title)),
		Description: services.SanitizeTextPtr(req.Description),
		TaskType:    req.TaskType,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  services.SanitizeTextPtr(req.AssignedTo),
	}

	if req.DueDate != "" {
		dueDate, err := services.ParseDateTime(req.DueDate)
		if err != nil {
			return validationError(c, map[string]string{"due_date": err.Error()})
		}
		task.DueDate = &dueDate
	}
	if req.ReminderDate != "" {
		reminderDate, err := services.ParseDateTime(req.ReminderDate)
		if err != nil {
			return validationError(c, map[string]string{"reminder_date": err.Error()})
		}
		task.ReminderDate = &reminderDate
	}

	if err := db.DB.Create(&task).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTaskHandler updates an owned task
func UpdateTaskHandler(c echo.Context) error {
	var task models.Task
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&task, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields := validateTaskRequest(&req)
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	user := middleware.GetCurrentUser(c)
	if req.LegalCaseID != nil && *req.LegalCaseID != "" {
		if !caseBelongsToUser(user.ID, *req.LegalCaseID) {
			return validationError(c, map[string]string{"legal_case_id": "Case not found"})
		}
		task.LegalCaseID = req.LegalCaseID
	} else {
		task.LegalCaseID = nil
	}

	task.Title = services.SanitizeText(strings.TrimSpace(req.Title))
	task.Description = services.SanitizeTextPtr(req.Description)
	task.TaskType = req.TaskType
	task.Priority = req.Priority
	task.AssignedTo = services.SanitizeTextPtr(req.AssignedTo)

	if req.DueDate != "" {
		dueDate, err := services.ParseDateTime(req.DueDate)
		if err != nil {
			return validationError(c, map[string]string{"due_date": err.Error()})
		}
		task.DueDate = &dueDate
	} else {
		task.DueDate = nil
	}
	if req.ReminderDate != "" {
		reminderDate, err := services.ParseDateTime(req.ReminderDate)
		if err != nil {
			return validationError(c, map[string]string{"reminder_date": err.Error()})
		}
		task.ReminderDate = &reminderDate
	} else {
		task.ReminderDate = nil
	}

	// Status changes go through the service so the completion timestamp stays
	// consistent with the status
	if err := services.SetTaskStatus(db.DB, &task, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

// CompleteTaskHandler marks an owned task done
func CompleteTaskHandler(c echo.Context) error {
	var task models.Task
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&task, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	if err := services.SetTaskStatus(db.DB, &task, models.TaskStatusDone); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete task")
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTaskHandler deletes an owned task
func DeleteTaskHandler(c echo.Context) error {
	var task models.Task
	err := middleware.GetOwnerScopedQuery(c, db.DB).
		First(&task, "id = ?", c.Param("id")).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func validateTaskRequest(req *taskRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if req.Status == "" {
		req.Status = models.TaskStatusTodo
	} else if !models.IsValidTaskStatus(req.Status) {
		fields["status"] = "Invalid task status"
	}
	if req.Priority == "" {
		req.Priority = models.PriorityNormal
	} else if !models.IsValidPriority(req.Priority) {
		fields["priority"] = "Invalid priority"
	}
	if req.TaskType == "" {
		req.TaskType = models.DefaultTaskType
	}
	return fields
}

// caseBelongsToUser checks that the referenced case is owned by the user
func caseBelongsToUser(userID, caseID string) bool {
	var count int64
	db.DB.Model(&models.LegalCase{}).
		Where("id = ? AND user_id = ?", caseID, userID).
		Count(&count)
	return count > 0
}
