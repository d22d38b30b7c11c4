package services

import (
	"fmt"
	"time"

	"juriscloud/models"

	"gorm.io/gorm"
)

// SetTaskStatus updates a task's status. Transitioning into the terminal done
// status stamps the completion timestamp; transitioning away clears it.
func SetTaskStatus(db *gorm.DB, task *models.Task, newStatus string) error {
	if !models.IsValidTaskStatus(newStatus) {
		return fmt.Errorf("invalid task status: %s", newStatus)
	}

	if newStatus == models.TaskStatusDone && task.Status != models.TaskStatusDone {
		now := time.Now()
		task.CompletedAt = &now
	}
	if newStatus != models.TaskStatusDone {
		task.CompletedAt = nil
	}

	task.Status = newStatus
	if err := db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

// CountOverdueTasks counts the user's tasks past their due date and not done
func CountOverdueTasks(db *gorm.DB, userID string, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Task{}).
		Where("user_id = ? AND due_date IS NOT NULL AND due_date < ? AND status != ?",
			userID, now, models.TaskStatusDone).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	return count, nil
}
