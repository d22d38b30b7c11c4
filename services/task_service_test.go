package services

import (
	"testing"
	"time"

	"juriscloud/models"

	"github.com/stretchr/testify/assert"
)

func TestSetTaskStatus(t *testing.T) {
	db := newTestDB(t)

	task := &models.Task{UserID: "u1", Title: "Draft filing"}
	assert.NoError(t, db.Create(task).Error)

	t.Run("Completing stamps the timestamp", func(t *testing.T) {
		assert.NoError(t, SetTaskStatus(db, task, models.TaskStatusDone))
		assert.Equal(t, models.TaskStatusDone, task.Status)
		assert.NotNil(t, task.CompletedAt)
	})

	t.Run("Completing again keeps the original timestamp", func(t *testing.T) {
		original := *task.CompletedAt
		assert.NoError(t, SetTaskStatus(db, task, models.TaskStatusDone))
		assert.Equal(t, original, *task.CompletedAt)
	})

	t.Run("Reopening clears the timestamp", func(t *testing.T) {
		assert.NoError(t, SetTaskStatus(db, task, models.TaskStatusInProgress))
		assert.Nil(t, task.CompletedAt)

		var stored models.Task
		db.First(&stored, "id = ?", task.ID)
		assert.Nil(t, stored.CompletedAt)
	})

	t.Run("Invalid status rejected", func(t *testing.T) {
		assert.Error(t, SetTaskStatus(db, task, "NOT_A_STATUS"))
	})
}

func TestCountOverdueTasks(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	db.Create(&models.Task{UserID: "u1", Title: "Overdue", DueDate: &yesterday})
	db.Create(&models.Task{UserID: "u1", Title: "Overdue but done", DueDate: &yesterday, Status: models.TaskStatusDone})
	db.Create(&models.Task{UserID: "u1", Title: "Future", DueDate: &tomorrow})
	db.Create(&models.Task{UserID: "u1", Title: "No deadline"})
	db.Create(&models.Task{UserID: "u2", Title: "Someone else's", DueDate: &yesterday})

	count, err := CountOverdueTasks(db, "u1", now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	task := models.Task{DueDate: &yesterday, Status: models.TaskStatusTodo}
	assert.True(t, task.IsOverdue(now))

	task.Status = models.TaskStatusDone
	assert.False(t, task.IsOverdue(now))

	task = models.Task{Status: models.TaskStatusTodo}
	assert.False(t, task.IsOverdue(now))
}
