package jobs

import (
	"log"
	"time"

	"juriscloud/config"
	"juriscloud/models"
	"juriscloud/services"

	"gorm.io/gorm"
)

// ReminderWindow is how far ahead the reminder job looks for appointments
const ReminderWindow = 24 * time.Hour

// SendAppointmentReminders emails owners about upcoming appointments that have
// not been reminded yet. The reminder_sent flag is set via a guarded UPDATE so
// an appointment is never notified twice even if two job runs overlap.
func SendAppointmentReminders(database *gorm.DB, cfg *config.Config) {
	now := time.Now().UTC()
	windowEnd := now.Add(ReminderWindow)

	var appointments []models.Appointment
	err := database.
		Where("status IN (?)", []string{models.AppointmentStatusScheduled, models.AppointmentStatusConfirmed}).
		Where("start_datetime >= ? AND start_datetime <= ?", now, windowEnd).
		Where("reminder_sent = ?", false).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	if len(appointments) == 0 {
		return
	}
	log.Printf("Found %d appointments to remind", len(appointments))

	for i := range appointments {
		apt := &appointments[i]

		// Claim the appointment before emailing; RowsAffected == 0 means another
		// run already took it
		claim := database.Model(&models.Appointment{}).
			Where("id = ? AND reminder_sent = ?", apt.ID, false).
			Update("reminder_sent", true)
		if claim.Error != nil {
			log.Printf("Failed to claim reminder for appointment %s: %v", apt.ID, claim.Error)
			continue
		}
		if claim.RowsAffected == 0 {
			continue
		}

		var owner models.User
		if err := database.First(&owner, "id = ?", apt.UserID).Error; err != nil {
			log.Printf("Failed to load owner for appointment %s: %v", apt.ID, err)
			continue
		}

		if err := services.SendAppointmentReminder(cfg, &owner, apt); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", apt.ID, err)
			// Release the claim so the next run retries
			database.Model(&models.Appointment{}).
				Where("id = ?", apt.ID).
				Update("reminder_sent", false)
			continue
		}

		log.Printf("Sent reminder for appointment %s", apt.ID)
	}
}
