package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"juriscloud/config"
	"juriscloud/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2>Welcome to JurisCloud, {{.Name}}</h2>
<p>Your account has been created with the address {{.Email}}.</p>
<p>You can now manage your cases, clients, tasks, invoices and appointments in one place.</p>
`))

var reminderTemplate = template.Must(template.New("reminder").Parse(`
<h2>Upcoming appointment: {{.Title}}</h2>
<p>Scheduled for {{.Start}}{{if .Location}} at {{.Location}}{{end}}.</p>
`))

// SendEmail sends an email via Resend, or logs it when test mode is enabled
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode || cfg.ResendAPIKey == "" {
		log.Printf("[EMAIL TEST MODE] To: %v | Subject: %s", email.To, email.Subject)
		return nil
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcomeEmail sends the sign-up confirmation email to a new account
func SendWelcomeEmail(cfg *config.Config, user *models.User) error {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, map[string]string{
		"Name":  user.FullName(),
		"Email": user.Email,
	}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	return SendEmail(cfg, &Email{
		To:       []string{user.Email},
		Subject:  "Welcome to JurisCloud",
		HTMLBody: body.String(),
		TextBody: fmt.Sprintf("Welcome to JurisCloud, %s. Your account %s is ready.", user.FullName(), user.Email),
	})
}

// SendAppointmentReminder emails the account owner about an upcoming appointment
func SendAppointmentReminder(cfg *config.Config, user *models.User, appointment *models.Appointment) error {
	location := ""
	if appointment.Location != nil {
		location = *appointment.Location
	}

	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, map[string]string{
		"Title":    appointment.Title,
		"Start":    appointment.StartDatetime.Format(time.RFC1123),
		"Location": location,
	}); err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	return SendEmail(cfg, &Email{
		To:       []string{user.Email},
		Subject:  fmt.Sprintf("Reminder: %s", appointment.Title),
		HTMLBody: body.String(),
		TextBody: fmt.Sprintf("Reminder: %s at %s", appointment.Title, appointment.StartDatetime.Format(time.RFC1123)),
	})
}
