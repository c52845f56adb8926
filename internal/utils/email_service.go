package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/models"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendSOSAlert notifies the fixed admin address about a new emergency alert.
func (e *EmailService) SendSOSAlert(adminEmail string, alert *models.SOSAlert) error {
	subject := fmt.Sprintf("SOS ALERT from %s", alert.FullName)
	body := fmt.Sprintf(`An emergency alert was raised.

Name:     %s
Phone:    %s
Location: %.5f, %.5f
Message:  %s

Map: https://maps.google.com/?q=%.5f,%.5f

Alert ID: %s
`,
		alert.FullName, alert.Phone, alert.Latitude, alert.Longitude,
		alert.Message, alert.Latitude, alert.Longitude, alert.ID)

	return e.sendEmail(adminEmail, subject, body, false)
}

// SendPackageEmail mails the traveler their full itinerary as HTML.
func (e *EmailService) SendPackageEmail(to, fullName string, days []models.ItineraryDay) error {
	subject := "Your Rwanda travel package"

	var rows strings.Builder
	for _, d := range days {
		hotel := ""
		if d.HotelID != nil {
			hotel = *d.HotelID
		}
		activity := ""
		if d.ActivityID != nil {
			activity = *d.ActivityID
		}
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			FormatDate(d.Date), d.DayType, d.DestinationID, hotel, activity))
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #1a7a4a;">Your trip plan, %s</h2>
		<table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse; width: 100%%;">
			<tr><th>Date</th><th>Type</th><th>Destination</th><th>Hotel</th><th>Activity</th></tr>
			%s
		</table>
		<p style="color: #999; font-size: 12px;">Safe travels,<br>Click to Rwanda Team</p>
	</div>
</body>
</html>`, fullName, rows.String())

	return e.sendEmail(to, subject, body, true)
}

// SendDailyReminder mails the traveler a summary of today's plan.
func (e *EmailService) SendDailyReminder(to string, day *models.ItineraryDay) error {
	subject := fmt.Sprintf("Today in %s", day.DestinationID)

	var lines []string
	lines = append(lines, fmt.Sprintf("Your plan for %s:", FormatDate(day.Date)))
	lines = append(lines, fmt.Sprintf("Destination: %s", day.DestinationID))
	if day.WakeTime != nil {
		lines = append(lines, fmt.Sprintf("Wake up: %s", *day.WakeTime))
	}
	if day.BreakfastTime != nil {
		lines = append(lines, fmt.Sprintf("Breakfast: %s", *day.BreakfastTime))
	}
	if day.LunchTime != nil {
		lines = append(lines, fmt.Sprintf("Lunch: %s", *day.LunchTime))
	}
	if day.DinnerTime != nil {
		lines = append(lines, fmt.Sprintf("Dinner: %s", *day.DinnerTime))
	}
	if day.ActivityID != nil {
		lines = append(lines, fmt.Sprintf("Activity: %s", *day.ActivityID))
	}
	if day.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes: %s", day.Notes))
	}
	lines = append(lines, "", "Have a great day!", "Click to Rwanda Team")

	return e.sendEmail(to, subject, strings.Join(lines, "\n"), false)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string, html bool) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	contentType := "text/plain; charset=utf-8"
	if html {
		contentType = "text/html; charset=utf-8"
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, contentType, body))

	// Send email
	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
