package services

import (
	"crypto/tls"
	"fmt"

	"github.com/cloudkitchen/backend/internal/config"
	"github.com/cloudkitchen/backend/internal/models"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

// NewEmailService returns nil when no admin recipient is configured, which
// disables notifications wherever the service is injected.
func NewEmailService(config *config.Config) *EmailService {
	if config.AdminEmail == "" {
		return nil
	}
	return &EmailService{config: config}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

// SendReviewNotification tells the kitchen admin a new review landed.
func (s *EmailService) SendReviewNotification(review *models.Review) error {
	subject := fmt.Sprintf("New review for %s", review.ServiceName)
	body := fmt.Sprintf(`
		<h2>New Review Received</h2>
		<p><strong>Service:</strong> %s</p>
		<p><strong>Reviewer:</strong> %s (%s)</p>
		<p><strong>Rating:</strong> %d/5</p>
		<p>%s</p>
		<p>Best regards,<br>Cloud Kitchen</p>
	`, review.ServiceName, review.Name, review.Email, review.Star, review.Comment)

	return s.SendEmail(s.config.AdminEmail, subject, body)
}
