package mailer

import (
	"fmt"

	"opaleka/config"

	"gopkg.in/gomail.v2"
)

// SMTPMailer is the production Mailer, backed by the configured SMTP account.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPMailer builds an SMTPMailer from application config.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     config.AppConfig.SMTPHost,
		port:     config.AppConfig.SMTPPort,
		username: config.AppConfig.EmailUser,
		password: config.AppConfig.EmailPass,
	}
}

// Send delivers a single HTML email. The from address is always the configured
// SMTP account; fromName sets the display name.
func (m *SMTPMailer) Send(fromName, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.username, fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
