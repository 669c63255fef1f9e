package mailing

import (
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

type Mailer interface {
	SendMail(toEmail string, subject string, body string) error
}

type mailer struct {
	config MailConfig
}

// NewMailer returns nil when no SMTP host is configured; callers treat a nil
// Mailer as "notifications disabled".
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		return nil
	}
	return &mailer{config: config}
}

func (m *mailer) SendMail(toEmail string, subject string, body string) error {
	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(message)
}
