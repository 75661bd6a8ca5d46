package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the connection settings for the SMTP mailer
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer delivers mail through a plain SMTP relay
type SMTPMailer struct {
	config SMTPConfig
}

// NewSMTPMailer creates a mailer that talks to the configured relay
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// Send delivers the message in one SMTP conversation.
func (m *SMTPMailer) Send(msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	builder.WriteString(fmt.Sprintf("Reply-To: %s\r\n", msg.From))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString("\r\n")
	builder.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, msg.From, msg.To, []byte(builder.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

// GetName returns the mailer name
func (m *SMTPMailer) GetName() string {
	return "smtp"
}
