package mail

import (
	"github.com/sirupsen/logrus"
)

// DevMailer logs messages instead of delivering them. Used outside
// production so no real mail leaves a developer machine.
type DevMailer struct {
	logger *logrus.Logger
}

// NewDevMailer creates a mailer that only logs
func NewDevMailer(logger *logrus.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *DevMailer) Send(msg Message) error {
	m.logger.WithFields(logrus.Fields{
		"from":    msg.From,
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Dev mode: mail not sent")
	m.logger.Debug(msg.Body)
	return nil
}

// GetName returns the mailer name
func (m *DevMailer) GetName() string {
	return "dev"
}
