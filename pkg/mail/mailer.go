package mail

// Message is one outbound plain-text notification.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer defines the interface for delivering notification mail
type Mailer interface {
	// Send delivers one message to all of its recipients
	Send(msg Message) error

	// GetName returns the name of the mailer implementation
	GetName() string
}
