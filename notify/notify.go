// Package notify delivers transactional email with document attachments.
package notify

import "context"

// Attachment is a file carried by an email.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Email is one outbound message.
type Email struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers email. Implementations must treat each call as a single
// delivery attempt and return an error when the message did not go out.
type Sender interface {
	Send(ctx context.Context, email Email) error
}
