// Package email provides email delivery for the ticket notifier.
package email

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when the relay settings are incomplete.
// No connection is attempted in that case.
var ErrNotConfigured = errors.New("SMTP settings not configured")

// Service defines the interface for sending emails.
// Implementations include SMTP for production, Console for local development
// and Mock for testing.
type Service interface {
	// Send delivers one message in a single attempt.
	// Returns ErrNotConfigured or a *DeliveryError on failure.
	Send(ctx context.Context, msg *Message) error
}

// Message is a rendered email ready for delivery.
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string // Plain text alternative, optional
	From     string
	FromName string // Optional display name for From
	To       string
}

// DeliveryError describes a failed relay session: connect, STARTTLS,
// authentication or submission.
type DeliveryError struct {
	Reason string
	Err    error
}

func (e *DeliveryError) Error() string {
	return "failed to send email: " + e.Reason
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewDeliveryError wraps a transport failure.
func NewDeliveryError(err error) *DeliveryError {
	return &DeliveryError{Reason: err.Error(), Err: err}
}
