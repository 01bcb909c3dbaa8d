// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves outbound email off the
// request path.
package queue

// Email kinds carried by EmailRequestedEvent.
const (
	EmailKindRegistration  = "registration"
	EmailKindPasswordReset = "password_reset"
)

// EmailRequestedEvent is published whenever a workflow step wants an email
// sent. Delivery is best-effort and fully decoupled from the transaction
// that produced the event: the publisher logs failures and the caller
// never learns about them.
type EmailRequestedEvent struct {
	Kind        string `json:"kind"`                   // registration | password_reset
	To          string `json:"to"`                     // recipient address
	Name        string `json:"name"`                   // recipient display name
	ConfirmLink string `json:"confirm_link,omitempty"` // registration: confirmation URL
	ResetCode   string `json:"reset_code,omitempty"`   // password_reset: 6-digit code
	QueuedAt    string `json:"queued_at"`              // RFC3339 timestamp
}
