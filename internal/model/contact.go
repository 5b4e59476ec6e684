package model

import "time"

// ContactSubmission is a contact-form intake. It is logged and optionally
// forwarded by mail; nothing is persisted.
type ContactSubmission struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}
