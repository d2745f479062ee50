package models

import "time"

// Notification is an in-app message created by workflow events only,
// never directly by a client.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailMessage is a durable outbox row. Rows are written inside the
// request that triggered them and drained by the mail worker; Attempts
// and LastError track delivery progress.
type EmailMessage struct {
	ID        int64      `json:"id"`
	Recipient string     `json:"recipient"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Attempts  int        `json:"attempts"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
