package model

import "time"

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // "unread" | "read"
	CreatedAt time.Time `json:"createdAt"`
}

const (
	ContactStatusUnread = "unread"
	ContactStatusRead   = "read"
)
