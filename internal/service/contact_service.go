package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a new contact message and notifies the site owner.
	// The ID, status and CreatedAt are populated by the implementation.
	Submit(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error)

	// List returns all contact messages, newest first.
	List(ctx context.Context) ([]model.ContactMessage, error)

	// MarkRead sets the status of a message to "read".
	MarkRead(ctx context.Context, id int64) (model.ContactMessage, error)
}

// Notifier delivers a submitted contact message to the site owner.
type Notifier interface {
	NotifyContact(ctx context.Context, msg model.ContactMessage) error
}
