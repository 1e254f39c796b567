package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ContactCollection is the storage key of the contact message collection.
const ContactCollection = "messages"

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	messages *repository.Collection[model.ContactMessage, int64]
	notifier Notifier
	now      func() time.Time
}

// NewContactService creates a ContactService persisting through store.
// notifier may be nil, in which case messages are only stored.
func NewContactService(store *repository.Store, notifier Notifier) ContactService {
	return newContactService(store, notifier, time.Now)
}

func newContactService(store *repository.Store, notifier Notifier, now func() time.Time) *contactServiceImpl {
	id := func(m model.ContactMessage) int64 { return m.ID }
	return &contactServiceImpl{
		messages: repository.NewCollection(store, repository.Schema[model.ContactMessage, int64]{
			Name:   ContactCollection,
			ID:     id,
			SetID:  func(m *model.ContactMessage, v int64) { m.ID = v },
			NextID: repository.TimestampID(id, now),
		}),
		notifier: notifier,
		now:      now,
	}
}

// Submit stores a new contact message with status "unread". A notification
// failure is logged and does not fail the submission.
func (s *contactServiceImpl) Submit(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	msg.Status = model.ContactStatusUnread
	msg.CreatedAt = s.now().UTC()
	saved, err := s.messages.Create(ctx, msg)
	if err != nil {
		return model.ContactMessage{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, saved); err != nil {
			slog.Warn("contact notification failed", "message_id", saved.ID, "error", err)
		}
	}
	return saved, nil
}

// List returns contact messages sorted by CreatedAt, newest first.
func (s *contactServiceImpl) List(ctx context.Context) ([]model.ContactMessage, error) {
	snap, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(snap.Items, func(a, b model.ContactMessage) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return snap.Items, nil
}

// MarkRead changes the status of a contact message to "read".
func (s *contactServiceImpl) MarkRead(ctx context.Context, id int64) (model.ContactMessage, error) {
	return s.messages.Update(ctx, id, func(m *model.ContactMessage, _ []model.ContactMessage) error {
		m.Status = model.ContactStatusRead
		return nil
	})
}
