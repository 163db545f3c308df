package contact

import (
	"context"

	"github.com/portfolio/backend/internal/domain/contact"
)

// Notifier sends email for the contact pipeline.
// Both methods are best-effort: callers log failures and proceed.
type Notifier interface {
	// NotifyNewContact informs the site owner about a fresh submission
	NotifyNewContact(ctx context.Context, c *contact.Contact) error

	// SendReply emails an admin-written reply to the submitter
	SendReply(ctx context.Context, c *contact.Contact, subject, message string) error
}

// NopNotifier discards all notifications. Used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) NotifyNewContact(context.Context, *contact.Contact) error { return nil }

func (NopNotifier) SendReply(context.Context, *contact.Contact, string, string) error { return nil }

var _ Notifier = NopNotifier{}
