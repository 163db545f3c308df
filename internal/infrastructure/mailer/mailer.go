// Package mailer sends contact notifications over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contactapp "github.com/portfolio/backend/internal/application/contact"
	"github.com/portfolio/backend/internal/domain/contact"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Ensure SMTPNotifier implements Notifier
var _ contactapp.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier delivers contact mail through an SMTP server.
// A new connection is dialed per message; contact volume is low.
type SMTPNotifier struct {
	client   *mail.Client
	from     string
	notifyTo string
	logger   *zap.Logger
}

// NewSMTPNotifier builds a notifier from SMTP configuration.
// Returns an error when the host is empty; callers fall back to NopNotifier.
func NewSMTPNotifier(cfg *config.SMTPConfig, logger *zap.Logger) (*SMTPNotifier, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	notifyTo := cfg.NotifyTo
	if notifyTo == "" {
		notifyTo = cfg.From
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &SMTPNotifier{
		client:   client,
		from:     cfg.From,
		notifyTo: notifyTo,
		logger:   logger,
	}, nil
}

// NotifyNewContact mails the site owner a summary of a fresh submission.
func (n *SMTPNotifier) NotifyNewContact(ctx context.Context, c *contact.Contact) error {
	subject := fmt.Sprintf("New contact from %s", c.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Project type: %s\n", c.ProjectType)
	fmt.Fprintf(&b, "Received: %s\n\n", c.GetCreatedAt().Format("2006-01-02 15:04:05 MST"))
	b.WriteString(c.Message)
	b.WriteString("\n")

	return n.send(ctx, n.notifyTo, "", subject, b.String())
}

// SendReply mails an admin-written reply to the submitter.
func (n *SMTPNotifier) SendReply(ctx context.Context, c *contact.Contact, subject, message string) error {
	if subject == "" {
		subject = "Re: your message"
	}
	return n.send(ctx, c.Email, c.Name, subject, message)
}

func (n *SMTPNotifier) send(ctx context.Context, to, toName, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}

	var err error
	if toName != "" {
		err = msg.AddToFormat(toName, to)
	} else {
		err = msg.To(to)
	}
	if err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	n.logger.Debug("Sent contact mail",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
