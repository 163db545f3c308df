package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/contact"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContactService handles the contact intake pipeline and admin console
type ContactService struct {
	contactRepo contact.ContactRepository
	notifier    Notifier
	logger      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo contact.ContactRepository, notifier Notifier, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Submit validates and stores a public contact submission.
// The owner notification email is best-effort: a mail failure never
// fails the submission.
func (s *ContactService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	c, err := contact.NewContact(
		input.Name,
		input.Email,
		contact.ProjectType(input.ProjectType),
		input.Message,
		input.IPAddress,
		input.UserAgent,
	)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, c); err != nil {
		s.logger.Error("Failed to store contact submission", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit your message. Please try again later")
	}

	if err := s.notifier.NotifyNewContact(ctx, c); err != nil {
		s.logger.Warn("Failed to send contact notification email",
			zap.String("contact_id", c.GetID().String()),
			zap.Error(err))
	}

	s.logger.Info("Contact submission stored",
		zap.String("contact_id", c.GetID().String()),
		zap.String("project_type", string(c.ProjectType)))

	return &SubmitResult{
		ID:          c.GetID(),
		SubmittedAt: c.GetCreatedAt(),
	}, nil
}

// List returns a filtered page of contacts for the admin console
func (s *ContactService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Status != "" && !contact.IsValidStatus(contact.Status(input.Status)) {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be one of: new, read, replied, archived")
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := s.contactRepo.List(ctx, contact.Filter{
		Status:   contact.Status(input.Status),
		Search:   input.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.logger.Error("Failed to list contacts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load contacts")
	}

	contacts := make([]ContactInfo, 0, len(result.Items))
	for _, c := range result.Items {
		contacts = append(contacts, toContactInfo(c))
	}

	return &ListResult{
		Contacts:   contacts,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Get returns a single contact and marks it read if it was new
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*ContactInfo, error) {
	c, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Contact not found")
	}

	if c.Status == contact.StatusNew {
		if err := c.SetStatus(contact.StatusRead); err == nil {
			if err := s.contactRepo.Update(ctx, c); err != nil {
				s.logger.Warn("Failed to mark contact as read", zap.Error(err))
			}
		}
	}

	info := toContactInfo(c)
	return &info, nil
}

// UpdateStatus moves a contact to a new status
func (s *ContactService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*ContactInfo, error) {
	c, err := s.contactRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Contact not found")
	}

	if err := c.SetStatus(contact.Status(input.Status)); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update contact status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update contact")
	}

	s.logger.Info("Contact status updated",
		zap.String("contact_id", input.ID.String()),
		zap.String("status", input.Status))

	info := toContactInfo(c)
	return &info, nil
}

// Archive soft-deletes a contact by moving it to the archived status
func (s *ContactService) Archive(ctx context.Context, id uuid.UUID) error {
	c, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Contact not found")
	}

	c.Archive()

	if err := s.contactRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to archive contact", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive contact")
	}

	s.logger.Info("Contact archived", zap.String("contact_id", id.String()))

	return nil
}

// Reply emails an admin reply to the submitter and marks the contact
// replied. The status flip happens even when the email fails, so the
// console reflects that a reply was attempted; the failure is logged.
func (s *ContactService) Reply(ctx context.Context, input ReplyInput) (*ContactInfo, error) {
	if err := contact.ValidateReply(input.Message); err != nil {
		return nil, err
	}

	c, err := s.contactRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Contact not found")
	}

	if err := s.notifier.SendReply(ctx, c, input.Subject, input.Message); err != nil {
		s.logger.Warn("Failed to send reply email",
			zap.String("contact_id", input.ID.String()),
			zap.Error(err))
	}

	c.MarkReplied()

	if err := s.contactRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update contact after reply", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update contact")
	}

	s.logger.Info("Reply sent", zap.String("contact_id", input.ID.String()))

	info := toContactInfo(c)
	return &info, nil
}

// Stats aggregates submission counts by status
func (s *ContactService) Stats(ctx context.Context) (*StatsResult, error) {
	counts, err := s.contactRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to count contacts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load contact stats")
	}

	return &StatsResult{
		Total:    counts.Total,
		New:      counts.New,
		Read:     counts.Read,
		Replied:  counts.Replied,
		Archived: counts.Archived,
	}, nil
}

// Recent returns the latest submissions for the dashboard
func (s *ContactService) Recent(ctx context.Context, limit int) ([]ContactInfo, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}

	contacts, err := s.contactRepo.Recent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to load recent contacts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load recent contacts")
	}

	infos := make([]ContactInfo, 0, len(contacts))
	for _, c := range contacts {
		infos = append(infos, toContactInfo(c))
	}

	return infos, nil
}
