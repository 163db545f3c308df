package contact

import (
	"regexp"
	"strings"

	"github.com/portfolio/backend/internal/domain/shared"
)

// Status represents the review state of a contact submission
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// ProjectType represents the kind of work an inquiry is about
type ProjectType string

const (
	ProjectTypeWebDevelopment ProjectType = "web-development"
	ProjectTypeMobileApp      ProjectType = "mobile-app"
	ProjectTypeAIML           ProjectType = "ai-ml"
	ProjectTypeConsulting     ProjectType = "consulting"
	ProjectTypeOther          ProjectType = "other"
)

const (
	maxNameLength    = 100
	maxMessageLength = 1000
)

// spamPhrases are rejected with a case-insensitive substring match
var spamPhrases = []string{
	"buy now", "click here", "free money", "make money fast",
	"weight loss", "viagra", "casino", "lottery", "inheritance",
}

// Contact represents a visitor-submitted inquiry.
// It is the aggregate root for the contact intake pipeline.
type Contact struct {
	shared.BaseEntity
	Name        string
	Email       string
	ProjectType ProjectType
	Message     string
	Status      Status
	IPAddress   string
	UserAgent   string
}

// NewContact validates and creates a contact submission with status "new"
func NewContact(name, email string, projectType ProjectType, message, ipAddress, userAgent string) (*Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)

	if errs := validateSubmission(name, email, projectType, message); len(errs) > 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", strings.Join(errs, "; "))
	}

	return &Contact{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Email:       email,
		ProjectType: projectType,
		Message:     message,
		Status:      StatusNew,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	}, nil
}

// ValidateSubmission returns every rule the submission violates
func ValidateSubmission(name, email string, projectType ProjectType, message string) []string {
	return validateSubmission(
		strings.TrimSpace(name),
		strings.ToLower(strings.TrimSpace(email)),
		projectType,
		strings.TrimSpace(message),
	)
}

// SetStatus moves the contact to a new status.
// Any status is reachable from any other.
func (c *Contact) SetStatus(status Status) error {
	if !IsValidStatus(status) {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of: new, read, replied, archived")
	}

	c.Status = status
	c.Touch()

	return nil
}

// MarkReplied transitions the contact to the replied status
func (c *Contact) MarkReplied() {
	c.Status = StatusReplied
	c.Touch()
}

// Archive soft-deletes the contact by relabeling it
func (c *Contact) Archive() {
	c.Status = StatusArchived
	c.Touch()
}

// IsValidStatus reports whether s is a member of the status enum
func IsValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// IsValidProjectType reports whether p is a member of the project type enum
func IsValidProjectType(p ProjectType) bool {
	switch p {
	case ProjectTypeWebDevelopment, ProjectTypeMobileApp, ProjectTypeAIML, ProjectTypeConsulting, ProjectTypeOther:
		return true
	}
	return false
}

// ValidateReply checks an admin reply message against the same length rules
func ValidateReply(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Please provide a reply message")
	}
	if len(message) > maxMessageLength {
		return shared.NewDomainError("VALIDATION_ERROR", "Reply message cannot exceed 1000 characters")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateSubmission(name, email string, projectType ProjectType, message string) []string {
	var errs []string

	if name == "" {
		errs = append(errs, "Name is required")
	} else if len(name) > maxNameLength {
		errs = append(errs, "Name cannot exceed 100 characters")
	}

	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Please enter a valid email address")
	}

	if projectType == "" {
		errs = append(errs, "Project type is required")
	} else if !IsValidProjectType(projectType) {
		errs = append(errs, "Please select a valid project type")
	}

	if message == "" {
		errs = append(errs, "Message is required")
	} else if len(message) > maxMessageLength {
		errs = append(errs, "Message cannot exceed 1000 characters")
	}

	if containsSpam(message) {
		errs = append(errs, "Message contains suspicious content")
	}

	return errs
}

func containsSpam(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range spamPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
