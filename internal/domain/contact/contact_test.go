package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		c, err := NewContact("Jane Roe", "jane@example.com", ProjectTypeWebDevelopment, "I need a new website for my bakery.", "203.0.113.7", "Mozilla/5.0")

		require.NoError(t, err)
		assert.Equal(t, "Jane Roe", c.Name)
		assert.Equal(t, "jane@example.com", c.Email)
		assert.Equal(t, ProjectTypeWebDevelopment, c.ProjectType)
		assert.Equal(t, StatusNew, c.Status)
		assert.Equal(t, "203.0.113.7", c.IPAddress)
		assert.NotEqual(t, "", c.GetID().String())
	})

	t.Run("normalizes email and trims fields", func(t *testing.T) {
		c, err := NewContact("  Jane  ", "  JANE@Example.COM ", ProjectTypeOther, "  hello there  ", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Jane", c.Name)
		assert.Equal(t, "jane@example.com", c.Email)
		assert.Equal(t, "hello there", c.Message)
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		_, err := NewContact("", "", "", "", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name is required")
		assert.Contains(t, err.Error(), "Email is required")
		assert.Contains(t, err.Error(), "Project type is required")
		assert.Contains(t, err.Error(), "Message is required")
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewContact("Jane", "not-an-email", ProjectTypeOther, "hello", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "valid email")
	})

	t.Run("unknown project type", func(t *testing.T) {
		_, err := NewContact("Jane", "jane@example.com", "space-elevator", "hello", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "valid project type")
	})

	t.Run("message too long", func(t *testing.T) {
		long := strings.Repeat("a", 1001)
		_, err := NewContact("Jane", "jane@example.com", ProjectTypeOther, long, "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1000 characters")
	})

	t.Run("name too long", func(t *testing.T) {
		long := strings.Repeat("n", 101)
		_, err := NewContact(long, "jane@example.com", ProjectTypeOther, "hello", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "100 characters")
	})

	t.Run("spam phrases are rejected case-insensitively", func(t *testing.T) {
		_, err := NewContact("Jane", "jane@example.com", ProjectTypeOther, "CLICK HERE to win", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "suspicious content")
	})
}

func TestContact_StatusTransitions(t *testing.T) {
	newContact := func(t *testing.T) *Contact {
		c, err := NewContact("Jane", "jane@example.com", ProjectTypeConsulting, "hello", "", "")
		require.NoError(t, err)
		return c
	}

	t.Run("set valid status", func(t *testing.T) {
		c := newContact(t)

		require.NoError(t, c.SetStatus(StatusRead))
		assert.Equal(t, StatusRead, c.Status)
	})

	t.Run("any status is reachable from any other", func(t *testing.T) {
		c := newContact(t)

		require.NoError(t, c.SetStatus(StatusArchived))
		require.NoError(t, c.SetStatus(StatusNew))
		assert.Equal(t, StatusNew, c.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		c := newContact(t)

		err := c.SetStatus("pending")
		assert.Error(t, err)
		assert.Equal(t, StatusNew, c.Status)
	})

	t.Run("mark replied", func(t *testing.T) {
		c := newContact(t)

		c.MarkReplied()
		assert.Equal(t, StatusReplied, c.Status)
	})

	t.Run("archive", func(t *testing.T) {
		c := newContact(t)

		c.Archive()
		assert.Equal(t, StatusArchived, c.Status)
	})
}

func TestValidateReply(t *testing.T) {
	t.Run("valid reply", func(t *testing.T) {
		assert.NoError(t, ValidateReply("Thanks for reaching out."))
	})

	t.Run("empty reply", func(t *testing.T) {
		assert.Error(t, ValidateReply("   "))
	})

	t.Run("too long", func(t *testing.T) {
		assert.Error(t, ValidateReply(strings.Repeat("x", 1001)))
	})
}
