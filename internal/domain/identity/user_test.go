package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with valid fields", func(t *testing.T) {
		user, err := NewUser("admin@example.com", "secret123", "Admin User", RoleAdmin)

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.Equal(t, "Admin User", user.Name)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.True(t, user.IsActive)
		assert.Zero(t, user.LoginAttempts)
		assert.Nil(t, user.LockUntil)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("Admin@Example.COM", "secret123", "Admin", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
	})

	t.Run("trims email and name whitespace", func(t *testing.T) {
		user, err := NewUser("  admin@example.com  ", "secret123", "  Admin  ", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.Equal(t, "Admin", user.Name)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser("", "secret123", "Admin", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid email format", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret123", "Admin", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("admin@example.com", "abc", "Admin", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("admin@example.com", "secret123", "Admin", Role("viewer"))

		assert.Error(t, err)
	})

	t.Run("fails with name over 100 characters", func(t *testing.T) {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewUser("admin@example.com", "secret123", string(long), RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "100 characters")
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewAdmin("admin@example.com", "secret123", "Admin")
	require.NoError(t, err)

	t.Run("accepts correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("secret123"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		assert.False(t, user.VerifyPassword("wrong"))
	})
}

func TestUser_ChangePassword(t *testing.T) {
	t.Run("changes password with correct old password", func(t *testing.T) {
		user, err := NewAdmin("admin@example.com", "secret123", "Admin")
		require.NoError(t, err)

		err = user.ChangePassword("secret123", "newsecret456")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newsecret456"))
		assert.False(t, user.VerifyPassword("secret123"))
	})

	t.Run("fails with wrong old password", func(t *testing.T) {
		user, err := NewAdmin("admin@example.com", "secret123", "Admin")
		require.NoError(t, err)

		err = user.ChangePassword("wrong", "newsecret456")

		assert.Error(t, err)
		assert.True(t, user.VerifyPassword("secret123"))
	})
}

func TestUser_Lockout(t *testing.T) {
	const maxAttempts = 5
	const lockDuration = 15 * time.Minute

	t.Run("locks after max failed attempts", func(t *testing.T) {
		user, err := NewAdmin("admin@example.com", "secret123", "Admin")
		require.NoError(t, err)

		for i := 0; i < maxAttempts-1; i++ {
			locked := user.RecordLoginFailure(maxAttempts, lockDuration)
			assert.False(t, locked)
			assert.False(t, user.IsLocked())
		}

		locked := user.RecordLoginFailure(maxAttempts, lockDuration)

		assert.True(t, locked)
		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock no longer blocks login", func(t *testing.T) {
		user, err := NewAdmin("admin@example.com", "secret123", "Admin")
		require.NoError(t, err)

		past := time.Now().Add(-time.Minute)
		user.LockUntil = &past
		user.LoginAttempts = maxAttempts

		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("failure after expired lock restarts the counter", func(t *testing.T) {
		user, err := NewAdmin("admin@example.com", "secret123", "Admin")
		require.NoError(t, err)

		past := time.Now().Add(-time.Minute)
		user.LockUntil = &past
		user.LoginAttempts = maxAttempts

		locked := user.RecordLoginFailure(maxAttempts, lockDuration)

		assert.False(t, locked)
		assert.Equal(t, 1, user.LoginAttempts)
		assert.Nil(t, user.LockUntil)
	})

	t.Run("successful login clears lockout state", func(t *testing.T) {
		user, err := NewAdmin("admin@example.com", "secret123", "Admin")
		require.NoError(t, err)

		for i := 0; i < maxAttempts; i++ {
			user.RecordLoginFailure(maxAttempts, lockDuration)
		}
		require.True(t, user.IsLocked())

		user.RecordLoginSuccess("203.0.113.7")

		assert.False(t, user.IsLocked())
		assert.Zero(t, user.LoginAttempts)
		assert.NotNil(t, user.LastLoginAt)
		assert.Equal(t, "203.0.113.7", user.LastLoginIP)
	})
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewAdmin("admin@example.com", "secret123", "Admin")
	require.NoError(t, err)

	user.Deactivate()

	assert.False(t, user.IsActive)
	assert.False(t, user.CanLogin())

	user.Activate()

	assert.True(t, user.IsActive)
	assert.True(t, user.CanLogin())
}
