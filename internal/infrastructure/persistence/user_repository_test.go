package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/identity"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "email", "password_hash", "name", "role", "active", "login_attempts", "lock_until", "last_login_at", "last_login_ip"}
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("matches email case-insensitively", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(gormDB)

		userID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(userColumns()).
			AddRow(userID, now, now, "admin@example.com", "$2a$12$hash", "Admin", "admin", true, 0, nil, nil, "")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = LOWER\(\$1\) ORDER BY .* LIMIT .*`).
			WithArgs("Admin@Example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "Admin@Example.com")

		require.NoError(t, err)
		assert.Equal(t, userID, user.GetID())
		assert.Equal(t, identity.RoleAdmin, user.Role)
		assert.True(t, user.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown email", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = LOWER\(\$1\) ORDER BY .* LIMIT .*`).
			WithArgs("ghost@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByEmail(context.Background(), "ghost@example.com")

		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindAdmin(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(gormDB)

	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(userID, now, now, "admin@example.com", "$2a$12$hash", "Admin", "admin", true, 0, nil, nil, "")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 ORDER BY created_at ASC,.* LIMIT .*`).
		WithArgs("admin", 1).
		WillReturnRows(rows)

	user, err := repo.FindAdmin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, userID, user.GetID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "admin@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
