package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/contact"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func contactColumns() []string {
	return []string{"id", "created_at", "updated_at", "name", "email", "project_type", "message", "status", "ip_address", "user_agent"}
}

func TestGormContactRepository_FindByID(t *testing.T) {
	t.Run("finds existing contact", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormContactRepository(gormDB)

		contactID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(contactColumns()).
			AddRow(contactID, now, now, "Jane", "jane@example.com", "web-development", "Need a website.", "new", "203.0.113.7", "Mozilla/5.0")

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(contactID, 1).
			WillReturnRows(rows)

		c, err := repo.FindByID(context.Background(), contactID)

		require.NoError(t, err)
		assert.Equal(t, contactID, c.GetID())
		assert.Equal(t, "jane@example.com", c.Email)
		assert.Equal(t, contact.StatusNew, c.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing contact", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormContactRepository(gormDB)

		contactID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(contactID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		c, err := repo.FindByID(context.Background(), contactID)

		assert.Nil(t, c)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_Create(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormContactRepository(gormDB)

	c, err := contact.NewContact("Jane", "jane@example.com", contact.ProjectTypeOther, "Hello.", "", "")
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "contacts"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormContactRepository_List(t *testing.T) {
	t.Run("filters by status with pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormContactRepository(gormDB)

		now := time.Now()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE status = \$1`).
			WithArgs("new").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows(contactColumns()).
			AddRow(uuid.New(), now, now, "Jane", "jane@example.com", "other", "Hi.", "new", "", "")

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE status = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs("new", 20).
			WillReturnRows(rows)

		page, err := repo.List(context.Background(), contact.Filter{Status: contact.StatusNew, Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_CountByStatus(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormContactRepository(gormDB)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("new", 4).
		AddRow("read", 3).
		AddRow("replied", 2).
		AddRow("archived", 1)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) as count FROM "contacts" GROUP BY .*`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Total)
	assert.Equal(t, int64(4), counts.New)
	assert.Equal(t, int64(1), counts.Archived)
	assert.NoError(t, mock.ExpectationsWereMet())
}
