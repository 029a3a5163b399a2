package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

// newTestSQLiteDB opens a migrated SQLite database in a temp dir.
func newTestSQLiteDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: "sqlite://" + t.TempDir() + "/test.db"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

// newTestMockDB wraps sqlmock as a PostgreSQL connection.
func newTestMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return newDB(conn, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func createTestUser(t *testing.T, db *DB, email string, role models.Role) models.User {
	t.Helper()

	user, err := NewUserRepository(db, logger.Nop()).CreateUser(context.Background(), models.User{
		FirstName: "Анна",
		LastName:  "Петрова",
		Email:     email,
		Password:  "hash",
		Role:      role,
		IsActive:  true,
	})
	require.NoError(t, err)
	return user
}
