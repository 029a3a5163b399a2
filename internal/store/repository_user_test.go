package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, models.User{
		FirstName:    "Иван",
		LastName:     "Иванов",
		Email:        "Ivan@Example.ORG",
		Password:     "hash",
		Role:         models.RoleSpecialist,
		IsActive:     true,
		HospitalName: "City Hospital",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ivan@example.org", created.Email)
	assert.Equal(t, models.RoleSpecialist, created.Role)
	assert.Nil(t, created.LastLoginAt)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.FindUserByEmail(ctx, "  IVAN@example.org ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "City Hospital", byEmail.HospitalName)

	byID, err := repo.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.Password)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())

	createTestUser(t, db, "dup@example.org", models.RoleSpecialist)

	_, err := repo.CreateUser(context.Background(), models.User{
		FirstName: "A", LastName: "B", Email: "DUP@example.org", Password: "x", Role: models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()

	_, err := repo.FindUserByID(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindUserByEmail(ctx, "nobody@example.org")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 404, "x"), ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdateLastLogin(ctx, 404, time.Now()), ErrUserNotFound)
}

func TestUserRepository_Updates(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.org", models.RoleSpecialist)
	createTestUser(t, db, "taken@example.org", models.RoleSpecialist)

	user.FirstName = "Мария"
	user.Email = "New@Example.org"
	updated, err := repo.UpdateProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Мария", updated.FirstName)
	assert.Equal(t, "new@example.org", updated.Email)

	user.Email = "taken@example.org"
	_, err = repo.UpdateProfile(ctx, user)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))

	found, err := repo.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.Password)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, at.Equal(*found.LastLoginAt))
}

func TestUserRepository_Postgres_UniqueViolation(t *testing.T) {
	db, mock := newTestMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (first_name,last_name,email,password,role,is_active,hospital_name,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING")).
		WithArgs("A", "B", "a@example.org", "hash", "specialist", true, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{
		FirstName: "A", LastName: "B", Email: "A@example.org", Password: "hash", Role: models.RoleSpecialist, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Postgres_UnexpectedError(t *testing.T) {
	db, mock := newTestMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.FindUserByID(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
