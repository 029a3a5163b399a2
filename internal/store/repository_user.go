package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] and
// join the transaction carried by ctx, if any.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user and returns it with the generated ID and
// timestamps. The email is stored lowercased.
//
// A duplicate email yields [ErrEmailAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	row, err := r.db.queryRow(ctx, r.db.builder.
		Insert(tableUsers).
		Columns("first_name", "last_name", "email", "password", "role", "is_active", "hospital_name", "created_at", "updated_at").
		Values(user.FirstName, user.LastName, strings.ToLower(user.Email), user.Password, string(user.Role), user.IsActive, user.HospitalName, now, now).
		Suffix(returning(userColumns)))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, err
	}

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"id": id})
}

// FindUserByEmail matches the email case-insensitively.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *userRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.builder.Select(userColumns...).From(tableUsers).Where(where))
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.User{}, err
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateProfile overwrites first name, last name and email of user.ID.
func (r *userRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", user.ID).Logger()

	row, err := r.db.queryRow(ctx, r.db.builder.
		Update(tableUsers).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", strings.ToLower(user.Email)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": user.ID}).
		Suffix(returning(userColumns)))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error building query")
		return models.User{}, err
	}

	updated, err := scanUser(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil && r.db.errorClassificator.IsUniqueViolation(err):
		return models.User{}, ErrEmailAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error updating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.update(ctx, "*userRepository.UpdatePassword", id, map[string]any{
		"password":   passwordHash,
		"updated_at": time.Now().UTC(),
	})
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.update(ctx, "*userRepository.UpdateLastLogin", id, map[string]any{
		"last_login_at": at.UTC(),
	})
}

func (r *userRepository) update(ctx context.Context, fn string, id int64, values map[string]any) error {
	log := logger.FromContext(ctx)

	affected, err := r.db.exec(ctx, r.db.builder.Update(tableUsers).SetMap(values).Where(sq.Eq{"id": id}))
	if err != nil {
		log.Err(err).Str("func", fn).Int64("user_id", id).Msg("error updating user")
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
