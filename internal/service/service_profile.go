package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

const (
	recentActivityLimit = 5
	untitledContent     = "Без названия"
)

type profileService struct {
	transactor        store.Transactor
	userRepository    store.UserRepository
	contentRepository store.ContentRepository
	fileRepository    store.FileRepository

	hasher    *utils.PasswordHasher
	validator validators.Validator

	logger *logger.Logger
}

func NewProfileService(storages *store.Storages, hasher *utils.PasswordHasher, validator validators.Validator, logger *logger.Logger) ProfileService {
	return &profileService{
		transactor:        storages.Transactor,
		userRepository:    storages.UserRepository,
		contentRepository: storages.ContentRepository,
		fileRepository:    storages.FileRepository,
		hasher:            hasher,
		validator:         validator,
		logger:            logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, user models.User) (models.Profile, error) {
	contentPages, err := s.contentRepository.CountByUser(ctx, user.ID)
	if err != nil {
		return models.Profile{}, err
	}

	files, err := s.fileRepository.CountByUser(ctx, user.ID)
	if err != nil {
		return models.Profile{}, err
	}

	return models.Profile{
		UserSummary: user.Summary(),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		Statistics: models.ContentStats{
			ContentPages: int(contentPages),
			TotalFiles:   int(files),
		},
	}, nil
}

// UpdateProfile changes name and email. An email taken by another account
// is reported as a validation error.
func (s *profileService) UpdateProfile(ctx context.Context, user models.User, req models.UpdateProfileRequest) (models.UserSummary, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.UserSummary{}, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email

	var updated models.User
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.userRepository.UpdateProfile(ctx, user)
		return err
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.UserSummary{}, validators.NewValidationError("email", "The email has already been taken.")
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.UpdateProfile").Int64("user_id", user.ID).Msg("error updating profile")
		return models.UserSummary{}, fmt.Errorf("error updating profile: %w", err)
	}

	return updated.Summary(), nil
}

// ChangePassword replaces the password after checking the current one. A
// wrong current password is a validation error on current_password.
func (s *profileService) ChangePassword(ctx context.Context, user models.User, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return err
	}

	if err := s.hasher.Compare(user.Password, req.CurrentPassword); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			return fmt.Errorf("%w: %w", ErrWrongPassword,
				validators.NewValidationError("current_password", "The current password is incorrect."))
		}
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.userRepository.UpdatePassword(ctx, user.ID, hash)
	})
	if err != nil {
		log.Err(err).Str("func", "*profileService.ChangePassword").Int64("user_id", user.ID).Msg("error changing password")
		return fmt.Errorf("error changing password: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *profileService) GetActivity(ctx context.Context, user models.User, locale string) (models.Activity, error) {
	recent, err := s.contentRepository.ListRecentByUser(ctx, user.ID, recentActivityLimit)
	if err != nil {
		return models.Activity{}, err
	}

	total, err := s.contentRepository.CountByUser(ctx, user.ID)
	if err != nil {
		return models.Activity{}, err
	}

	updates := make([]models.ContentUpdate, 0, len(recent))
	for _, c := range recent {
		updates = append(updates, models.ContentUpdate{
			Type:      c.ContentType,
			TypeName:  c.ContentType.Name(locale),
			Title:     c.Title.Resolve(locale, untitledContent),
			UpdatedAt: c.UpdatedAt,
		})
	}

	return models.Activity{
		LastLogin:            user.LastLoginAt,
		RegistrationDate:     user.CreatedAt,
		Hospital:             user.HospitalName,
		RecentContentUpdates: updates,
		TotalContent:         int(total),
	}, nil
}

// GetSettings returns the defaults; settings are not persisted.
func (s *profileService) GetSettings(ctx context.Context, user models.User) models.Settings {
	return models.DefaultSettings()
}

// UpdateSettings validates the request and returns it merged over the
// defaults.
func (s *profileService) UpdateSettings(ctx context.Context, user models.User, req models.SettingsRequest) (models.Settings, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Settings{}, err
	}

	settings := s.GetSettings(ctx, user)
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	if req.ProfileVisibility != nil {
		settings.ProfileVisibility = *req.ProfileVisibility
	}

	return settings, nil
}
