package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

func newTestProfileService(t *testing.T) (*storeMocks, ProfileService) {
	t.Helper()
	mocks, storages := newStoreMocks(t)
	return mocks, NewProfileService(storages, testHasher, validators.NewRequestValidator(), logger.Nop())
}

func testSpecialist(t *testing.T) models.User {
	t.Helper()
	lastLogin := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return models.User{
		ID:           7,
		FirstName:    "Anna",
		LastName:     "Ivanova",
		HospitalName: "Minsk Central Hospital",
		Email:        "anna@example.org",
		Password:     mustHash(t, "secret123"),
		Role:         models.RoleSpecialist,
		IsActive:     true,
		LastLoginAt:  &lastLogin,
		CreatedAt:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestProfileService_GetProfile(t *testing.T) {
	mocks, svc := newTestProfileService(t)
	ctx := context.Background()
	user := testSpecialist(t)

	mocks.contents.EXPECT().CountByUser(ctx, int64(7)).Return(int64(2), nil)
	mocks.files.EXPECT().CountByUser(ctx, int64(7)).Return(int64(5), nil)

	profile, err := svc.GetProfile(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, "Anna Ivanova", profile.FullName)
	assert.Equal(t, user.LastLoginAt, profile.LastLoginAt)
	assert.Equal(t, models.ContentStats{ContentPages: 2, TotalFiles: 5}, profile.Statistics)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		mocks, svc := newTestProfileService(t)
		ctx := context.Background()

		mocks.expectTransaction()
		mocks.users.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "Maria", u.FirstName)
				assert.Equal(t, "maria@example.org", u.Email)
				return u, nil
			})

		summary, err := svc.UpdateProfile(ctx, testSpecialist(t), models.UpdateProfileRequest{
			FirstName: "Maria",
			LastName:  "Ivanova",
			Email:     "maria@example.org",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maria Ivanova", summary.FullName)
	})

	t.Run("email taken", func(t *testing.T) {
		mocks, svc := newTestProfileService(t)

		mocks.expectTransaction()
		mocks.users.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

		_, err := svc.UpdateProfile(context.Background(), testSpecialist(t), models.UpdateProfileRequest{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "taken@example.org",
		})

		var vErr *validators.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "email")
	})

	t.Run("invalid name", func(t *testing.T) {
		_, svc := newTestProfileService(t)

		_, err := svc.UpdateProfile(context.Background(), testSpecialist(t), models.UpdateProfileRequest{
			FirstName: "A",
			LastName:  "Ivanova",
			Email:     "anna@example.org",
		})

		assert.ErrorIs(t, err, validators.ErrValidation)
	})
}

func TestProfileService_ChangePassword(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		mocks, svc := newTestProfileService(t)

		mocks.expectTransaction()
		mocks.users.EXPECT().UpdatePassword(gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, hash string) error {
				assert.NoError(t, testHasher.Compare(hash, "newpass99"))
				return nil
			})

		err := svc.ChangePassword(context.Background(), testSpecialist(t), models.ChangePasswordRequest{
			CurrentPassword:      "secret123",
			Password:             "newpass99",
			PasswordConfirmation: "newpass99",
		})

		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		_, svc := newTestProfileService(t)

		err := svc.ChangePassword(context.Background(), testSpecialist(t), models.ChangePasswordRequest{
			CurrentPassword:      "secret124",
			Password:             "newpass99",
			PasswordConfirmation: "newpass99",
		})

		assert.ErrorIs(t, err, ErrWrongPassword)
		var vErr *validators.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "current_password")
	})

	t.Run("same as current", func(t *testing.T) {
		_, svc := newTestProfileService(t)

		err := svc.ChangePassword(context.Background(), testSpecialist(t), models.ChangePasswordRequest{
			CurrentPassword:      "secret123",
			Password:             "secret123",
			PasswordConfirmation: "secret123",
		})

		assert.ErrorIs(t, err, validators.ErrValidation)
	})
}

func TestProfileService_GetActivity(t *testing.T) {
	mocks, svc := newTestProfileService(t)
	ctx := context.Background()
	user := testSpecialist(t)
	updated := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mocks.contents.EXPECT().ListRecentByUser(ctx, int64(7), 5).Return([]models.SpecialistContent{
		{ContentType: models.ContentTypeLegislation, Title: models.Translatable{"ru": "Законы", "en": "Laws"}, UpdatedAt: updated},
		{ContentType: models.ContentTypeInformation, UpdatedAt: updated},
	}, nil)
	mocks.contents.EXPECT().CountByUser(ctx, int64(7)).Return(int64(2), nil)

	activity, err := svc.GetActivity(ctx, user, models.LocaleEN)

	require.NoError(t, err)
	assert.Equal(t, "Minsk Central Hospital", activity.Hospital)
	assert.Equal(t, 2, activity.TotalContent)
	require.Len(t, activity.RecentContentUpdates, 2)
	assert.Equal(t, "Laws", activity.RecentContentUpdates[0].Title)
	assert.Equal(t, "Legislation", activity.RecentContentUpdates[0].TypeName)
	assert.Equal(t, "Без названия", activity.RecentContentUpdates[1].Title)
}

func TestProfileService_Settings(t *testing.T) {
	_, svc := newTestProfileService(t)
	ctx := context.Background()
	user := testSpecialist(t)

	assert.Equal(t, models.DefaultSettings(), svc.GetSettings(ctx, user))

	settings, err := svc.UpdateSettings(ctx, user, models.SettingsRequest{
		Language:           ptr(models.LocaleEN),
		EmailNotifications: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Settings{Language: "en", EmailNotifications: false, ProfileVisibility: "internal"}, settings)

	_, err = svc.UpdateSettings(ctx, user, models.SettingsRequest{ProfileVisibility: ptr("everyone")})
	assert.ErrorIs(t, err, validators.ErrValidation)
}
