package service

import (
	"context"
	"io"

	"github.com/MKhiriev/med-cms/models"
)

// AuthService covers login, specialist self-registration and the bearer
// token lifecycle.
type AuthService interface {
	// Login checks credentials and issues a token. It returns
	// ErrInvalidCredentials or ErrAccountInactive on refusal.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)

	// RegisterSpecialist creates a specialist account and consumes the
	// identification number in one transaction.
	RegisterSpecialist(ctx context.Context, req models.RegisterSpecialistRequest) (models.AuthResult, error)

	// CheckIdentificationNumber reports whether a code can be used for
	// registration.
	CheckIdentificationNumber(ctx context.Context, req models.CheckIDRequest) (models.IdentificationNumberCheck, error)

	// Authenticate validates a raw bearer token and loads its user.
	Authenticate(ctx context.Context, tokenString string) (models.User, models.Token, error)

	// Logout revokes the token until it expires.
	Logout(ctx context.Context, token models.Token) error

	// PruneRevokedTokens drops revocation entries of expired tokens.
	PruneRevokedTokens(ctx context.Context) (int64, error)

	// EnsureAdmin creates an active administrator with the given credentials
	// unless an account with that email already exists.
	EnsureAdmin(ctx context.Context, email, password string) error
}

// IdentificationNumberService is the admin surface of the registration
// code registry.
type IdentificationNumberService interface {
	List(ctx context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error)
	Report(ctx context.Context) (models.IdentificationNumberReport, error)
	Get(ctx context.Context, id int64) (models.IdentificationNumber, error)
	Create(ctx context.Context, req models.IdentificationNumberRequest) (models.IdentificationNumber, error)
	Update(ctx context.Context, id int64, req models.IdentificationNumberRequest) (models.IdentificationNumber, error)

	// Delete refuses used codes with ErrCannotDeleteUsedNumber.
	Delete(ctx context.Context, id int64) error

	// CreateBatch creates PREFIX001-style codes for the range and skips
	// codes that already exist.
	CreateBatch(ctx context.Context, req models.BatchRequest) (models.BatchResult, error)

	// Release unbinds a used code from its user. The released code and the
	// user it was bound to are returned.
	Release(ctx context.Context, id int64) (models.IdentificationNumber, *models.UserSummary, error)
	ToggleStatus(ctx context.Context, id int64) (models.IdentificationNumber, error)
}

// ProfileService serves the specialist's own account pages.
type ProfileService interface {
	GetProfile(ctx context.Context, user models.User) (models.Profile, error)
	UpdateProfile(ctx context.Context, user models.User, req models.UpdateProfileRequest) (models.UserSummary, error)
	ChangePassword(ctx context.Context, user models.User, req models.ChangePasswordRequest) error
	GetActivity(ctx context.Context, user models.User, locale string) (models.Activity, error)
	GetSettings(ctx context.Context, user models.User) models.Settings
	UpdateSettings(ctx context.Context, user models.User, req models.SettingsRequest) (models.Settings, error)
}

// ContentService aggregates a specialist's content pages with their files.
type ContentService interface {
	GetByType(ctx context.Context, user models.User, contentType models.ContentType, locale string) (models.ContentByType, error)
	GetAll(ctx context.Context, user models.User, locale string) (models.AllContent, error)
	Meta(locale string) models.ContentMeta

	// Create provisions content for a specialist. HTML is sanitized.
	Create(ctx context.Context, req models.ContentRequest) (models.SpecialistContent, error)
}

// FileService serves specialist files and their admin management.
type FileService interface {
	ListByType(ctx context.Context, user models.User, contentType models.ContentType, locale string) (models.ContentByType, error)
	ListAll(ctx context.Context, user models.User, locale string) (models.AllFiles, error)
	Stats(ctx context.Context, user models.User, locale string) (models.FileStats, error)
	Info(ctx context.Context, user models.User, fileID int64, locale string) (models.FileInfo, error)

	// Download checks ownership, state and presence of the file in that
	// order and counts the download. The caller must close the body.
	Download(ctx context.Context, user models.User, fileID int64) (models.DownloadableFile, error)

	Upload(ctx context.Context, upload models.FileUpload, body io.Reader) (models.SpecialistFile, error)

	// Delete removes the record and then the stored file.
	Delete(ctx context.Context, fileID int64) error
}

// PageService serves public CMS pages and their admin management.
type PageService interface {
	List(ctx context.Context, locale string) ([]models.PageListItem, error)
	Home(ctx context.Context, locale string) (models.PageView, error)
	Navigation(ctx context.Context, locale string) ([]models.NavigationItem, error)
	BySlug(ctx context.Context, slug, locale string) (models.PageView, error)
	Create(ctx context.Context, req models.PageRequest) (models.Page, error)
	Update(ctx context.Context, id int64, req models.PageRequest) (models.Page, error)
	Delete(ctx context.Context, id int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) models.Health
}

// AuthServiceWrapper decorates an AuthService, e.g. with request validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}
