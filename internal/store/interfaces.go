// Package store contains the persistence layer: SQL repositories for
// PostgreSQL and SQLite, the uploaded-file store and the token revocation
// list.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/med-cms/models"
)

// Transactor runs a function inside one database transaction. Repository
// calls made with the context passed to fn join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type IdentificationNumberRepository interface {
	List(ctx context.Context, filter models.IdentificationNumberFilter) ([]models.IdentificationNumber, int64, error)
	Stats(ctx context.Context) (models.IdentificationNumberStats, error)
	DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error)
	FindByID(ctx context.Context, id int64) (models.IdentificationNumber, error)
	FindByNumber(ctx context.Context, number string) (models.IdentificationNumber, error)
	Create(ctx context.Context, number models.IdentificationNumber) (models.IdentificationNumber, error)
	Update(ctx context.Context, number models.IdentificationNumber) (models.IdentificationNumber, error)
	Delete(ctx context.Context, id int64) error

	// CreateBatch inserts numbers that do not exist yet and returns how many
	// rows were created.
	CreateBatch(ctx context.Context, numbers []string, description *string) (int, error)

	// MarkAsUsed binds an active unused number to userID. It returns
	// ErrIdentificationNumberUnavailable when no such row matched.
	MarkAsUsed(ctx context.Context, number string, userID int64, at time.Time) error
	Release(ctx context.Context, id int64) (models.IdentificationNumber, error)
	ToggleStatus(ctx context.Context, id int64) (models.IdentificationNumber, error)
}

type ContentRepository interface {
	// FindActiveByUserAndType returns the active record of one type.
	FindActiveByUserAndType(ctx context.Context, userID int64, contentType models.ContentType) (models.SpecialistContent, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]models.SpecialistContent, error)
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]models.SpecialistContent, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	FindByID(ctx context.Context, id int64) (models.SpecialistContent, error)

	// Create assigns max(sort_order)+1 within the user's content when
	// SortOrder is zero.
	Create(ctx context.Context, content models.SpecialistContent) (models.SpecialistContent, error)
}

type FileRepository interface {
	// ListActiveByContent returns active files of the given content records
	// ordered by sort_order.
	ListActiveByContent(ctx context.Context, contentIDs ...int64) ([]models.SpecialistFile, error)

	// ListActiveByUser returns active files of the user's active content
	// with ContentType and OwnerID populated.
	ListActiveByUser(ctx context.Context, userID int64) ([]models.SpecialistFile, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)

	// FindByID returns a file regardless of its state, with ContentType and
	// OwnerID populated.
	FindByID(ctx context.Context, id int64) (models.SpecialistFile, error)
	IncrementDownloadCount(ctx context.Context, id int64) error

	// Create assigns max(sort_order)+1 within the content when SortOrder is
	// zero.
	Create(ctx context.Context, file models.SpecialistFile) (models.SpecialistFile, error)
	Delete(ctx context.Context, id int64) error
}

type PageRepository interface {
	ListPublished(ctx context.Context) ([]models.Page, error)
	FindHome(ctx context.Context) (models.Page, error)
	FindPublishedBySlug(ctx context.Context, slug string) (models.Page, error)
	FindByID(ctx context.Context, id int64) (models.Page, error)
	SlugExists(ctx context.Context, slug string, exceptID int64) (bool, error)
	Create(ctx context.Context, page models.Page) (models.Page, error)
	Update(ctx context.Context, page models.Page) (models.Page, error)
	Delete(ctx context.Context, id int64) error

	// ClearHome unsets is_home on every page except exceptID.
	ClearHome(ctx context.Context, exceptID int64) error
}

// TokenRevocationStore remembers JWT IDs revoked by logout until the token
// would have expired anyway.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// PruneExpired removes entries that expired before now and returns how
	// many were removed.
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

// FileStorage keeps uploaded file bodies. Paths are relative to the storage
// root.
type FileStorage interface {
	Save(ctx context.Context, path string, body io.Reader) (int64, error)
	// Open returns the stored object and its current size on disk.
	Open(ctx context.Context, path string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	Close() error
}
