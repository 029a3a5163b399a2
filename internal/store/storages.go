package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
)

// Storages bundles every repository and store the services depend on.
type Storages struct {
	Transactor                     Transactor
	UserRepository                 UserRepository
	IdentificationNumberRepository IdentificationNumberRepository
	ContentRepository              ContentRepository
	FileRepository                 FileRepository
	PageRepository                 PageRepository
	TokenRevocationStore           TokenRevocationStore
	FileStorage                    FileStorage

	db    *DB
	redis *redis.Client
}

// NewStorages connects the database selected by the DSN scheme, applies
// migrations, opens the file store and picks the token revocation backend:
// Redis when configured, the database otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := Connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	files, err := NewLocalFileStorage(cfg.Files.UploadDir, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	redisClient, err := NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := newStorages(db, files, log)
	if redisClient != nil {
		s.redis = redisClient
		s.TokenRevocationStore = NewRedisTokenRevocationStore(redisClient, log)
	}
	return s, nil
}

func newStorages(db *DB, files FileStorage, log *logger.Logger) *Storages {
	return &Storages{
		Transactor:                     db,
		UserRepository:                 NewUserRepository(db, log),
		IdentificationNumberRepository: NewIdentificationNumberRepository(db, log),
		ContentRepository:              NewContentRepository(db, log),
		FileRepository:                 NewFileRepository(db, log),
		PageRepository:                 NewPageRepository(db, log),
		TokenRevocationStore:           NewSQLTokenRevocationStore(db, log),
		FileStorage:                    files,
		db:                             db,
	}
}

// Connect opens the database named by cfg.DSN: postgres:// and
// postgresql:// use PostgreSQL, sqlite:// and file: use SQLite.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case strings.HasPrefix(cfg.DSN, "sqlite://"), strings.HasPrefix(cfg.DSN, "file:"):
		return NewConnectSQLite(ctx, cfg, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, schemeOf(cfg.DSN))
}

func schemeOf(dsn string) string {
	if i := strings.Index(dsn, ":"); i > 0 {
		return dsn[:i]
	}
	return ""
}

// Ping checks the database and, when configured, Redis.
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	var errs []error
	if s.FileStorage != nil {
		errs = append(errs, s.FileStorage.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
