package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/med-cms/internal/logger"
)

// sqlTokenRevocationStore keeps revoked JWT IDs in the "revoked_tokens"
// table. It is used when no Redis is configured.
type sqlTokenRevocationStore struct {
	logger *logger.Logger
	db     *DB
}

func NewSQLTokenRevocationStore(db *DB, logger *logger.Logger) TokenRevocationStore {
	logger.Debug().Msg("creating sql token revocation store")
	return &sqlTokenRevocationStore{
		db:     db,
		logger: logger,
	}
}

// Revoke is idempotent.
func (s *sqlTokenRevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := s.db.exec(ctx, s.db.builder.
		Insert(tableRevokedTokens).
		Columns("jti", "expires_at").
		Values(jti, expiresAt.UTC()).
		Suffix("ON CONFLICT (jti) DO NOTHING"))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlTokenRevocationStore.Revoke").Msg("error revoking token")
		return fmt.Errorf("%w: %w", ErrRevocationStoreError, err)
	}
	return nil
}

func (s *sqlTokenRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	row, err := s.db.queryRow(ctx, s.db.builder.
		Select("COUNT(*)").
		From(tableRevokedTokens).
		Where(sq.Eq{"jti": jti}))
	if err != nil {
		return false, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlTokenRevocationStore.IsRevoked").Msg("error checking token")
		return false, fmt.Errorf("%w: %w", ErrRevocationStoreError, err)
	}
	return count > 0, nil
}

func (s *sqlTokenRevocationStore) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	affected, err := s.db.exec(ctx, s.db.builder.
		Delete(tableRevokedTokens).
		Where(sq.Lt{"expires_at": now.UTC()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRevocationStoreError, err)
	}
	return affected, nil
}
