package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/med-cms/internal/logger"
)

func TestSQLTokenRevocationStore(t *testing.T) {
	db := newTestSQLiteDB(t)
	s := NewSQLTokenRevocationStore(db, logger.Nop())
	ctx := context.Background()
	now := time.Now().UTC()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, s.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, s.Revoke(ctx, "jti-old", now.Add(-time.Hour)))

	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	pruned, err := s.PruneExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	revoked, err = s.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
