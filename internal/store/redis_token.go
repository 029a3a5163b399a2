package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
)

const revokedTokenKeyPrefix = "medcms:revoked:jti:"

// NewRedisClient connects to cfg.URL and pings it. It returns nil, nil when
// no URL is configured.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("redis ping failed")
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")
	return client, nil
}

// redisTokenRevocationStore keeps each revoked JWT ID as a key that expires
// together with the token, so shared state survives across instances.
type redisTokenRevocationStore struct {
	client redis.Cmdable
	logger *logger.Logger
}

func NewRedisTokenRevocationStore(client redis.Cmdable, logger *logger.Logger) TokenRevocationStore {
	logger.Debug().Msg("creating redis token revocation store")
	return &redisTokenRevocationStore{
		client: client,
		logger: logger,
	}
}

// Revoke stores jti until expiresAt. Already expired tokens are skipped.
func (s *redisTokenRevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisTokenRevocationStore.Revoke").Msg("error revoking token")
		return fmt.Errorf("%w: %w", ErrRevocationStoreError, err)
	}
	return nil
}

func (s *redisTokenRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	err := s.client.Get(ctx, revokedTokenKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisTokenRevocationStore.IsRevoked").Msg("error checking token")
		return false, fmt.Errorf("%w: %w", ErrRevocationStoreError, err)
	}
	return true, nil
}

// PruneExpired is a no-op: keys expire on their own.
func (s *redisTokenRevocationStore) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
