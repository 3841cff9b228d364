package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const seedKeyPrefix = "recipes:seeds"

// CachedCandidateStore serves recommended seeds from Redis when it can and
// falls through to the database otherwise. Every other read goes straight to
// the embedded store.
type CachedCandidateStore struct {
	*GormCandidateStore
	redis *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedCandidateStore wraps store with a Redis seed cache.
func NewCachedCandidateStore(store *GormCandidateStore, client *redis.Client, ttl time.Duration, log *logger.Logger) *CachedCandidateStore {
	return &CachedCandidateStore{
		GormCandidateStore: store,
		redis:              client,
		ttl:                ttl,
		log:                log.WithComponent("seed_cache"),
	}
}

func seedKey(limit int) string {
	return fmt.Sprintf("%s:%d", seedKeyPrefix, limit)
}

// FindRecommendedSeeds returns the cached seed list for limit, loading and
// caching it on a miss. Cache failures are logged and never returned.
func (s *CachedCandidateStore) FindRecommendedSeeds(ctx context.Context, limit int) ([]model.Recipe, error) {
	key := seedKey(limit)

	raw, err := s.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var recipes []model.Recipe
		if err := json.Unmarshal(raw, &recipes); err == nil {
			return recipes, nil
		}
		s.log.Warn().Str("key", key).Msg("discarding unreadable seed cache entry")
	case !errors.Is(err, redis.Nil):
		s.log.Warn().Err(err).Str("key", key).Msg("seed cache read failed")
	}

	recipes, err := s.GormCandidateStore.FindRecommendedSeeds(ctx, limit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(recipes)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode seeds for cache")
		return recipes, nil
	}
	if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("seed cache write failed")
	}
	return recipes, nil
}

// InvalidateSeeds drops every cached seed list. Called after writes that can
// change which recipes are recommended.
func (s *CachedCandidateStore) InvalidateSeeds(ctx context.Context) error {
	iter := s.redis.Scan(ctx, 0, seedKeyPrefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan seed cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate seed cache: %w", err)
	}
	s.log.Debug().Int("keys", len(keys)).Msg("seed cache invalidated")
	return nil
}
