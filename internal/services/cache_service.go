package services

import (
	"context"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/cache"
)

// CacheService abstracts the Redis cache so repositories can run without
// one (a nil CacheService disables caching).
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	DeletePattern(ctx context.Context, pattern string) error
}

type cacheService struct {
	redis *cache.RedisCache
}

func NewCacheService(redis *cache.RedisCache) CacheService {
	return &cacheService{redis: redis}
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.redis.Set(ctx, key, value, expiration)
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.redis.Get(ctx, key, dest)
}

func (s *cacheService) Delete(ctx context.Context, key string) error {
	return s.redis.Delete(ctx, key)
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

func (s *cacheService) DeletePattern(ctx context.Context, pattern string) error {
	_, err := s.redis.DeletePattern(ctx, pattern)
	return err
}
