package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/painel-afiliado/service-affiliate/internal/domain/affiliate"
	"github.com/painel-afiliado/service-affiliate/internal/providers"
)

// ReportCacheService memoizes conversion report fetches keyed by date range.
// Within the TTL window an identical request is served from Redis without a
// network call; after expiry the next call refreshes unconditionally.
type ReportCacheService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// CachedReport is the cached fetch result.
type CachedReport struct {
	Nodes    []providers.ConversionNode `json:"nodes"`
	CachedAt time.Time                  `json:"cached_at"`
}

// NewReportCacheService creates a new report cache service.
func NewReportCacheService(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportCacheService {
	if ttl == 0 {
		ttl = 10 * time.Minute // Default TTL
	}
	return &ReportCacheService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey generates a cache key for a report fetch.
func (s *ReportCacheService) cacheKey(dateRange affiliate.DateRange) string {
	return fmt.Sprintf("affiliate:report:%s:%s", dateRange.StartKey(), dateRange.EndKey())
}

// Get retrieves a cached report. Cache problems degrade to a miss.
func (s *ReportCacheService) Get(ctx context.Context, dateRange affiliate.DateRange) (*CachedReport, error) {
	if s.redis == nil {
		return nil, nil // No cache available
	}

	key := s.cacheKey(dateRange)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		s.logger.Warn("failed to get report from cache", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	var cached CachedReport
	if err := json.Unmarshal(data, &cached); err != nil {
		s.logger.Warn("failed to unmarshal cached report", zap.Error(err))
		return nil, nil
	}

	s.logger.Debug("cache hit for report", zap.String("key", key))
	return &cached, nil
}

// Set stores a fetched report in cache.
func (s *ReportCacheService) Set(ctx context.Context, dateRange affiliate.DateRange, nodes []providers.ConversionNode) error {
	if s.redis == nil {
		return nil // No cache available
	}

	cached := CachedReport{Nodes: nodes, CachedAt: time.Now()}
	key := s.cacheKey(dateRange)

	data, err := json.Marshal(cached)
	if err != nil {
		s.logger.Warn("failed to marshal report for cache", zap.Error(err))
		return err
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to set report in cache", zap.Error(err), zap.String("key", key))
		return err
	}

	s.logger.Debug("cached report", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Invalidate removes all cached reports.
func (s *ReportCacheService) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	keys, err := s.redis.Keys(ctx, "affiliate:report:*").Result()
	if err != nil {
		s.logger.Warn("failed to find cache keys to invalidate", zap.Error(err))
		return err
	}

	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("failed to invalidate report cache", zap.Error(err))
			return err
		}
		s.logger.Debug("invalidated report cache", zap.Int("keys_removed", len(keys)))
	}

	return nil
}
