package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
)

const (
	adsCacheKey = "ads:active"
	adsCacheTTL = 5 * time.Minute
)

// AdsService serves the public announcement board through a Redis
// read-through cache. The cache is advisory: any Redis failure falls
// back to the store.
type AdsService struct {
	ads    repository.AdRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewAdsService constructs the service. cache may be nil.
func NewAdsService(ads repository.AdRepository, cache *redis.Client, logger *zap.Logger) *AdsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdsService{ads: ads, cache: cache, logger: logger}
}

// RegisterInvalidation subscribes cache invalidation to reconciler
// writes so the board reflects sync mutations promptly.
func (s *AdsService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventAdSynced, func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	})
}

// ListActive returns active ads newest first, cached for the default
// page only.
func (s *AdsService) ListActive(ctx context.Context, limit, offset int) ([]domain.Ad, error) {
	cacheable := s.cache != nil && limit <= 0 && offset <= 0

	if cacheable {
		if raw, err := s.cache.Get(ctx, adsCacheKey).Bytes(); err == nil {
			var cached []domain.Ad
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	adsList, err := s.ads.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(adsList); err == nil {
			if err := s.cache.Set(ctx, adsCacheKey, raw, adsCacheTTL).Err(); err != nil {
				s.logger.Warn("ads cache write failed", zap.Error(err))
			}
		}
	}
	return adsList, nil
}

// Invalidate drops the cached board.
func (s *AdsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, adsCacheKey).Err(); err != nil {
		s.logger.Warn("ads cache invalidation failed", zap.Error(err))
	}
}
