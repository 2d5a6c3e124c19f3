package service

import (
	"context"
	"strconv"
	"time"

	"quizmoa/internal/cache"
	"quizmoa/internal/domain"
	"quizmoa/internal/logger"

	"go.uber.org/zap"
)

// UsageService tracks per-user daily quiz generation counts.
type UsageService interface {
	// ConsumeGeneration counts one generation against today's quota and
	// returns the number of generations left. It returns a quota error when
	// the daily limit was already reached.
	ConsumeGeneration(ctx context.Context, userID string) (remaining int, err error)

	// RemainingGenerations reports how many generations the user has left
	// today without consuming one.
	RemainingGenerations(ctx context.Context, userID string) (int, error)
}

type usageService struct {
	cache      domain.Cache
	dailyLimit int
	location   *time.Location
}

// NewUsageService creates a usage tracker backed by the cache. Counters are
// keyed by calendar day in the service's display timezone and expire at the
// following midnight.
func NewUsageService(c domain.Cache, dailyLimit int) UsageService {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.UTC
	}
	return &usageService{
		cache:      c,
		dailyLimit: dailyLimit,
		location:   loc,
	}
}

func (s *usageService) dailyKey(userID string, now time.Time) string {
	day := now.In(s.location).Format("2006-01-02")
	return cache.GenerateCacheKey("usage", "daily_generations", userID, day)
}

func (s *usageService) untilMidnight(now time.Time) time.Duration {
	local := now.In(s.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, 1)
	return midnight.Sub(local)
}

func (s *usageService) ConsumeGeneration(ctx context.Context, userID string) (int, error) {
	now := time.Now()
	key := s.dailyKey(userID, now)

	count, err := s.cache.Incr(ctx, key)
	if err != nil {
		// The quota is a throttle, not a ledger. If the cache is down the
		// generation proceeds unmetered rather than failing the request.
		logger.Get().Warn("Usage counter unavailable, skipping quota check",
			zap.Error(err),
			zap.String("userID", userID))
		return s.dailyLimit, nil
	}

	if count == 1 {
		if err := s.cache.Expire(ctx, key, s.untilMidnight(now)); err != nil {
			logger.Get().Warn("Failed to set expiry on usage counter",
				zap.Error(err),
				zap.String("key", key))
		}
	}

	if int(count) > s.dailyLimit {
		return 0, domain.NewQuotaExceededError(s.dailyLimit)
	}
	return s.dailyLimit - int(count), nil
}

func (s *usageService) RemainingGenerations(ctx context.Context, userID string) (int, error) {
	key := s.dailyKey(userID, time.Now())

	val, err := s.cache.Get(ctx, key)
	if err != nil {
		if err == domain.ErrCacheMiss {
			return s.dailyLimit, nil
		}
		logger.Get().Warn("Usage counter unavailable", zap.Error(err), zap.String("userID", userID))
		return s.dailyLimit, nil
	}

	used, err := strconv.Atoi(val)
	if err != nil {
		used = 0
	}
	remaining := s.dailyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
