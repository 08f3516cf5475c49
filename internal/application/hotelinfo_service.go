package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

const hotelInfoCacheKey = "portal:hotel-info"

// HotelInfoService supplies the hotel-wide configuration (tax rate, currency
// symbol) with a TTL cache in front of the collaborator: redis when
// configured, an in-process copy otherwise. Callers always receive the value
// explicitly; nothing reads it ambiently.
type HotelInfoService struct {
	gateway reservation.HotelInfoGateway
	rdb     *redis.Client
	ttl     time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	cached   *reservation.HotelInfo
	cachedAt time.Time
}

// NewHotelInfoService creates a HotelInfoService. rdb may be nil, in which
// case only the in-process cache is used.
func NewHotelInfoService(gateway reservation.HotelInfoGateway, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *HotelInfoService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HotelInfoService{gateway: gateway, rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the hotel configuration, serving from cache within the TTL.
// Cache failures degrade to a direct fetch, never to an error.
func (s *HotelInfoService) Get(ctx context.Context) (reservation.HotelInfo, error) {
	if info, ok := s.fromMemory(); ok {
		return info, nil
	}
	if info, ok := s.fromRedis(ctx); ok {
		s.storeMemory(info)
		return info, nil
	}

	info, err := s.gateway.HotelInfo(ctx)
	if err != nil {
		return reservation.HotelInfo{}, fmt.Errorf("failed to fetch hotel info: %w", err)
	}

	s.storeMemory(info)
	s.storeRedis(ctx, info)
	return info, nil
}

// Invalidate drops the cached copy, forcing the next Get to hit the
// collaborator.
func (s *HotelInfoService) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, hotelInfoCacheKey).Err(); err != nil {
			s.logger.Warn("failed to drop hotel info from redis", zap.Error(err))
		}
	}
}

func (s *HotelInfoService) fromMemory() (reservation.HotelInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil || time.Since(s.cachedAt) > s.ttl {
		return reservation.HotelInfo{}, false
	}
	return *s.cached, true
}

func (s *HotelInfoService) storeMemory(info reservation.HotelInfo) {
	s.mu.Lock()
	s.cached = &info
	s.cachedAt = time.Now()
	s.mu.Unlock()
}

func (s *HotelInfoService) fromRedis(ctx context.Context) (reservation.HotelInfo, bool) {
	if s.rdb == nil {
		return reservation.HotelInfo{}, false
	}
	raw, err := s.rdb.Get(ctx, hotelInfoCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("hotel info cache read failed", zap.Error(err))
		}
		return reservation.HotelInfo{}, false
	}

	var info reservation.HotelInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		s.logger.Warn("hotel info cache entry malformed", zap.Error(err))
		return reservation.HotelInfo{}, false
	}
	return info, true
}

func (s *HotelInfoService) storeRedis(ctx context.Context, info reservation.HotelInfo) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, hotelInfoCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("hotel info cache write failed", zap.Error(err))
	}
}
