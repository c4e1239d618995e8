// Package cache кэш разрешенных расписаний площадок в Redis
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

const keyPrefix = "venue:hours:"

// ErrCache ошибка обращения к Redis
var ErrCache = errors.New("cache: redis error")

// HoursCache кэш CanonicalVenueHours по ID площадки
type HoursCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewHoursCache создает кэш расписаний
func NewHoursCache(client redis.Cmdable, ttl time.Duration) *HoursCache {
	return &HoursCache{client: client, ttl: ttl}
}

func key(venueID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, venueID)
}

// GetCanonicalHours возвращает расписание из кэша; found=false при промахе
// Поврежденная запись считается промахом и удаляется
func (c *HoursCache) GetCanonicalHours(ctx context.Context, venueID int64) (*domain.CanonicalVenueHours, bool, error) {
	val, err := c.client.Get(ctx, key(venueID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var hours domain.CanonicalVenueHours
	if err := json.Unmarshal(val, &hours); err != nil {
		_ = c.client.Del(ctx, key(venueID)).Err()
		return nil, false, nil
	}

	return &hours, true, nil
}

// SetCanonicalHours кладет расписание в кэш
func (c *HoursCache) SetCanonicalHours(ctx context.Context, venueID int64, hours domain.CanonicalVenueHours) error {
	data, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCache, err)
	}
	if err := c.client.Set(ctx, key(venueID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// InvalidateVenue удаляет расписание площадки из кэша
func (c *HoursCache) InvalidateVenue(ctx context.Context, venueID int64) error {
	if err := c.client.Del(ctx, key(venueID)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}

// Noop кэш-заглушка, когда Redis выключен
type Noop struct{}

func (Noop) GetCanonicalHours(context.Context, int64) (*domain.CanonicalVenueHours, bool, error) {
	return nil, false, nil
}

func (Noop) SetCanonicalHours(context.Context, int64, domain.CanonicalVenueHours) error { return nil }

func (Noop) InvalidateVenue(context.Context, int64) error { return nil }
