package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// DefaultTTL время жизни закешированного множителя
// Множитель зависит от счетчиков трафика, которые меняются постоянно,
// поэтому TTL намеренно короткий
const DefaultTTL = 5 * time.Minute

// MultiplierCache кеш вычисленных множителей цены поверх Redis
type MultiplierCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMultiplierCache создает кеш множителей
// ttl <= 0 заменяется на DefaultTTL
func NewMultiplierCache(client *redis.Client, ttl time.Duration) *MultiplierCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MultiplierCache{client: client, ttl: ttl}
}

// Get возвращает закешированный множитель для диапазона дат
// Второе значение false - промах кеша
func (c *MultiplierCache) Get(ctx context.Context, startDate, endDate time.Time) (float64, bool, error) {
	value, err := c.client.Get(ctx, rangeKey(startDate, endDate)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache: get multiplier: %w", err)
	}

	multiplier, err := strconv.ParseFloat(value, 64)
	if err != nil {
		// Поврежденное значение трактуем как промах
		return 0, false, nil
	}

	return multiplier, true, nil
}

// Set кеширует множитель для диапазона дат
func (c *MultiplierCache) Set(ctx context.Context, startDate, endDate time.Time, multiplier float64) error {
	value := strconv.FormatFloat(multiplier, 'f', -1, 64)
	if err := c.client.Set(ctx, rangeKey(startDate, endDate), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set multiplier: %w", err)
	}
	return nil
}

func rangeKey(startDate, endDate time.Time) string {
	return "pricing:multiplier:" + startDate.Format(domain.DateFormat) + ":" + endDate.Format(domain.DateFormat)
}
