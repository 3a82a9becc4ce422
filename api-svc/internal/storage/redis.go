package storage

import (
	"context"
	"strconv"
	"time"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	allTimeSalesKey = "sales:alltime"
	dailySalesTTL   = 7 * 24 * time.Hour
)

// RedisCache keys daily sales by the restaurant's calendar day in Location.
type RedisCache struct {
	Client   *redis.Client
	TTL      time.Duration
	Location *time.Location
	now      func() time.Time
}

func NewRedisCache(client *redis.Client, ttl time.Duration, loc *time.Location) *RedisCache {
	if loc == nil {
		loc = time.Local
	}
	return &RedisCache{Client: client, TTL: ttl, Location: loc, now: time.Now}
}

func (c *RedisCache) PaidMarkerKey(sessionID string) string {
	return "checkout:paid:" + sessionID
}

func DailySalesKey(day string) string {
	return "sales:daily:" + day
}

func (c *RedisCache) IsPaid(ctx context.Context, sessionID string) (bool, error) {
	res, err := c.Client.Exists(ctx, c.PaidMarkerKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) MarkPaid(ctx context.Context, sessionID string) error {
	return c.Client.Set(ctx, c.PaidMarkerKey(sessionID), "1", c.TTL).Err()
}

func (c *RedisCache) RecordSale(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	dailyKey := DailySalesKey(c.now().In(c.Location).Format("2006-01-02"))

	pipe := c.Client.TxPipeline()
	for _, item := range items {
		member := strconv.Itoa(item.MenuItemID)
		pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), member)
		pipe.ZIncrBy(ctx, allTimeSalesKey, float64(item.Quantity), member)
	}
	pipe.Expire(ctx, dailyKey, dailySalesTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) Top(ctx context.Context, day string, limit int) ([]domain.SalesStat, error) {
	key := allTimeSalesKey
	if day != "" {
		key = DailySalesKey(day)
	}
	entries, err := c.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	stats := make([]domain.SalesStat, 0, len(entries))
	for _, entry := range entries {
		member, _ := entry.Member.(string)
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		stats = append(stats, domain.SalesStat{MenuItemID: id, Quantity: entry.Score})
	}
	return stats, nil
}

var (
	_ service.PaymentMarkers = (*RedisCache)(nil)
	_ service.SalesCounter   = (*RedisCache)(nil)
)
