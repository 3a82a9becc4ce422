package storage

import (
	"context"
	"testing"
	"time"

	"bistro-booking/api-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := NewRedisCache(client, time.Hour, time.UTC)
	cache.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return cache, srv
}

func TestRedisCache_PaidMarker(t *testing.T) {
	cache, srv := setupTestCache(t)
	ctx := context.Background()

	paid, err := cache.IsPaid(ctx, "cs_1")
	require.NoError(t, err)
	assert.False(t, paid)

	require.NoError(t, cache.MarkPaid(ctx, "cs_1"))
	paid, err = cache.IsPaid(ctx, "cs_1")
	require.NoError(t, err)
	assert.True(t, paid)

	srv.FastForward(2 * time.Hour)
	paid, err = cache.IsPaid(ctx, "cs_1")
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestRedisCache_RecordSaleAndTop(t *testing.T) {
	cache, srv := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.RecordSale(ctx, []domain.OrderItem{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 3, Quantity: 1}}))
	require.NoError(t, cache.RecordSale(ctx, []domain.OrderItem{{MenuItemID: 3, Quantity: 4}}))

	today, err := cache.Top(ctx, "2025-03-01", 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.SalesStat{{MenuItemID: 3, Quantity: 5}, {MenuItemID: 1, Quantity: 2}}, today)

	allTime, err := cache.Top(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.SalesStat{{MenuItemID: 3, Quantity: 5}}, allTime)

	assert.Equal(t, dailySalesTTL, srv.TTL(DailySalesKey("2025-03-01")))
	assert.Zero(t, srv.TTL(allTimeSalesKey))
}

func TestRedisCache_RecordSaleUsesRestaurantDay(t *testing.T) {
	cache, srv := setupTestCache(t)
	cache.Location = time.FixedZone("UTC+2", 2*60*60)
	cache.now = func() time.Time { return time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC) }

	require.NoError(t, cache.RecordSale(context.Background(), []domain.OrderItem{{MenuItemID: 1, Quantity: 1}}))

	assert.True(t, srv.Exists(DailySalesKey("2025-03-02")))
	assert.False(t, srv.Exists(DailySalesKey("2025-03-01")))
}

func TestRedisCache_TopEmpty(t *testing.T) {
	cache, _ := setupTestCache(t)

	stats, err := cache.Top(context.Background(), "2025-02-28", 5)

	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, srv := setupTestCache(t)
	srv.Close()

	_, err := cache.Top(context.Background(), "", 5)

	assert.Error(t, err)
}
