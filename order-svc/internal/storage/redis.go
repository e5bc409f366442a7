package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/pricing"

	"github.com/redis/go-redis/v9"
)

const (
	popularTTL  = 30 * 24 * time.Hour
	notifiedTTL = 7 * 24 * time.Hour
)

// CatalogCache keeps found catalog entries in redis in front of another
// catalog. Redis failures fall through to the wrapped catalog.
type CatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
	Next   pricing.Catalog
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, next pricing.Catalog) *CatalogCache {
	return &CatalogCache{Client: client, TTL: ttl, Next: next}
}

func (c *CatalogCache) key(itemID string) string {
	return "catalog:item:" + itemID
}

func (c *CatalogCache) Lookup(ctx context.Context, itemID string) (pricing.Lookup, error) {
	raw, err := c.Client.Get(ctx, c.key(itemID)).Bytes()
	if err == nil {
		var entry pricing.CatalogEntry
		if err := json.Unmarshal(raw, &entry); err == nil {
			return pricing.Found(entry), nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logging.FromCtx(ctx).Warn("catalog cache read failed", "item_id", itemID, "error", err)
	}

	res, err := c.Next.Lookup(ctx, itemID)
	if err != nil || !res.Found {
		return res, err
	}

	payload, err := json.Marshal(res.Entry)
	if err == nil {
		if err := c.Client.Set(ctx, c.key(itemID), payload, c.TTL).Err(); err != nil {
			logging.FromCtx(ctx).Warn("catalog cache write failed", "item_id", itemID, "error", err)
		}
	}
	return res, nil
}

// RedisStats holds per-day item popularity and notification markers.
type RedisStats struct {
	Client *redis.Client
}

func NewRedisStats(client *redis.Client) *RedisStats {
	return &RedisStats{Client: client}
}

func (s *RedisStats) popularKey(date string) string {
	return "analytics:popular:" + date
}

func (s *RedisStats) IncrementItems(ctx context.Context, date string, items []domain.EventItem) error {
	key := s.popularKey(date)
	pipe := s.Client.TxPipeline()
	for _, item := range items {
		pipe.ZIncrBy(ctx, key, float64(item.Quantity), item.MenuItemID)
	}
	pipe.Expire(ctx, key, popularTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStats) TopItems(ctx context.Context, date string, limit int) ([]domain.PopularItem, error) {
	res, err := s.Client.ZRevRangeWithScores(ctx, s.popularKey(date), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]domain.PopularItem, 0, len(res))
	for _, z := range res {
		id, _ := z.Member.(string)
		items = append(items, domain.PopularItem{MenuItemID: id, Quantity: int64(z.Score)})
	}
	return items, nil
}

// MarkNotified records that kind was handled for orderID. It reports false
// when the marker already existed.
func (s *RedisStats) MarkNotified(ctx context.Context, kind, orderID string) (bool, error) {
	return s.Client.SetNX(ctx, notifiedKey(kind, orderID), "1", notifiedTTL).Result()
}

// ClearNotified drops the marker so the next delivery handles kind again.
func (s *RedisStats) ClearNotified(ctx context.Context, kind, orderID string) error {
	return s.Client.Del(ctx, notifiedKey(kind, orderID)).Err()
}

func notifiedKey(kind, orderID string) string {
	return "notified:" + kind + ":" + orderID
}
