package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Heatmap grids are cheap to rebuild but touch every focus log of a week, so
// finished grids are parked in Redis for a short TTL. All methods are nil-safe:
// without Redis every lookup is a miss and the caller recomputes. The cache is
// payload-agnostic; callers pass the value to marshal and the destination to
// unmarshal into.
type HeatmapCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHeatmapCache creates and initializes a new heatmap cache
func NewHeatmapCache(redisURL string, ttl time.Duration) (*HeatmapCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &HeatmapCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func weekKey(userID string, weekStart time.Time) string {
	return fmt.Sprintf("heatmap:%s:%s", userID, weekStart.Format("2006-01-02"))
}

func averageKey(userID, mode string, window int) string {
	return fmt.Sprintf("heatmap_avg:%s:%s:%d", userID, mode, window)
}

// GetWeek loads a cached week grid into dest; false on a miss
func (hc *HeatmapCache) GetWeek(ctx context.Context, userID string, weekStart time.Time, dest interface{}) (bool, error) {
	return hc.get(ctx, weekKey(userID, weekStart), dest)
}

// SetWeek caches a computed week grid
func (hc *HeatmapCache) SetWeek(ctx context.Context, userID string, weekStart time.Time, value interface{}) error {
	return hc.set(ctx, weekKey(userID, weekStart), value)
}

// GetAverage loads a cached multi-week average grid into dest; false on a miss
func (hc *HeatmapCache) GetAverage(ctx context.Context, userID, mode string, window int, dest interface{}) (bool, error) {
	return hc.get(ctx, averageKey(userID, mode, window), dest)
}

// SetAverage caches a computed multi-week average grid
func (hc *HeatmapCache) SetAverage(ctx context.Context, userID, mode string, window int, value interface{}) error {
	return hc.set(ctx, averageKey(userID, mode, window), value)
}

func (hc *HeatmapCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if hc == nil || hc.client == nil {
		return false, nil
	}

	data, err := hc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil // Cache miss
	}
	if err != nil {
		return false, fmt.Errorf("failed to get heatmap from cache: %v", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal heatmap: %v", err)
	}
	return true, nil
}

func (hc *HeatmapCache) set(ctx context.Context, key string, value interface{}) error {
	if hc == nil || hc.client == nil {
		return nil
	}
	if value == nil {
		return fmt.Errorf("cannot cache nil heatmap")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal heatmap: %v", err)
	}

	if err := hc.client.Set(ctx, key, data, hc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache heatmap: %v", err)
	}
	return nil
}

func (hc *HeatmapCache) IsConnected() bool {
	if hc == nil || hc.client == nil {
		return false
	}
	ctx := context.Background()
	return hc.client.Ping(ctx).Err() == nil
}

// Close closes the Redis connection
func (hc *HeatmapCache) Close() error {
	if hc == nil || hc.client == nil {
		return nil
	}
	return hc.client.Close()
}
