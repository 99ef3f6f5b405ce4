package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/config"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// Init creates the Redis client and verifies the connection.
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Close closes the Redis connection.
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get returns the Redis client.
func Get() *redis.Client {
	return Client
}

// ViewDeduper marks (video, viewer) pairs so repeated watches inside the
// window count once.
type ViewDeduper struct {
	window time.Duration
}

// NewViewDeduper builds a deduper with the given window.
func NewViewDeduper(window time.Duration) *ViewDeduper {
	return &ViewDeduper{window: window}
}

// ShouldCount reports whether this viewer's watch of the video should bump
// the counter. First call in the window wins; Redis failures count the view
// rather than dropping it.
func (d *ViewDeduper) ShouldCount(ctx context.Context, videoID int64, viewerKey string) bool {
	key := fmt.Sprintf("view:%d:%s", videoID, viewerKey)
	ok, err := Client.SetNX(ctx, key, 1, d.window).Result()
	if err != nil {
		logger.Warn("View dedup failed, counting view", zap.Error(err))
		return true
	}
	return ok
}
