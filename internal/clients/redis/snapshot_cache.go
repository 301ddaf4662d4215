package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/prereqpath-backend/internal/data/store"
	"github.com/yungbote/prereqpath-backend/internal/platform/logger"
)

const (
	defaultSnapshotKey = "prereqpath:concept_snapshot:v1"
	defaultSnapshotTTL = 5 * time.Minute
)

// snapshotTTL keeps the shared snapshot expiring. go-redis treats 0 as no
// expiry, so non-positive values fall back to the default.
func snapshotTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultSnapshotTTL
	}
	return d
}

type SnapshotCache interface {
	Get(ctx context.Context) (*store.ConceptSnapshot, bool, error)
	Set(ctx context.Context, snap *store.ConceptSnapshot) error
	Invalidate(ctx context.Context) error
	Close() error
}

type SnapshotCacheConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

type snapshotCache struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

func NewSnapshotCache(cfg SnapshotCacheConfig, log *logger.Logger) (SnapshotCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = defaultSnapshotKey
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &snapshotCache{
		log: log.With("service", "RedisSnapshotCache"),
		rdb: rdb,
		key: key,
		ttl: snapshotTTL(cfg.TTL),
	}, nil
}

func (c *snapshotCache) Get(ctx context.Context) (*store.ConceptSnapshot, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("redis snapshot cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snap store.ConceptSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.log.Warn("bad cached concept snapshot, dropping", "error", err)
		_ = c.rdb.Del(ctx, c.key).Err()
		return nil, false, nil
	}
	return &snap, true, nil
}

func (c *snapshotCache) Set(ctx context.Context, snap *store.ConceptSnapshot) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis snapshot cache not initialized")
	}
	if snap == nil {
		return nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key, raw, c.ttl).Err()
}

func (c *snapshotCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key).Err()
}

func (c *snapshotCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	err := c.rdb.Close()
	c.rdb = nil
	return err
}
