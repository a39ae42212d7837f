package rediscache

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/openvp/showcase-backend/internal/platform/logger"
)

const slugTTL = 10 * time.Minute

// SlugCache maps showcase slugs to ids with a short TTL. Lookups by slug
// are the hottest read path; everything else goes straight to the table.
type SlugCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewSlugCache(log *logger.Logger) (*SlugCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &SlugCache{
		log:    log.With("client", "RedisSlugCache"),
		rdb:    rdb,
		prefix: "showcase:slug:",
	}, nil
}

func (c *SlugCache) GetID(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+slug).Result()
	if err == goredis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// Stale or corrupt entry, drop it and miss.
		_ = c.rdb.Del(ctx, c.prefix+slug).Err()
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (c *SlugCache) SetID(ctx context.Context, slug string, id uuid.UUID) error {
	return c.rdb.Set(ctx, c.prefix+slug, id.String(), slugTTL).Err()
}

func (c *SlugCache) Invalidate(ctx context.Context, slug string) error {
	return c.rdb.Del(ctx, c.prefix+slug).Err()
}

func (c *SlugCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
