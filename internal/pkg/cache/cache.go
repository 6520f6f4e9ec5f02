package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client wraps the Redis connection used for per-user preference keys. The
// portal runs fine without it; callers get a nil *Client when REDIS_ADDR is
// unset and fall back to the database.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// New connects and pings.
func New(addr, password string, db int, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

func prefKey(clientID, userID int64, key string) string {
	return fmt.Sprintf("prefs:%d:%d:%s", clientID, userID, key)
}

func (c *Client) GetPref(ctx context.Context, clientID, userID int64, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, prefKey(clientID, userID, key)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *Client) SetPref(ctx context.Context, clientID, userID int64, key, value string) error {
	return c.rdb.Set(ctx, prefKey(clientID, userID, key), value, 0).Err()
}

// ClearPrefs removes every preference key for the user (logout path).
func (c *Client) ClearPrefs(ctx context.Context, clientID, userID int64) error {
	pattern := prefKey(clientID, userID, "*")
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
