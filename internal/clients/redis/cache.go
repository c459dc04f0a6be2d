package redis

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/Teahana/user-enrollment/internal/logger"
)

// Cache is a small JSON cache over redis, used for the editor reference
// data (course and programme lists) that every prerequisite edit screen
// fetches. Callers treat a nil Cache as "caching disabled".
type Cache interface {
  GetJSON(ctx context.Context, key string, dest any) (bool, error)
  SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
  Delete(ctx context.Context, keys ...string) error
  Close() error
}

type cache struct {
  log *logger.Logger
  rdb *goredis.Client
}

func NewCache(log *logger.Logger) (Cache, error) {
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

  return &cache{
    log: log.With("service", "RedisCache"),
    rdb: rdb,
  }, nil
}

func (c *cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
  if c == nil || c.rdb == nil {
    return false, fmt.Errorf("redis cache not initialized")
  }
  raw, err := c.rdb.Get(ctx, key).Bytes()
  if err == goredis.Nil {
    return false, nil
  }
  if err != nil {
    return false, err
  }
  if err := json.Unmarshal(raw, dest); err != nil {
    c.log.Warn("bad cached payload, dropping key", "key", key, "error", err)
    _ = c.rdb.Del(ctx, key).Err()
    return false, nil
  }
  return true, nil
}

func (c *cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
  if c == nil || c.rdb == nil {
    return fmt.Errorf("redis cache not initialized")
  }
  raw, err := json.Marshal(val)
  if err != nil {
    return err
  }
  return c.rdb.Set(ctx, key, raw, ttl).Err()
}

func (c *cache) Delete(ctx context.Context, keys ...string) error {
  if c == nil || c.rdb == nil {
    return fmt.Errorf("redis cache not initialized")
  }
  if len(keys) == 0 {
    return nil
  }
  return c.rdb.Del(ctx, keys...).Err()
}

func (c *cache) Close() error {
  if c == nil || c.rdb == nil {
    return nil
  }
  return c.rdb.Close()
}
