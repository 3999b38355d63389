package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	Client *redis.Client
	ctx    = context.Background()

	ErrCacheMiss = errors.New("cache miss")
)

func InitRedis(addr string, logger *zap.Logger) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := Client.Ping(ctx).Err(); err != nil {
		logger.Error("redis_connection_failed",
			zap.Error(err),
			zap.String("addr", addr),
		)
		Client = nil
		return err
	}

	logger.Info("redis_connected", zap.String("addr", addr))
	return nil
}

// Set stores value as JSON. With no Redis client it is a no-op: caching is
// best-effort and the service runs without it.
func Set(key string, value interface{}, expiration time.Duration) error {
	if Client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return Client.Set(ctx, key, data, expiration).Err()
}

func Get(key string, dest interface{}) error {
	if Client == nil {
		return ErrCacheMiss
	}
	val, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	} else if err != nil {
		return fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return nil
}

func Delete(key string) error {
	if Client == nil {
		return nil
	}
	return Client.Del(ctx, key).Err()
}

// DeletePattern removes all keys matching pattern (e.g. progress:*).
func DeletePattern(pattern string) error {
	if Client == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := Client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete keys failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}

// Refresh-token blacklist. Revoked token ids live in Redis so revocation
// holds across process instances. Without Redis (single-process dev and
// tests) a local map keeps logout meaningful for the lifetime of the
// process.
var (
	localMu        sync.Mutex
	localRevoked   = map[string]time.Time{}
	localSweepNext time.Time
)

func blacklistKey(jti string) string {
	return "token_blacklist:" + jti
}

func RevokeToken(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if Client == nil {
		localMu.Lock()
		defer localMu.Unlock()
		now := time.Now()
		if now.After(localSweepNext) {
			for id, exp := range localRevoked {
				if now.After(exp) {
					delete(localRevoked, id)
				}
			}
			localSweepNext = now.Add(time.Minute)
		}
		localRevoked[jti] = now.Add(ttl)
		return nil
	}
	return Client.Set(ctx, blacklistKey(jti), "revoked", ttl).Err()
}

func IsTokenRevoked(jti string) bool {
	if Client == nil {
		localMu.Lock()
		defer localMu.Unlock()
		exp, ok := localRevoked[jti]
		return ok && time.Now().Before(exp)
	}
	n, err := Client.Exists(ctx, blacklistKey(jti)).Result()
	return err == nil && n > 0
}
