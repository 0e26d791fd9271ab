package app

import (
	"strings"

	"github.com/charlesng35/collabhub/internal/cache"
)

// RedisClientConfig converts the Redis section into the cache store settings.
// A prefix without a trailing colon gets one so keys stay readable.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	prefix := strings.TrimSpace(c.Redis.KeyPrefix)
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	return cache.RedisConfig{
		Address:   strings.TrimSpace(c.Redis.Address),
		Username:  strings.TrimSpace(c.Redis.Username),
		Password:  c.Redis.Password,
		DB:        c.Redis.DB,
		TLS:       c.Redis.TLS,
		Timeout:   c.Redis.Timeout,
		KeyPrefix: prefix,
	}
}
