package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.IsProduction() {
		for _, origin := range c.Server.CORSOrigins {
			if strings.TrimSpace(origin) == "*" {
				return fmt.Errorf("server.cors_origins must list explicit origins in production, wildcard is not allowed")
			}
		}
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("server.rate_limit_requests must not be negative")
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}

	switch strings.ToLower(c.Cache.Backend) {
	case CacheBackendMemory, CacheBackendNone:
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required when cache.backend is redis")
		}
	default:
		return fmt.Errorf("cache.backend must be one of memory, redis, none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 && !strings.EqualFold(c.Cache.Backend, CacheBackendNone) {
		return fmt.Errorf("cache.ttl must be positive")
	}

	if c.Capsule.MaxBudget <= 0 {
		return fmt.Errorf("capsule.max_budget must be positive, got %v", c.Capsule.MaxBudget)
	}
	if c.Lookbook.Timeout <= 0 {
		return fmt.Errorf("lookbook.timeout must be positive")
	}
	return nil
}
