package config

import (
	"time"

	"github.com/spf13/viper"
)

// RateLimitConfig configures the Redis token bucket.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

func setRateLimitDefaults(v *viper.Viper) {
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_CAPACITY", 60)
	v.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	v.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "1s")
	v.SetDefault("RATE_LIMIT_TTL", "10m")
	v.SetDefault("RATE_LIMIT_KEY_STRATEGY", "ip_route")
	v.SetDefault("RATE_LIMIT_PREFIX", "rl")
	v.SetDefault("RATE_LIMIT_DEBUG", false)
}

func loadRateLimitConfig(v *viper.Viper) RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
		Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
		RefillTokens:   v.GetInt("RATE_LIMIT_REFILL_TOKENS"),
		RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
		TTL:            v.GetDuration("RATE_LIMIT_TTL"),
		KeyStrategy:    v.GetString("RATE_LIMIT_KEY_STRATEGY"),
		Prefix:         v.GetString("RATE_LIMIT_PREFIX"),
		Debug:          v.GetBool("RATE_LIMIT_DEBUG"),
	}
	if b := v.GetInt("RATE_LIMIT_BURST"); b > 0 {
		def.Capacity = b
	}
	if every := v.GetDuration("RATE_LIMIT_REFILL_EVERY"); every > 0 {
		def.RefillTokens = 1
		def.RefillInterval = every
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	minTTL := 5 * def.RefillInterval
	if def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}
