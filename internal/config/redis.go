package config

// This file defines a Redis client constructor for the application.  Redis is
// used for distributed rate limiting and HTTP response caching.  If the
// connection fails during startup, NewRedisClient returns nil and callers
// degrade gracefully by disabling caching and rate limiting.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// RedisConfig holds the connection parameters of the Redis server.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

func setRedisDefaults(v *viper.Viper) {
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TLS", false)
}

// loadRedisConfig reads:
//   REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//   REDIS_ADDR – host:port shorthand (used unless both host and port are set)
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS
func loadRedisConfig(v *viper.Viper) RedisConfig {
	addr := v.GetString("REDIS_ADDR")
	if host, port := v.GetString("REDIS_HOST"), v.GetString("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	return RedisConfig{
		Addr:     addr,
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TLS:      v.GetBool("REDIS_TLS"),
	}
}

// NewRedisClient instantiates a Redis client from cfg.  The returned
// client is nil if a connection cannot be established.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
