package cache

import (
	"context"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// SetupCache connects the global Redis client. Connection failure is logged
// but not fatal: features backed by the cache degrade instead of blocking
// startup.
func SetupCache() {
	addr := net.JoinHostPort(
		env.GetEnv("CACHE_HOST", "localhost"),
		env.GetEnv("CACHE_PORT", "6379"),
	)

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: Could not connect to Redis cache at %s: %v", addr, err)
		return
	}
	log.Printf("Connected to Redis cache at %s", addr)
}

// GetClient returns the Redis client, connecting lazily on first use.
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// ConnInfo describes the configured Redis endpoint for components that open
// their own connections on separate logical databases (sessions, OAuth
// state).
type ConnInfo struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Conn returns the endpoint the global client is configured against.
func Conn() ConnInfo {
	info := ConnInfo{Host: "localhost", Port: 6379}
	opts := GetClient().Options()
	if opts == nil {
		return info
	}

	info.Username = opts.Username
	info.Password = opts.Password
	if opts.Addr != "" {
		if host, port, err := net.SplitHostPort(opts.Addr); err == nil {
			info.Host = host
			if v, convErr := strconv.Atoi(port); convErr == nil {
				info.Port = v
			}
		} else {
			info.Host = opts.Addr
		}
	}
	return info
}

// Set stores a string value under key with the given TTL.
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get returns the string value stored under key. A cache miss surfaces as
// redis.Nil.
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}
