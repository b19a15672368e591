package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/cache"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
)

const sessionDatabase = 1 // cache uses DB 0, OAuth state DB 2

var sessionStore *session.Store

// NewSessionStore builds the global session store backed by Redis, reusing
// the endpoint the cache client is configured against.
func NewSessionStore() *session.Store {
	conn := cache.Conn()

	storage := redis.New(redis.Config{
		Host:     conn.Host,
		Port:     conn.Port,
		Username: conn.Username,
		Password: conn.Password,
		Database: sessionDatabase,
		Reset:    false,
	})

	sessionStore = session.New(session.Config{
		Storage:        storage,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     24 * time.Hour,
	})

	return sessionStore
}

// GetSessionStore returns the store created by NewSessionStore.
func GetSessionStore() *session.Store {
	return sessionStore
}

// SetSessionValue stores a key-value pair in the caller's session.
func SetSessionValue(c *fiber.Ctx, key string, value string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.Set(key, value)
	return sess.Save()
}

// GetSessionValue returns the string stored under key in the caller's
// session, or "" when absent.
func GetSessionValue(c *fiber.Ctx, key string) string {
	if sessionStore == nil {
		return ""
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}

	value, ok := sess.Get(key).(string)
	if !ok {
		return ""
	}
	return value
}
