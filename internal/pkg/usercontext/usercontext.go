// Package usercontext carries the per-request identity resolved by the
// session middleware, so controllers never touch the session store directly.
package usercontext

import "github.com/gofiber/fiber/v2"

// ContextKey is the Locals slot the middleware stores the UserContext under.
const ContextKey = "USER_CONTEXT"

// Shared Locals/session keys used across controllers and middlewares.
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyIsAdmin       = "isAdmin"
	KeyFromProtected = "from_protected"
	SessionPlanKey   = "user_plan"
)

// UserContext is the resolved identity for one request. Plan mirrors the
// session-cached plan id and may lag one request behind a ledger change.
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"is_logged_in"`
	IsAdmin    bool   `json:"is_admin"`
	Plan       string `json:"plan"`
}

// Anonymous is the context for requests without a valid session.
func Anonymous() UserContext {
	return UserContext{}
}

// GetUserContext returns the request's UserContext, or an anonymous one when
// the middleware did not run.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(ContextKey).(UserContext); ok {
		return ctx
	}
	return Anonymous()
}

func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}

// GetUserID returns the current user's id, or 0 for anonymous requests.
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

func GetUsername(c *fiber.Ctx) string {
	return GetUserContext(c).Username
}

// GetPlan returns the current user's cached plan id, or "" for anonymous
// requests.
func GetPlan(c *fiber.Ctx) string {
	return GetUserContext(c).Plan
}
