package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/app/controllers"
	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/database"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/session"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext once per
// request so controllers can read identity from Locals instead of hitting
// the session store themselves.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth keeps its own fiber session store for the OAuth handshake;
	// touching our app session on /auth/* collides with it.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return continueAnonymous(c)
	}

	userID, ok := sess.Get(controllers.USER_ID).(uint)
	if !ok || userID == 0 {
		return continueAnonymous(c)
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)
	isAdmin, _ := sess.Get(controllers.USER_IS_ADMIN).(bool)

	// Plan comes from the session cache; on a miss (fresh login, expired
	// cache) fall back to the ledger and re-cache.
	plan := session.GetSessionValue(c, usercontext.SessionPlanKey)
	if plan == "" {
		plan = "free"
		if db := database.GetDB(); db != nil {
			if ledger, err := models.GetUserCredits(db, userID); err == nil && ledger != nil && ledger.Plan != "" {
				plan = ledger.Plan
			}
		}
		_ = session.SetSessionValue(c, usercontext.SessionPlanKey, plan)
	}

	c.Locals(usercontext.ContextKey, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
		Plan:       plan,
	})

	c.Locals(controllers.FROM_PROTECTED, true)
	c.Locals(controllers.USER_ID, userID)
	c.Locals(controllers.USER_NAME, username)
	c.Locals(controllers.USER_IS_ADMIN, isAdmin)

	return c.Next()
}

func continueAnonymous(c *fiber.Ctx) error {
	c.Locals(usercontext.ContextKey, usercontext.Anonymous())
	c.Locals(controllers.FROM_PROTECTED, false)
	c.Locals(controllers.USER_IS_ADMIN, false)
	return c.Next()
}
