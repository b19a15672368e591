package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

// RequireAuth guards web routes: anonymous requests are redirected to /login.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin guards admin routes. Non-admins land back on the homepage
// rather than getting a telling 403.
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if !usercontext.IsAdmin(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPISessionAuth guards JSON API routes: anonymous requests get a 401
// body instead of a redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Login necessário",
		})
	}
	return c.Next()
}
