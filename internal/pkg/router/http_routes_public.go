package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/EdmilsonDev/CodeMentor/app/controllers"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/auth/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	// Auth
	group.Post("/register", controllers.HandleAuthRegister)
	group.Post("/login", controllers.HandleAuthLogin)
	group.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Contact form
	group.Post("/contact", controllers.HandleContactSubmit)

	// Public page display
	group.Get("/pages", controllers.HandleGetPages)
	group.Get("/page/:slug", controllers.HandleGetPage)
}
