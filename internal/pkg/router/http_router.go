package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/middleware"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/oauth"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Session store and OAuth providers must exist before any route runs
	session.NewSessionStore()
	oauth.Setup()

	// Resolve user identity once per request, before all route groups
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
