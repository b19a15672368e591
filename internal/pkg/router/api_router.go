package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/EdmilsonDev/CodeMentor/internal/api/v1"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "CodeMentor API",
		})
	})

	v1 := api.Group("/v1")
	apiv1.RegisterHandlers(v1, apiv1.NewAPIServer())
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
