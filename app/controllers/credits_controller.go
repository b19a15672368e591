package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/plans"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

// HandleGetCredits returns the authenticated user's credit ledger state.
func HandleGetCredits(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	creditsSvc := getCreditsService()
	ctx := c.UserContext()

	// Ledger is created lazily for accounts that predate it
	if err := creditsSvc.Initialize(ctx, userCtx.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar os créditos"})
	}

	ledger, err := creditsSvc.Get(ctx, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar os créditos"})
	}

	tier, _ := plans.FindByID(plans.Normalize(ledger.Plan))

	return c.JSON(fiber.Map{
		"credits":     ledger.Credits,
		"plan":        tier.ID,
		"plan_name":   tier.Name,
		"plan_expiry": ledger.PlanExpiry,
		"total_used":  ledger.TotalUsed,
	})
}

// HandleGetCreditHistory returns the user's recent ledger transactions.
func HandleGetCreditHistory(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	history, err := getCreditsService().History(c.UserContext(), userCtx.UserID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar o histórico"})
	}

	return c.JSON(fiber.Map{"transactions": history})
}
