package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/payment"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/plans"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/session"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

type upgradeRequest struct {
	Plan   string `json:"plan"`
	Method string `json:"method"`
}

// HandleGetPlans lists the static plan catalog.
func HandleGetPlans(c *fiber.Ctx) error {
	tiers := make([]fiber.Map, 0, len(plans.Catalog))
	for _, tier := range plans.Catalog {
		tiers = append(tiers, fiber.Map{
			"id":            tier.ID,
			"name":          tier.Name,
			"credits":       tier.Credits,
			"price":         tier.Price,
			"duration_days": int(tier.Duration / (24 * time.Hour)),
			"features":      tier.Features,
		})
	}
	return c.JSON(fiber.Map{"plans": tiers})
}

// HandlePlanUpgrade charges the user for a paid tier and moves the ledger
// onto it. The balance is replaced with the tier allotment, not topped up.
func HandlePlanUpgrade(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	var req upgradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Requisição inválida"})
	}

	method := payment.Method(req.Method)
	if req.Method == "" {
		method = payment.MethodCreditCard
	}

	result, err := getPaymentProcessor().ProcessPayment(c.UserContext(), userCtx.UserID, req.Plan, method)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payment_rejected", "message": "Pagamento não pôde ser processado"})
	}
	if !result.Success {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":          result.ErrorCode,
			"message":        "Pagamento recusado",
			"transaction_id": result.TransactionID,
		})
	}

	// Refresh the cached plan so the next request sees the new tier
	session.SetSessionValue(c, usercontext.SessionPlanKey, plans.Normalize(req.Plan))

	return c.JSON(fiber.Map{
		"success":        true,
		"plan":           plans.Normalize(req.Plan),
		"transaction_id": result.TransactionID,
	})
}
