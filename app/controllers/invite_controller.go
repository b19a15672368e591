package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/referral"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

type redeemRequest struct {
	Code string `json:"code"`
}

// HandleCreateInvite issues a fresh invite code for the logged-in user.
func HandleCreateInvite(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	ctx := c.UserContext()
	code, err := getReferralService().IssueToken(ctx, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao gerar o convite"})
	}

	getActionLogger().RecordBestEffort(ctx, userCtx.UserID, models.ActionInviteIssued, fiber.Map{"code": code.Code}, code.Code)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code": code.Code,
		"link": referral.InviteLink(code.Code),
	})
}

// HandleInviteStats aggregates the user's invite activity for display.
func HandleInviteStats(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	stats, err := getReferralService().Stats(c.UserContext(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar as estatísticas"})
	}

	return c.JSON(stats)
}

// HandleRedeemInvite lets an existing account redeem an invite code. Both
// parties earn bonus credits; the code stays redeemable afterwards.
func HandleRedeemInvite(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	var req redeemRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Código de convite inválido"})
	}

	ctx := c.UserContext()
	if !getReferralService().Redeem(ctx, req.Code, userCtx.UserID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Código de convite inválido"})
	}

	getActionLogger().RecordBestEffort(ctx, userCtx.UserID, models.ActionInviteUsed, fiber.Map{"code": req.Code}, req.Code)

	return c.JSON(fiber.Map{"redeemed": true})
}
