package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/app/repository"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/database"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/hcaptcha"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/session"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/utils"
)

const (
	AUTH_KEY       = usercontext.AuthKey
	USER_ID        = usercontext.KeyUserID
	USER_NAME      = usercontext.KeyUsername
	USER_IS_ADMIN  = usercontext.KeyIsAdmin
	FROM_PROTECTED = usercontext.KeyFromProtected
)

type registerRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	InviteCode       string `json:"invite_code"`
	HCaptchaResponse string `json:"h_captcha_response"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates an account, seeds the free-tier credit ledger
// and redeems an invite code when one was passed along.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Requisição inválida"})
	}

	// Verify hCaptcha token when the captcha is configured
	if env.GetEnv("HCAPTCHA_SECRET", "") != "" {
		valid, err := hcaptcha.Verify(req.HCaptchaResponse)
		if err != nil || !valid {
			if err != nil {
				log.Printf("hCaptcha validation error: %v", err)
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "captcha_failed", "message": "Falha na validação do captcha. Tente novamente."})
		}
	}

	user, err := models.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": fmt.Sprintf("Dados inválidos: %s", err)})
	}
	user.AvatarURL = utils.GravatarURL(user.Email, 200)

	if err := repository.GetGlobalFactory().GetUserRepository().Create(user); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Não foi possível criar a conta"})
	}

	ctx := c.UserContext()

	// Seed the ledger on the free tier before anything can consume from it
	if err := getCreditsService().Initialize(ctx, user.ID); err != nil {
		log.Printf("credit ledger init failed for user %d: %v", user.ID, err)
	}

	invited := false
	if req.InviteCode != "" {
		invited = getReferralService().Redeem(ctx, req.InviteCode, user.ID)
		if invited {
			getActionLogger().RecordBestEffort(ctx, user.ID, models.ActionInviteUsed, fiber.Map{"code": req.InviteCode}, req.InviteCode)
		}
	}

	getActionLogger().RecordBestEffort(ctx, user.ID, models.ActionRegister, fiber.Map{"email": user.Email}, req.InviteCode)

	if err := createUserSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao iniciar a sessão"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"invite_redeemed": invited,
	})
}

// HandleAuthLogin authenticates with email and password and opens a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Requisição inválida"})
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "E-mail ou senha incorretos"})
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "E-mail ou senha incorretos"})
	}

	if user.Status != models.STATUS_ACTIVE {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Conta desativada"})
	}

	ctx := c.UserContext()

	// Users that predate the ledger get one on first login
	if err := getCreditsService().Initialize(ctx, user.ID); err != nil {
		log.Printf("credit ledger init failed for user %d: %v", user.ID, err)
	}

	if err := createUserSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao iniciar a sessão"})
	}

	database.GetDB().Model(user).Update("last_login_at", time.Now())
	getActionLogger().RecordBestEffort(ctx, user.ID, models.ActionLogin, nil, "")

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// HandleAuthLogout destroys the current session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.JSON(fiber.Map{"message": "Sessão encerrada"})
	}

	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao encerrar a sessão"})
	}

	c.Locals(FROM_PROTECTED, false)

	return c.JSON(fiber.Map{"message": "Sessão encerrada"})
}

// createUserSession writes the logged-in identity into the fiber session and
// caches the user's plan for the navbar and entitlement checks.
func createUserSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.Role == models.ROLE_ADMIN)

	if err := sess.Save(); err != nil {
		return err
	}

	if ledger, err := models.GetUserCredits(database.GetDB(), user.ID); err == nil && ledger != nil && ledger.Plan != "" {
		session.SetSessionValue(c, usercontext.SessionPlanKey, ledger.Plan)
	} else {
		session.SetSessionValue(c, usercontext.SessionPlanKey, "free")
	}

	return nil
}
