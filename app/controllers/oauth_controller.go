package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/database"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/session"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/utils"
)

// HandleOAuthCallback completes the provider flow and logs the user in
func HandleOAuthCallback(c *fiber.Ctx) error {
	// Complete OAuth with provider and obtain unified user
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	db := database.GetDB()

	// Try to find existing provider account
	var pa models.ProviderAccount
	res := db.Where("provider = ? AND provider_user_id = ?", u.Provider, u.UserID).First(&pa)

	var appUser models.User
	isNewUser := false
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		// Optional email match if provided
		if u.Email != "" {
			_ = db.Where("email = ?", u.Email).First(&appUser).Error
		}
		if appUser.ID == 0 {
			// Create new user; ensure password is set to a random placeholder since validation requires it
			// Use timestamp-based random string as placeholder (not used for login)
			placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
			hash, _ := models.HashPassword(placeholder)
			email := u.Email
			if email == "" {
				// Ensure unique, non-empty email to satisfy unique index semantics in MySQL
				email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
			}
			avatar := u.AvatarURL
			if avatar == "" {
				avatar = utils.GravatarURL(email, 200)
			}
			appUser = models.User{
				Name:      firstNonEmpty(u.Name, u.NickName, u.Email, "User"),
				Email:     email,
				Password:  hash,
				AvatarURL: avatar,
				Status:    models.STATUS_ACTIVE,
			}
			if err := db.Create(&appUser).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
			}
			isNewUser = true
		}
		pa = models.ProviderAccount{
			UserID:         appUser.ID,
			Provider:       u.Provider,
			ProviderUserID: u.UserID,
		}
		pa.UpdateTokens(u.AccessToken, u.RefreshToken, u.ExpiresAt)
		if err := db.Create(&pa).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("link provider failed: %v", err))
		}
	} else if res.Error == nil {
		pa.UpdateTokens(u.AccessToken, u.RefreshToken, u.ExpiresAt)
		if err := db.Save(&pa).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("update tokens failed: %v", err))
		}
		// Load related user
		if err := db.First(&appUser, pa.UserID).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("linked user not found")
		}
	} else {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("db error: %v", res.Error))
	}

	ctx := c.UserContext()

	// Seed the credit ledger; idempotent for returning users
	if err := getCreditsService().Initialize(ctx, appUser.ID); err != nil {
		fmt.Printf("credit ledger init failed for user %d: %v\n", appUser.ID, err)
	}

	// First-time OAuth signups can carry an invite code from the landing page
	if isNewUser {
		if invite := c.Query("invite"); invite != "" {
			if getReferralService().Redeem(ctx, invite, appUser.ID) {
				getActionLogger().RecordBestEffort(ctx, appUser.ID, models.ActionInviteUsed, fiber.Map{"code": invite}, invite)
			}
		}
		getActionLogger().RecordBestEffort(ctx, appUser.ID, models.ActionRegister, fiber.Map{"provider": u.Provider}, c.Query("invite"))
	} else {
		getActionLogger().RecordBestEffort(ctx, appUser.ID, models.ActionLogin, fiber.Map{"provider": u.Provider}, "")
	}

	// Create app session
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, appUser.ID)
	sess.Set(USER_NAME, appUser.Name)
	sess.Set(USER_IS_ADMIN, appUser.Role == models.ROLE_ADMIN)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	// Cache user plan in session for navbar/entitlements
	if ledger, err := models.GetUserCredits(db, appUser.ID); err == nil && ledger != nil && ledger.Plan != "" {
		session.SetSessionValue(c, usercontext.SessionPlanKey, ledger.Plan)
	} else {
		session.SetSessionValue(c, usercontext.SessionPlanKey, "free")
	}

	// Update last login timestamp
	_ = db.Model(&appUser).UpdateColumn("last_login_at", time.Now()).Error

	return c.Redirect("/", fiber.StatusSeeOther)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
