package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/app/repository"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/chatbot"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/credits"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

// historyWindow bounds how many stored turns are replayed to the model.
const historyWindow = 20

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChatMessage runs one mentor exchange: authorize against the credit
// ledger, call the model, then consume one credit and persist the turn.
// A failed model call costs nothing and stores nothing.
func HandleChatMessage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Mensagem vazia"})
	}

	ctx := c.UserContext()
	creditsSvc := getCreditsService()

	decision := creditsSvc.Authorize(ctx, userCtx.UserID)
	if !decision.Allowed {
		status := fiber.StatusPaymentRequired
		if decision.Reason == credits.ReasonInternalError {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   string(decision.Reason),
			"message": decision.Reason.Message(),
		})
	}

	chatSvc, err := getChatService()
	if err != nil {
		log.Printf("chat service unavailable: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service_unavailable", "message": "Falha ao processar mensagem. Tente novamente."})
	}

	chatRepo := repository.GetGlobalFactory().GetChatRepository()
	history, err := chatRepo.GetRecentByUser(userCtx.UserID, historyWindow)
	if err != nil {
		log.Printf("chat history load failed for user %d: %v", userCtx.UserID, err)
		history = nil
	}

	turns := make([]chatbot.Message, 0, len(history))
	for _, msg := range history {
		turns = append(turns, chatbot.Message{Role: msg.Role, Content: msg.Content})
	}

	reply, err := chatSvc.SendMessage(ctx, req.Message, turns)
	if err != nil {
		log.Printf("chat completion failed for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "chat_failed", "message": "Falha ao processar mensagem. Tente novamente."})
	}

	// The answer is in hand; charge for it now. A concurrent spender can
	// still drain the balance between Authorize and here, in which case
	// the turn is refused without mutation.
	if !creditsSvc.Consume(ctx, userCtx.UserID, 1) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":   string(credits.ReasonInsufficientCredits),
			"message": credits.ReasonInsufficientCredits.Message(),
		})
	}

	correlationID := getActionLogger().RecordBestEffort(ctx, userCtx.UserID, models.ActionChatMessage, fiber.Map{"length": len(req.Message)}, "")

	if err := chatRepo.SaveMessage(&models.ChatMessage{
		UserID:        userCtx.UserID,
		Role:          models.ChatRoleUser,
		Content:       req.Message,
		CorrelationID: correlationID,
	}); err != nil {
		log.Printf("chat message persist failed for user %d: %v", userCtx.UserID, err)
	}
	if err := chatRepo.SaveMessage(&models.ChatMessage{
		UserID:        userCtx.UserID,
		Role:          models.ChatRoleAssistant,
		Content:       reply,
		CorrelationID: correlationID,
	}); err != nil {
		log.Printf("chat reply persist failed for user %d: %v", userCtx.UserID, err)
	}

	remaining := 0
	if ledger, err := creditsSvc.Get(ctx, userCtx.UserID); err == nil {
		remaining = ledger.Credits
	}

	return c.JSON(fiber.Map{
		"reply":             reply,
		"credits_remaining": remaining,
	})
}

// HandleChatHistory returns the user's recent mentor conversation.
func HandleChatHistory(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	messages, err := repository.GetGlobalFactory().GetChatRepository().GetRecentByUser(userCtx.UserID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar o histórico"})
	}

	return c.JSON(fiber.Map{"messages": messages})
}

// HandleChatHistoryClear wipes the user's conversation history.
func HandleChatHistoryClear(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login necessário"})
	}

	if err := repository.GetGlobalFactory().GetChatRepository().DeleteByUser(userCtx.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao limpar o histórico"})
	}

	return c.JSON(fiber.Map{"message": "Histórico removido"})
}
