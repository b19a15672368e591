package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/EdmilsonDev/CodeMentor/app/controllers"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/middleware"
)

// Pong is the ping endpoint response body.
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the versioned API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// PostChatMessage runs one credit-gated mentor exchange.
func (s *APIServer) PostChatMessage(c *fiber.Ctx) error {
	return controllers.HandleChatMessage(c)
}

// GetChatHistory returns the stored conversation for the session user.
func (s *APIServer) GetChatHistory(c *fiber.Ctx) error {
	return controllers.HandleChatHistory(c)
}

// DeleteChatHistory wipes the stored conversation for the session user.
func (s *APIServer) DeleteChatHistory(c *fiber.Ctx) error {
	return controllers.HandleChatHistoryClear(c)
}

// GetCredits returns the session user's ledger state.
func (s *APIServer) GetCredits(c *fiber.Ctx) error {
	return controllers.HandleGetCredits(c)
}

// GetCreditHistory returns the session user's ledger transactions.
func (s *APIServer) GetCreditHistory(c *fiber.Ctx) error {
	return controllers.HandleGetCreditHistory(c)
}

// GetPlans lists the plan catalog; no authentication required.
func (s *APIServer) GetPlans(c *fiber.Ctx) error {
	return controllers.HandleGetPlans(c)
}

// PostPlanUpgrade charges for a paid tier and applies it to the ledger.
func (s *APIServer) PostPlanUpgrade(c *fiber.Ctx) error {
	return controllers.HandlePlanUpgrade(c)
}

// PostInvite issues a new invite code.
func (s *APIServer) PostInvite(c *fiber.Ctx) error {
	return controllers.HandleCreateInvite(c)
}

// GetInviteStats aggregates the session user's invite activity.
func (s *APIServer) GetInviteStats(c *fiber.Ctx) error {
	return controllers.HandleInviteStats(c)
}

// PostInviteRedeem redeems an invite code for an existing account.
func (s *APIServer) PostInviteRedeem(c *fiber.Ctx) error {
	return controllers.HandleRedeemInvite(c)
}

// RegisterHandlers wires the API surface onto the versioned route group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/plans", s.GetPlans)

	// Everything below requires a logged-in session
	router.Post("/chat", middleware.RequireAPISessionAuth, s.PostChatMessage)
	router.Get("/chat/history", middleware.RequireAPISessionAuth, s.GetChatHistory)
	router.Delete("/chat/history", middleware.RequireAPISessionAuth, s.DeleteChatHistory)
	router.Get("/credits", middleware.RequireAPISessionAuth, s.GetCredits)
	router.Get("/credits/history", middleware.RequireAPISessionAuth, s.GetCreditHistory)
	router.Post("/plans/upgrade", middleware.RequireAPISessionAuth, s.PostPlanUpgrade)
	router.Post("/invites", middleware.RequireAPISessionAuth, s.PostInvite)
	router.Get("/invites/stats", middleware.RequireAPISessionAuth, s.GetInviteStats)
	router.Post("/invites/redeem", middleware.RequireAPISessionAuth, s.PostInviteRedeem)
}
