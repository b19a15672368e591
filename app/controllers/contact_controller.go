package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/app/models"
	"github.com/EdmilsonDev/CodeMentor/app/repository"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/hcaptcha"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/mail"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/usercontext"
)

type contactRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Subject          string `json:"subject"`
	Message          string `json:"message"`
	HCaptchaResponse string `json:"h_captcha_response"`
}

// HandleContactSubmit stores a contact form submission and forwards it to
// the site owner's mailbox. Mail delivery is best-effort.
func HandleContactSubmit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Requisição inválida"})
	}

	if env.GetEnv("HCAPTCHA_SECRET", "") != "" {
		valid, err := hcaptcha.Verify(req.HCaptchaResponse)
		if err != nil || !valid {
			if err != nil {
				log.Printf("hCaptcha validation error: %v", err)
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "captcha_failed", "message": "Falha na validação do captcha. Tente novamente."})
		}
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		IPv4:    GetClientIP(c),
	}
	if err := msg.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Preencha todos os campos obrigatórios"})
	}

	if err := repository.GetGlobalFactory().GetContactRepository().Create(msg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao enviar a mensagem"})
	}

	getActionLogger().RecordBestEffort(c.UserContext(), usercontext.GetUserID(c), models.ActionContact, fiber.Map{"email": req.Email}, "")

	if owner := env.GetEnv("CONTACT_RECIPIENT", ""); owner != "" {
		subject := req.Subject
		if subject == "" {
			subject = "Novo contato pelo site"
		}
		body := fmt.Sprintf("De: %s <%s>\n\n%s", req.Name, req.Email, req.Message)
		if err := mail.SendMail(owner, subject, body); err != nil {
			log.Printf("contact mail delivery failed: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Mensagem enviada com sucesso"})
}
