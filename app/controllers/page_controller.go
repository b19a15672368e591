package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EdmilsonDev/CodeMentor/app/repository"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/cache"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/metrics/counter"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/utils"
)

const (
	pageListCacheKey = "pages:active"
	pageListCacheTTL = time.Minute
)

// HandleGetPages lists all active marketing pages. The list is cached in
// Redis for a short window since it only changes on deploys.
func HandleGetPages(c *fiber.Ctx) error {
	if cached, err := cache.Get(pageListCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	pages, err := repository.GetGlobalFactory().GetPageRepository().GetActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar as páginas"})
	}

	payload, err := json.Marshal(fiber.Map{"pages": pages})
	if err != nil {
		return c.JSON(fiber.Map{"pages": pages})
	}
	if err := cache.Set(pageListCacheKey, string(payload), pageListCacheTTL); err != nil {
		log.Printf("page list cache write failed: %v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetPage serves one active page by slug and counts the view.
func HandleGetPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	page, err := repository.GetGlobalFactory().GetPageRepository().GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Página não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Falha ao carregar a página"})
	}

	// Views accumulate in Redis and are flushed to MySQL in batches
	if err := counter.AddPageView(page.ID); err != nil {
		log.Printf("page view counter failed for %q: %v", slug, err)
	}

	page.Content = utils.DecoratePageHTML(page.Content)

	return c.JSON(page)
}
