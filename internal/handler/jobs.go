package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/nguyentantai21042004/slidecast/pkg/response"
)

// Job handles GET /api/jobs/:id
func (h *Handler) Job(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	rec, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			return response.NotFound(c, "Job not found")
		}
		h.logger.Error(c.UserContext(), "Failed to load job %s: %v", id, err)
		return response.ServiceError(c, "Failed to load job")
	}
	return response.OK(c, rec)
}

// Voices handles GET /api/voices
func (h *Handler) Voices(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{
		"voices":  speech.Voices,
		"default": h.cfg.Gemini.DefaultVoice,
	})
}

// Health handles GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"status": "ok"})
}
