package handlers

import (
	"encoding/json"
	"log"

	"dxf-service/internal/converter/mapper"
	"dxf-service/internal/converter/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handler
// ============================================================

type ConverterHandler struct {
	defaults mapper.Defaults
}

func NewConverterHandler(defaults mapper.Defaults) *ConverterHandler {
	return &ConverterHandler{defaults: defaults}
}

// Render builds a DXF document from a JSON drawing description.
func (h *ConverterHandler) Render(c fiber.Ctx) error {
	log.Printf("[RENDER] Received request, %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body required",
		})
	}

	var drawing models.Drawing
	if err := json.Unmarshal(c.Body(), &drawing); err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	doc, err := mapper.Build(&drawing, h.defaults)
	if err != nil {
		log.Printf("[RENDER] Build error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("[RENDER] %q: %d entities, %s", drawing.Name, doc.Entities(), doc.Version())
	return SendInline(c, drawing.Name, doc)
}
