package handlers

import (
	"bytes"
	"io"
	"log"
	"path/filepath"
	"strings"

	"dxf-service/internal/converter/mapper"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Convert Handler
// ============================================================

// Convert turns an uploaded SVG into a DXF document.
func (h *ConverterHandler) Convert(c fiber.Ctx) error {
	log.Printf("[CONVERT] Received request")
	log.Printf("[CONVERT] Content-Type: %s", c.Get("Content-Type"))

	// multipart/form-data
	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[CONVERT] FormFile error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	log.Printf("[CONVERT] File received: %s, size: %d", file.Filename, file.Size)

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	defaults := h.defaults
	if v := c.Query("version"); v != "" {
		defaults.Version = v
	}
	if u := c.Query("units"); u != "" {
		defaults.Units = u
	}

	doc, err := mapper.New(defaults).Convert(bytes.NewReader(data))
	if err != nil {
		log.Printf("[CONVERT] Conversion error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("[CONVERT] Conversion successful, %d entities", doc.Entities())
	name := strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	return SendInline(c, name, doc)
}
