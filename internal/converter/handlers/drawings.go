package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"dxf-service/internal/converter/mapper"
	"dxf-service/internal/converter/models"
	"dxf-service/internal/converter/repository"
	"dxf-service/internal/converter/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Drawing Handlers
// ============================================================

// DrawingStore is the persistence the drawing routes need.
type DrawingStore interface {
	Create(ctx context.Context, d *models.StoredDrawing) error
	GetByID(ctx context.Context, id string) (*models.StoredDrawing, error)
	List(ctx context.Context) ([]models.StoredDrawing, error)
	Delete(ctx context.Context, id string) error
}

type DrawingHandler struct {
	repo     DrawingStore
	storage  *service.FileStorage
	defaults mapper.Defaults
}

func NewDrawingHandler(repo DrawingStore, storage *service.FileStorage, defaults mapper.Defaults) *DrawingHandler {
	return &DrawingHandler{repo: repo, storage: storage, defaults: defaults}
}

// Create renders a JSON drawing description and stores the result.
func (h *DrawingHandler) Create(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var drawing models.Drawing
	if err := json.Unmarshal(body, &drawing); err != nil {
		log.Printf("[DXF] Decode error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	doc, err := mapper.Build(&drawing, h.defaults)
	if err != nil {
		log.Printf("[DXF] Build error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	name := drawing.Name
	if name == "" {
		name = "drawing"
	}
	stored := &models.StoredDrawing{
		Name:     name,
		Units:    doc.Units().String(),
		Version:  doc.Version().String(),
		Entities: doc.Entities(),
		Content:  doc.Bytes(),
		Source:   string(body),
	}
	if err := h.repo.Create(context.Background(), stored); err != nil {
		log.Printf("[STORAGE] Create error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store drawing"})
	}

	log.Printf("[DXF] Stored drawing %s (%q, %d entities, %d bytes)", stored.ID, stored.Name, stored.Entities, stored.Size)
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *DrawingHandler) List(c fiber.Ctx) error {
	drawings, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[STORAGE] List error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list drawings"})
	}
	return c.JSON(drawings)
}

// Get sends the stored DXF inline.
func (h *DrawingHandler) Get(c fiber.Ctx) error {
	d, ok, err := h.lookup(c)
	if !ok {
		return err
	}
	return sendDXF(c, d.Name, d.Content)
}

// Export writes the stored drawing to the export directory. Drawings with a
// stored description are rebuilt and saved through the document; others are
// written as stored.
func (h *DrawingHandler) Export(c fiber.Ctx) error {
	d, ok, err := h.lookup(c)
	if !ok {
		return err
	}

	path, err := h.export(d)
	if err != nil {
		log.Printf("[STORAGE] Export %s error: %v", d.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("[STORAGE] Exported %s to %s", d.ID, path)
	return c.JSON(fiber.Map{"id": d.ID, "path": path})
}

func (h *DrawingHandler) export(d *models.StoredDrawing) (string, error) {
	if d.Source == "" {
		return h.storage.SaveFile(d.ID, d.Content)
	}

	var drawing models.Drawing
	if err := json.Unmarshal([]byte(d.Source), &drawing); err != nil {
		return "", err
	}
	doc, err := mapper.Build(&drawing, h.defaults)
	if err != nil {
		return "", err
	}
	return h.storage.Export(d.ID, doc)
}

func (h *DrawingHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.repo.Delete(context.Background(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
		}
		log.Printf("[STORAGE] Delete %s error: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete drawing"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// lookup loads the drawing named by :id. When ok is false the error
// response has been written and err is what the handler returns.
func (h *DrawingHandler) lookup(c fiber.Ctx) (d *models.StoredDrawing, ok bool, err error) {
	id := c.Params("id")
	d, err = h.repo.GetByID(context.Background(), id)
	if err == nil {
		return d, true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
	}
	log.Printf("[STORAGE] Get %s error: %v", id, err)
	return nil, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load drawing"})
}
