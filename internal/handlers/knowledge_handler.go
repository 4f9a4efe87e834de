package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bbditm/resume-assistant/internal/repositories"
	"bbditm/resume-assistant/internal/services"
)

// KnowledgeHandler manages the registry of ingested institute documents.
// Deleting a document removes both its registry row and its chunks from the
// vector store.
type KnowledgeHandler struct {
	repo  repositories.KnowledgeRepository
	store services.KnowledgeStore
}

func NewKnowledgeHandler(repo repositories.KnowledgeRepository, store services.KnowledgeStore) *KnowledgeHandler {
	return &KnowledgeHandler{repo: repo, store: store}
}

// ListDocuments handles GET /api/v1/knowledge/documents.
func (h *KnowledgeHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.repo.List()
	if err != nil {
		log.Printf("❌ Failed to list knowledge documents: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list knowledge documents",
		})
	}

	return c.JSON(fiber.Map{
		"documents": docs,
		"count":     len(docs),
	})
}

// DeleteDocument handles DELETE /api/v1/knowledge/documents/:id.
func (h *KnowledgeHandler) DeleteDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	doc, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Knowledge document not found",
		})
	}

	if err := h.store.DeleteDocument(c.Context(), doc.ID.String()); err != nil {
		log.Printf("❌ Failed to delete chunks for %s: %v\n", doc.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document chunks",
		})
	}

	if err := h.repo.Delete(doc.ID); err != nil {
		log.Printf("❌ Failed to delete registry row for %s: %v\n", doc.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete knowledge document",
		})
	}

	log.Printf("🗑️  Deleted knowledge document %s (%s)\n", doc.ID, doc.Title)
	return c.JSON(fiber.Map{
		"message": "Knowledge document deleted",
		"id":      doc.ID,
	})
}
