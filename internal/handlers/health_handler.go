package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/store"
)

type HealthHandler struct {
	store store.DocumentStore
}

func NewHealthHandler(documents store.DocumentStore) *HealthHandler {
	return &HealthHandler{store: documents}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{OK: true, Service: "backend"})
}

// CheckFirestore reads the system/health document to verify store
// connectivity end to end.
func (h *HealthHandler) CheckFirestore(c *fiber.Ctx) error {
	doc, err := h.store.Get(c.Context(), "system", "health")
	if errors.Is(err, store.ErrDocumentNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(dto.NewError(dto.CodeNotFound, "health doc not found"))
	}
	if err != nil {
		slog.Error("firestore health check failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.NewError(dto.CodeInternalError, "Unexpected server error"))
	}

	return c.JSON(dto.FirestoreHealthResponse{
		OK:        true,
		Firestore: true,
		Data:      doc.Data,
	})
}
