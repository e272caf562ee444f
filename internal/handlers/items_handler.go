package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/services"
)

// maxListLimit caps how many records one request may ask for. The engine
// itself only enforces the floor of 1; the ceiling is transport throttling.
const maxListLimit = 50

type ItemsHandler struct {
	itemsService *services.ItemsService
}

func NewItemsHandler(itemsService *services.ItemsService) *ItemsHandler {
	return &ItemsHandler{itemsService: itemsService}
}

// ListItems handles GET /items?page=&limit=.
func (h *ItemsHandler) ListItems(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 10)
	if limit > maxListLimit {
		limit = maxListLimit
	}

	result, err := h.itemsService.ListValidatedItems(c.Context(), page, limit)
	if err != nil {
		slog.Error("items listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.NewError(dto.CodeInternalError, "Unexpected server error"))
	}
	return c.JSON(result)
}

// GetItem handles GET /items/:id. The three failure shapes stay distinct:
// 404 when no storage location matches, 422 when the resolved document is
// malformed, 403 when it resolved cleanly but is not publicly visible.
func (h *ItemsHandler) GetItem(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "item id is required"))
	}

	item, err := h.itemsService.GetItemByID(c.Context(), id)
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(dto.NewError(dto.CodeNotFound, "Item not found"))
	case errors.Is(err, services.ErrInvalidItemData):
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(dto.NewError(dto.CodeInvalidItemData, services.InvalidItemMessage))
	case err != nil:
		slog.Error("item lookup failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.NewError(dto.CodeInternalError, "Unexpected server error"))
	}

	if !item.IsPubliclyVisible() {
		return c.Status(fiber.StatusForbidden).
			JSON(dto.NewError(dto.CodeForbidden, "This item is not publicly available"))
	}
	return c.JSON(item)
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
