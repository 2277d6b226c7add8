package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pagetrail/backend/internal/http/dto"
	"github.com/pagetrail/backend/internal/middleware"
	"github.com/pagetrail/backend/internal/repositories"
	"github.com/pagetrail/backend/internal/services"
	"go.uber.org/zap"
)

const defaultListLimit = 50

type AdminHandler struct {
	store services.VisitStore
	log   *zap.Logger
}

func NewAdminHandler(store services.VisitStore, log *zap.Logger) *AdminHandler {
	return &AdminHandler{store: store, log: log}
}

// ListLogs returns a page of visits, most recent first. Routed behind the
// basic-auth gate.
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", defaultListLimit)
	offset := queryInt(c, "offset", 0)
	if limit <= 0 || limit > repositories.MaxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	visits, err := h.store.List(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list visits", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:     "failed to list logs",
			RequestID: middleware.GetRequestID(c),
		})
	}

	total, err := h.store.Count(c.Context())
	if err != nil {
		h.log.Error("failed to count visits", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:     "failed to count logs",
			RequestID: middleware.GetRequestID(c),
		})
	}

	return c.JSON(dto.LogListResponse{
		Total:  total,
		Limit:  limit,
		Offset: offset,
		Logs:   visits,
	})
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	s := c.Query(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
