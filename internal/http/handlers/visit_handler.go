package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pagetrail/backend/internal/consent"
	"github.com/pagetrail/backend/internal/http/dto"
	"github.com/pagetrail/backend/internal/middleware"
	"github.com/pagetrail/backend/internal/services"
	"go.uber.org/zap"
)

type VisitHandler struct {
	svc *services.VisitService
	log *zap.Logger
}

func NewVisitHandler(svc *services.VisitService, log *zap.Logger) *VisitHandler {
	return &VisitHandler{svc: svc, log: log}
}

// LogVisit ingests one page-view event. A malformed body is not an error;
// the visit is still recorded with default fields.
func (h *VisitHandler) LogVisit(c *fiber.Ctx) error {
	var req dto.LogRequest
	_ = c.BodyParser(&req)

	ua := req.UserAgent
	if ua == "" {
		ua = c.Get("User-Agent")
	}

	_, err := h.svc.Record(c.Context(), services.RecordInput{
		Path:         req.Path,
		UserAgent:    ua,
		ForwardedFor: c.Get("X-Forwarded-For"),
		RemoteAddr:   c.Context().RemoteAddr().String(),
		Consented:    consent.HasConsented(c),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:     "failed to record visit",
			RequestID: middleware.GetRequestID(c),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.SuccessResponse{OK: true})
}
