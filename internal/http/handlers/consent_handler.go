package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pagetrail/backend/internal/consent"
	"github.com/pagetrail/backend/internal/http/dto"
)

type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

// GrantConsent sets the consent cookie. Always succeeds.
func (h *ConsentHandler) GrantConsent(c *fiber.Ctx) error {
	consent.Grant(c)
	return c.JSON(dto.ConsentResponse{OK: true, Consented: true})
}

// GetConsent lets the frontend snippet check current state without guessing
// at cookie parsing.
func (h *ConsentHandler) GetConsent(c *fiber.Ctx) error {
	return c.JSON(dto.ConsentResponse{OK: true, Consented: consent.HasConsented(c)})
}
