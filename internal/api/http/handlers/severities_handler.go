package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// SeveritiesHandler exposes severity CRUD endpoints.
type SeveritiesHandler struct {
	severities *service.SeverityService
}

// NewSeveritiesHandler constructs the handler.
func NewSeveritiesHandler(severityService *service.SeverityService) *SeveritiesHandler {
	return &SeveritiesHandler{severities: severityService}
}

// List handles GET /severities.
func (h *SeveritiesHandler) List(c *fiber.Ctx) error {
	severities, err := h.severities.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SeverityResponse, 0, len(severities))
	for i := range severities {
		items = append(items, dto.NewSeverityResponse(&severities[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /severities.
func (h *SeveritiesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSeverityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	severity, err := h.severities.Create(c.UserContext(), service.SeverityCreateInput{
		Level:       req.Level,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSeverityResponse(severity)})
}

// Get handles GET /severities/:id.
func (h *SeveritiesHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	severity, err := h.severities.Show(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSeverityResponse(severity)})
}

// Update handles PATCH /severities/:id.
func (h *SeveritiesHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSeverityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	severity, err := h.severities.Update(c.UserContext(), id, service.SeverityUpdate{
		Level:       req.Level,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSeverityResponse(severity)})
}

// Delete handles DELETE /severities/:id.
func (h *SeveritiesHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.severities.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": "Severity " + id + " deleted."})
}
