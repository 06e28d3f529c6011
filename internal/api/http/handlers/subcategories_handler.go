package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// SubcategoriesHandler exposes subcategory CRUD endpoints.
type SubcategoriesHandler struct {
	subcategories *service.SubcategoryService
}

// NewSubcategoriesHandler constructs the handler.
func NewSubcategoriesHandler(subcategoryService *service.SubcategoryService) *SubcategoriesHandler {
	return &SubcategoriesHandler{subcategories: subcategoryService}
}

// List handles GET /subcategories.
func (h *SubcategoriesHandler) List(c *fiber.Ctx) error {
	subcategories, err := h.subcategories.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subcategoryResponses(subcategories)})
}

// ListByCategory handles GET /subcategories/:category_id/show.
func (h *SubcategoriesHandler) ListByCategory(c *fiber.Ctx) error {
	categoryID, err := idParam(c, "category_id")
	if err != nil {
		return err
	}
	subcategories, err := h.subcategories.ListByCategory(c.UserContext(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subcategoryResponses(subcategories)})
}

// Create handles POST /subcategories.
func (h *SubcategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	subcategory, err := h.subcategories.Create(c.UserContext(), service.SubcategoryCreateInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubcategoryResponse(subcategory)})
}

// Get handles GET /subcategories/:id.
func (h *SubcategoriesHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	subcategory, err := h.subcategories.Show(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubcategoryResponse(subcategory)})
}

// Update handles PATCH /subcategories/:id.
func (h *SubcategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSubcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	subcategory, err := h.subcategories.Update(c.UserContext(), id, service.SubcategoryUpdate{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubcategoryResponse(subcategory)})
}

// Delete handles DELETE /subcategories/:id.
func (h *SubcategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.subcategories.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": "Subcategory " + id + " deleted."})
}

func subcategoryResponses(subcategories []domain.Subcategory) []dto.SubcategoryResponse {
	items := make([]dto.SubcategoryResponse, 0, len(subcategories))
	for i := range subcategories {
		items = append(items, dto.NewSubcategoryResponse(&subcategories[i]))
	}
	return items
}
