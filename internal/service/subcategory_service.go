package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// SubcategoryService coordinates subcategory CRUD.
type SubcategoryService struct {
	subcategories repository.SubcategoryRepository
	categories    repository.CategoryRepository
}

// NewSubcategoryService builds the service.
func NewSubcategoryService(subcategories repository.SubcategoryRepository, categories repository.CategoryRepository) *SubcategoryService {
	return &SubcategoryService{subcategories: subcategories, categories: categories}
}

// SubcategoryCreateInput describes a create payload.
type SubcategoryCreateInput struct {
	Name       string
	CategoryID string
}

// SubcategoryUpdate carries a partial update: nil fields are untouched.
type SubcategoryUpdate struct {
	Name       *string
	CategoryID *string
}

// ListAll returns every subcategory. An empty table is an error condition.
func (s *SubcategoryService) ListAll(ctx context.Context) ([]domain.Subcategory, error) {
	subcategories, err := s.subcategories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(subcategories) == 0 {
		return nil, apperrors.NewNotFound("No subcategories found", nil)
	}
	return subcategories, nil
}

// ListByCategory returns the subcategories owned by one category.
func (s *SubcategoryService) ListByCategory(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Category %s not found", categoryID))
	}
	subcategories, err := s.subcategories.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return subcategories, nil
}

// Create validates and persists a new subcategory. The (name, category)
// pair must be unique.
func (s *SubcategoryService) Create(ctx context.Context, input SubcategoryCreateInput) (*domain.Subcategory, error) {
	if input.Name == "" || input.CategoryID == "" {
		return nil, apperrors.NewValidationError("Name and category_id must be filled", nil)
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Category %s not found", input.CategoryID))
	}

	if _, err := s.subcategories.GetByNameAndCategory(ctx, input.Name, input.CategoryID); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("Subcategory '%s' already exists under this category.", input.Name), nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	subcategory := &domain.Subcategory{Name: input.Name, CategoryID: input.CategoryID}
	if err := s.subcategories.Create(ctx, subcategory); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return subcategory, nil
}

// Show retrieves a subcategory by id.
func (s *SubcategoryService) Show(ctx context.Context, id string) (*domain.Subcategory, error) {
	subcategory, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Subcategory %s not found", id))
	}
	return subcategory, nil
}

// Update applies the fields present in upd. A changed owning category
// must resolve.
func (s *SubcategoryService) Update(ctx context.Context, id string, upd SubcategoryUpdate) (*domain.Subcategory, error) {
	subcategory, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Subcategory %s not found", id))
	}

	if upd.CategoryID != nil && *upd.CategoryID != subcategory.CategoryID {
		if _, err := s.categories.GetByID(ctx, *upd.CategoryID); err != nil {
			return nil, mapLookupErr(err, fmt.Sprintf("Category %s not found", *upd.CategoryID))
		}
		subcategory.CategoryID = *upd.CategoryID
	}
	if upd.Name != nil {
		subcategory.Name = *upd.Name
	}

	if err := s.subcategories.Update(ctx, subcategory); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Subcategory %s not found", id))
	}
	return subcategory, nil
}

// Delete removes a subcategory by id.
func (s *SubcategoryService) Delete(ctx context.Context, id string) error {
	if err := s.subcategories.Delete(ctx, id); err != nil {
		return mapLookupErr(err, fmt.Sprintf("Subcategory %s not found", id))
	}
	return nil
}
