package category

import (
	"context"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/user"
)

type RegistryServiceImpl struct {
	categories category.CategoryRepository
}

func NewRegistryService(categories category.CategoryRepository) *RegistryServiceImpl {
	return &RegistryServiceImpl{categories: categories}
}

// Create implements category.Service.
func (s *RegistryServiceImpl) Create(ctx context.Context, actor user.Actor, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return category.CategoryResponse{}, err
	}
	if !actor.IsApprover() {
		return category.CategoryResponse{}, user.ErrHRAccessRequired
	}

	created, err := s.categories.Create(ctx, category.LeaveCategory{
		Name:     req.Name,
		Unit:     category.Unit(req.Unit),
		IsActive: true,
	})
	if err != nil {
		return category.CategoryResponse{}, err
	}
	return toResponse(created), nil
}

// Update implements category.Service. The unit is immutable; renaming and
// activation toggles are the only edits.
func (s *RegistryServiceImpl) Update(ctx context.Context, actor user.Actor, req category.UpdateCategoryRequest) (category.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return category.CategoryResponse{}, err
	}
	if !actor.IsApprover() {
		return category.CategoryResponse{}, user.ErrHRAccessRequired
	}

	cat, err := s.categories.GetByID(ctx, req.ID)
	if err != nil {
		return category.CategoryResponse{}, err
	}
	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		return category.CategoryResponse{}, err
	}
	return toResponse(cat), nil
}

// Delete implements category.Service. A category referenced by any allotment
// cannot be deleted, only deactivated.
func (s *RegistryServiceImpl) Delete(ctx context.Context, actor user.Actor, categoryID string) error {
	if !actor.IsApprover() {
		return user.ErrHRAccessRequired
	}

	referenced, err := s.categories.IsReferenced(ctx, categoryID)
	if err != nil {
		return err
	}
	if referenced {
		return category.ErrCategoryInUse
	}
	return s.categories.Delete(ctx, categoryID)
}

// List implements category.Service.
func (s *RegistryServiceImpl) List(ctx context.Context, activeOnly bool) ([]category.CategoryResponse, error) {
	cats, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]category.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		responses = append(responses, toResponse(c))
	}
	return responses, nil
}

// Get implements category.Service.
func (s *RegistryServiceImpl) Get(ctx context.Context, categoryID string) (category.CategoryResponse, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return category.CategoryResponse{}, err
	}
	return toResponse(cat), nil
}

func toResponse(c category.LeaveCategory) category.CategoryResponse {
	return category.CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Unit:     string(c.Unit),
		IsActive: c.IsActive,
	}
}
