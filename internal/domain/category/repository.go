package category

import "context"

// CategoryRepository - interface for the leave_categories table
type CategoryRepository interface {
	Create(ctx context.Context, c LeaveCategory) (LeaveCategory, error)
	GetByID(ctx context.Context, id string) (LeaveCategory, error)
	// GetByName resolves a category by exact name. Used by the penalty
	// assessor to locate the configured penalty category.
	GetByName(ctx context.Context, name string) (LeaveCategory, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveCategory, error)
	Update(ctx context.Context, c LeaveCategory) error
	Delete(ctx context.Context, id string) error
	// IsReferenced reports whether any allotment references the category.
	IsReferenced(ctx context.Context, id string) (bool, error)
}
