package category

import (
	"context"

	"github.com/peoplehub/hr-backend-go/internal/domain/user"
)

// Service is the registry of leave categories. The unit of a category is
// fixed at creation; deactivation is the supported way to retire one that is
// still referenced.
type Service interface {
	Create(ctx context.Context, actor user.Actor, req CreateCategoryRequest) (CategoryResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateCategoryRequest) (CategoryResponse, error)
	Delete(ctx context.Context, actor user.Actor, categoryID string) error
	List(ctx context.Context, activeOnly bool) ([]CategoryResponse, error)
	Get(ctx context.Context, categoryID string) (CategoryResponse, error)
}
