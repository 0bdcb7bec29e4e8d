package category

import "github.com/peoplehub/hr-backend-go/internal/pkg/validator"

type CreateCategoryRequest struct {
	Name string `json:"category_name"`
	Unit string `json:"category_unit"`
}

func (r *CreateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_name",
			Message: "category_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "category_name",
			Message: "category_name must not exceed 255 characters",
		})
	}
	if !Unit(r.Unit).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category_unit",
			Message: "category_unit must be 'days' or 'hours_minutes'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCategoryRequest struct {
	ID       string  `json:"category_id"`
	Name     *string `json:"category_name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_id",
			Message: "category_id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_name",
			Message: "category_name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CategoryResponse struct {
	ID       string `json:"category_id"`
	Name     string `json:"category_name"`
	Unit     string `json:"category_unit"`
	IsActive bool   `json:"is_active"`
}
