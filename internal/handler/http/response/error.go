package response

import (
	"errors"
	"net/http"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/employee"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/domain/user"
	"github.com/peoplehub/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Insufficient balance carries the remaining vs requested amounts for
	// user-facing messaging.
	var insufficient *leave.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		BadRequest(w, "Insufficient leave balance", map[string]string{
			"remaining": insufficient.Remaining.String(),
			"requested": insufficient.Requested.String(),
		})
		return
	}

	switch {
	// Access errors
	case errors.Is(err, user.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, err.Error())

	// Category errors
	case errors.Is(err, category.ErrCategoryNotFound):
		NotFound(w, "Leave category not found")
	case errors.Is(err, category.ErrInvalidCategory):
		BadRequest(w, "Leave category does not exist or is inactive", nil)
	case errors.Is(err, category.ErrCategoryExists):
		Conflict(w, "A leave category with this name already exists")
	case errors.Is(err, category.ErrCategoryInUse):
		Conflict(w, "Leave category is referenced by an allotment")

	// Leave errors
	case errors.Is(err, leave.ErrNotAllotted):
		BadRequest(w, "No allotment exists for this employee and category", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrDuplicateAllotment):
		Conflict(w, "An allotment already exists for this employee and category")
	case errors.Is(err, leave.ErrAllotmentNotFound):
		NotFound(w, "Allotment not found")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrSelfApprovalNotAllowed):
		Forbidden(w, "You cannot decide your own leave request")
	case errors.Is(err, leave.ErrUnitMismatch):
		BadRequest(w, "Requested amount unit does not match the category unit", nil)
	case errors.Is(err, leave.ErrDuplicateDeduction):
		Conflict(w, "A deduction already exists for this employee, category and day")

	// Penalty errors
	case errors.Is(err, penalty.ErrAlreadyPenalized):
		Conflict(w, "A penalty already exists for this employee and day")
	case errors.Is(err, penalty.ErrPenaltyNotFound):
		NotFound(w, "Penalty not found")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
