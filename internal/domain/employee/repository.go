package employee

import "context"

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListApprovers returns the employees whose linked user holds an HR or
	// admin role; used for submission notifications.
	ListApprovers(ctx context.Context) ([]Employee, error)
	// ListWithoutDisplayCode returns employees awaiting a display code,
	// oldest first so assignment order is stable.
	ListWithoutDisplayCode(ctx context.Context) ([]Employee, error)
	// MaxDisplayCodeSeq returns the highest assigned display-code sequence
	// number, 0 when none is assigned yet.
	MaxDisplayCodeSeq(ctx context.Context) (int, error)
	SetDisplayCode(ctx context.Context, employeeID, code string) error
}
