package penalty

import (
	"context"
	"time"
)

// PenaltyRepository - interface for the attendance_penalties table.
// Create must rely on the (employee_id, date) unique constraint and return
// ErrAlreadyPenalized on violation; the preceding read is an optimization
// only.
type PenaltyRepository interface {
	Create(ctx context.Context, p Penalty) (Penalty, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Penalty, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Penalty, error)
	Delete(ctx context.Context, id string) error
}
