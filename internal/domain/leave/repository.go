package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AllotmentRepository - interface for the leave_allotments table.
// Create must enforce the one-allotment-per-(employee, category) invariant
// with a unique constraint and return ErrDuplicateAllotment on violation.
type AllotmentRepository interface {
	Create(ctx context.Context, a Allotment) (Allotment, error)
	GetByID(ctx context.Context, id string) (Allotment, error)
	GetByEmployeeAndCategory(ctx context.Context, employeeID, categoryID string) (Allotment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Allotment, error)
	ListAll(ctx context.Context) ([]Allotment, error)
	Update(ctx context.Context, a Allotment) error
	// UpdateRemaining writes the ledger-derived remaining amount. The ledger
	// is the only caller.
	UpdateRemaining(ctx context.Context, allotmentID string, remaining Amount) error
	Delete(ctx context.Context, id string) error
}

// LeaveRequestRepository - interface for the leave_requests table.
// Create must enforce the one-system-deduction-per-(employee, category, day)
// invariant with a partial unique constraint and return ErrDuplicateDeduction
// on violation.
type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]LeaveRequest, error)
	ListApprovedByPair(ctx context.Context, employeeID, categoryID string) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, r LeaveRequest) error
	Delete(ctx context.Context, id string) error
	// SumApproved sums the amounts of approved requests for the pair,
	// excluding excludeRequestID when non-empty. Day and minute totals are
	// returned separately; only the one matching the category unit is
	// meaningful.
	SumApproved(ctx context.Context, employeeID, categoryID, excludeRequestID string) (AmountTotals, error)
	// HasSystemDeductionOn reports whether a system-written consumption entry
	// already exists for the employee and category on the given day. It is an
	// optimization only; the unique constraint is the authoritative gate.
	HasSystemDeductionOn(ctx context.Context, employeeID, categoryID string, day time.Time) (bool, error)
}

// AmountTotals is the raw approved-consumption sum for one
// (employee, category) pair.
type AmountTotals struct {
	Days    decimal.Decimal
	Minutes int
}
