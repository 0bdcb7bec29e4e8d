package leave

import (
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
)

// Allotment entity. At most one allotment may exist per
// (employee, category) pair; the remaining amount is derived by the ledger
// and never edited directly.
type Allotment struct {
	ID         string
	EmployeeID string
	CategoryID string

	Granted      Amount
	Remaining    Amount
	CarryForward bool

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	CategoryName *string
	EmployeeName *string
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// RequestSource distinguishes employee-submitted requests from consumption
// entries the system writes itself (penalty deductions).
type RequestSource string

const (
	SourceEmployee RequestSource = "employee"
	SourceSystem   RequestSource = "system"
)

// HalfDay marks a half-day request; forces the amount to 0.5 day.
type HalfDay string

const (
	HalfDayNone   HalfDay = ""
	HalfDayFirst  HalfDay = "first_half"
	HalfDaySecond HalfDay = "second_half"
)

// LeaveRequest entity. Approved requests are the ground truth the ledger
// sums over; there is no second bookkeeping record.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	CategoryID string

	Amount    Amount
	StartDate time.Time
	EndDate   time.Time

	HalfDay    HalfDay
	ShortStart *time.Time
	ShortEnd   *time.Time

	Reason string
	Source RequestSource

	Status          RequestStatus
	ApproverID      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	CategoryName *string
	CategoryUnit category.Unit
	EmployeeName *string
}

// IsTerminal reports whether the request has left the pending state.
func (r LeaveRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
