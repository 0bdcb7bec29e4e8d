package leave

import (
	"errors"
	"fmt"
)

var (
	ErrNotAllotted          = errors.New("no allotment exists for this employee and category")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrDuplicateAllotment   = errors.New("an allotment already exists for this employee and category")
	ErrAllotmentNotFound    = errors.New("allotment not found")
	ErrRequestNotFound      = errors.New("leave request not found")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrSelfApprovalNotAllowed = errors.New("you cannot decide your own leave request")
	ErrUnitMismatch         = errors.New("requested amount unit does not match the category unit")
	ErrDuplicateDeduction   = errors.New("a system deduction already exists for this employee, category and day")
)

// InsufficientBalanceError carries the remaining vs. requested amounts for
// user-facing messaging. errors.Is(err, ErrInsufficientBalance) matches it.
type InsufficientBalanceError struct {
	Remaining Amount
	Requested Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: remaining %s, requested %s",
		e.Remaining, e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
