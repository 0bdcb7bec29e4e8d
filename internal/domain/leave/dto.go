package leave

import (
	"github.com/peoplehub/hr-backend-go/internal/pkg/validator"
)

type SubmitRequestRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	CategoryID string `json:"category_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`

	// Half-day marker, day categories only. Forces the amount to 0.5 day.
	HalfDay string `json:"half_day,omitempty"`

	// Short-leave time range, hour+minute categories only. The amount is
	// derived from the range.
	ShortStart string `json:"short_start,omitempty"`
	ShortEnd   string `json:"short_end,omitempty"`
}

func (r *SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CategoryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_id",
			Message: "category_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid YYYY-MM-DD date",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid YYYY-MM-DD date",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	switch HalfDay(r.HalfDay) {
	case HalfDayNone, HalfDayFirst, HalfDaySecond:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "half_day",
			Message: "half_day must be 'first_half' or 'second_half'",
		})
	}
	if (r.ShortStart == "") != (r.ShortEnd == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "short_start",
			Message: "short_start and short_end must be provided together",
		})
	}
	if r.ShortStart != "" {
		if _, ok := validator.ParseClockTime(r.ShortStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "short_start",
				Message: "short_start must be a valid HH:MM time",
			})
		}
	}
	if r.ShortEnd != "" {
		if _, ok := validator.ParseClockTime(r.ShortEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "short_end",
				Message: "short_end must be a valid HH:MM time",
			})
		}
	}
	if r.HalfDay != "" && r.ShortStart != "" {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day",
			Message: "half_day and a short-leave range are mutually exclusive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type DecideRequestRequest struct {
	RequestID       string `json:"request_id"`
	Decision        string `json:"decision"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func (r *DecideRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if Decision(r.Decision) != DecisionApprove && Decision(r.Decision) != DecisionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be 'approve' or 'reject'",
		})
	}
	if Decision(r.Decision) == DecisionReject && validator.IsEmpty(r.RejectionReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "rejection_reason",
			Message: "rejection_reason is required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateAllotmentRequest struct {
	EmployeeID   string  `json:"employee_id"`
	CategoryID   string  `json:"category_id"`
	GrantedDays  float64 `json:"granted_days,omitempty"`
	GrantedHours int     `json:"granted_hours,omitempty"`
	GrantedMins  int     `json:"granted_minutes,omitempty"`
	CarryForward bool    `json:"carry_forward,omitempty"`
}

func (r *CreateAllotmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.CategoryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_id",
			Message: "category_id is required",
		})
	}
	if r.GrantedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "granted_days",
			Message: "granted_days must not be negative",
		})
	}
	if r.GrantedHours < 0 || r.GrantedMins < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "granted_hours",
			Message: "granted hours and minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAllotmentRequest struct {
	ID           string   `json:"allotment_id"`
	CategoryID   *string  `json:"category_id,omitempty"`
	GrantedDays  *float64 `json:"granted_days,omitempty"`
	GrantedHours *int     `json:"granted_hours,omitempty"`
	GrantedMins  *int     `json:"granted_minutes,omitempty"`
	CarryForward *bool    `json:"carry_forward,omitempty"`
}

func (r *UpdateAllotmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "allotment_id",
			Message: "allotment_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AmountResponse renders an amount in its category unit.
type AmountResponse struct {
	Unit    string  `json:"unit"`
	Days    float64 `json:"days,omitempty"`
	Hours   int     `json:"hours,omitempty"`
	Minutes int     `json:"minutes,omitempty"`
	Display string  `json:"display"`
}

type AllotmentResponse struct {
	ID           string         `json:"allotment_id"`
	EmployeeID   string         `json:"employee_id"`
	CategoryID   string         `json:"category_id"`
	CategoryName string         `json:"category_name,omitempty"`
	Granted      AmountResponse `json:"granted"`
	Remaining    AmountResponse `json:"remaining"`
	CarryForward bool           `json:"carry_forward"`
}

type RequestResponse struct {
	ID           string         `json:"request_id"`
	EmployeeID   string         `json:"employee_id"`
	CategoryID   string         `json:"category_id"`
	CategoryName string         `json:"category_name,omitempty"`
	Amount       AmountResponse `json:"amount"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	HalfDay      string         `json:"half_day,omitempty"`
	Reason       string         `json:"reason"`
	Source       string         `json:"source"`
	Status       string         `json:"status"`
	ApproverID   *string        `json:"approver_id,omitempty"`
	ApprovedAt   *string        `json:"approved_at,omitempty"`
	RejectionReason *string     `json:"rejection_reason,omitempty"`
}

// LedgerHistoryResponse is the derived audit view for one
// (employee, category) pair: the allotment plus every approved consumption
// entry, newest first.
type LedgerHistoryResponse struct {
	Allotment AllotmentResponse `json:"allotment"`
	Entries   []RequestResponse `json:"entries"`
}
