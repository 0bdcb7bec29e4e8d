package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
)

// LedgerServiceImpl derives remaining balances from the approved request set.
// Nothing else in the system writes the remaining column.
type LedgerServiceImpl struct {
	allotments leave.AllotmentRepository
	requests   leave.LeaveRequestRepository
}

func NewLedgerService(
	allotments leave.AllotmentRepository,
	requests leave.LeaveRequestRepository,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		allotments: allotments,
		requests:   requests,
	}
}

// Recompute implements leave.Ledger. remaining = granted - sum(approved),
// clamped at zero. Running it twice in a row is a no-op.
func (s *LedgerServiceImpl) Recompute(ctx context.Context, employeeID, categoryID string) (leave.Amount, error) {
	return s.recompute(ctx, employeeID, categoryID, "")
}

func (s *LedgerServiceImpl) recompute(ctx context.Context, employeeID, categoryID, excludeRequestID string) (leave.Amount, error) {
	allotment, err := s.allotments.GetByEmployeeAndCategory(ctx, employeeID, categoryID)
	if err != nil {
		return leave.Amount{}, err
	}

	consumed, err := s.consumed(ctx, employeeID, categoryID, excludeRequestID, allotment.Granted.Unit)
	if err != nil {
		return leave.Amount{}, err
	}

	remaining := allotment.Granted.Sub(consumed)
	if remaining.Cmp(allotment.Remaining) != 0 {
		if err := s.allotments.UpdateRemaining(ctx, allotment.ID, remaining); err != nil {
			return leave.Amount{}, fmt.Errorf("failed to write recomputed balance: %w", err)
		}
	}
	return remaining, nil
}

func (s *LedgerServiceImpl) consumed(ctx context.Context, employeeID, categoryID, excludeRequestID string, unit category.Unit) (leave.Amount, error) {
	totals, err := s.requests.SumApproved(ctx, employeeID, categoryID, excludeRequestID)
	if err != nil {
		return leave.Amount{}, fmt.Errorf("failed to sum approved requests: %w", err)
	}
	if unit == category.UnitHoursMinutes {
		return leave.FromMinutes(totals.Minutes), nil
	}
	return leave.Days(totals.Days), nil
}

// CheckSufficientBalance implements leave.Ledger. The exclusion lets a
// resubmission or edit be checked against the balance without the request
// itself counting against it.
func (s *LedgerServiceImpl) CheckSufficientBalance(ctx context.Context, employeeID, categoryID string, requested leave.Amount, excludeRequestID string) error {
	allotment, err := s.allotments.GetByEmployeeAndCategory(ctx, employeeID, categoryID)
	if err != nil {
		return err
	}
	if allotment.Granted.Unit != requested.Unit {
		return leave.ErrUnitMismatch
	}

	consumed, err := s.consumed(ctx, employeeID, categoryID, excludeRequestID, allotment.Granted.Unit)
	if err != nil {
		return err
	}

	remaining := allotment.Granted.Sub(consumed)
	if requested.Cmp(remaining) > 0 {
		return &leave.InsufficientBalanceError{
			Remaining: remaining,
			Requested: requested,
		}
	}
	return nil
}

// ApplyDeduction implements leave.Ledger. The request is already approved at
// this point, so the recompute picks it up; there is no separate "subtract
// this amount" path that could drift from the request set.
func (s *LedgerServiceImpl) ApplyDeduction(ctx context.Context, requestID string) error {
	return s.recomputeForRequest(ctx, requestID)
}

// ApplyRestoration implements leave.Ledger. Symmetric with ApplyDeduction:
// the request has left the approved set, the recompute reflects that.
func (s *LedgerServiceImpl) ApplyRestoration(ctx context.Context, requestID string) error {
	return s.recomputeForRequest(ctx, requestID)
}

func (s *LedgerServiceImpl) recomputeForRequest(ctx context.Context, requestID string) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	_, err = s.Recompute(ctx, request.EmployeeID, request.CategoryID)
	return err
}

// ReconcileAll implements leave.Ledger. Failures on individual allotments
// are logged and the sweep continues, so one bad row cannot starve the rest.
func (s *LedgerServiceImpl) ReconcileAll(ctx context.Context) (int, error) {
	allotments, err := s.allotments.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list allotments: %w", err)
	}

	reconciled := 0
	var firstErr error
	for _, a := range allotments {
		if _, err := s.Recompute(ctx, a.EmployeeID, a.CategoryID); err != nil {
			slog.Warn("Failed to reconcile allotment",
				"allotment_id", a.ID,
				"employee_id", a.EmployeeID,
				"category_id", a.CategoryID,
				"error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reconciled++
	}
	return reconciled, firstErr
}
