package notification

import (
	"context"

	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
)

// Service delivers email and push notifications. All sends are
// fire-and-forget relative to ledger correctness: implementations log
// failures and never return them, so a failed send can never abort the
// state transition that triggered it.
type Service interface {
	// NotifySubmitted alerts approvers that a new request is pending.
	NotifySubmitted(ctx context.Context, req leave.LeaveRequest)
	// NotifyDecided alerts the employee of an approval or rejection.
	NotifyDecided(ctx context.Context, req leave.LeaveRequest)
	// NotifyPenalty alerts the employee that a late-arrival penalty was
	// assessed.
	NotifyPenalty(ctx context.Context, p penalty.Penalty)
}
