package leave

import (
	"context"

	"github.com/peoplehub/hr-backend-go/internal/domain/user"
)

// Ledger derives remaining balances from the approved consumption set.
// Deduction and restoration are not separate code paths: both reduce to a
// recompute over what is currently approved.
type Ledger interface {
	// Recompute re-derives remaining for the pair and writes it back to the
	// allotment. Idempotent; safe to re-run at any time.
	Recompute(ctx context.Context, employeeID, categoryID string) (Amount, error)
	// CheckSufficientBalance recomputes remaining (excluding
	// excludeRequestID when non-empty) and fails with an
	// InsufficientBalanceError if requested exceeds it.
	CheckSufficientBalance(ctx context.Context, employeeID, categoryID string, requested Amount, excludeRequestID string) error
	ApplyDeduction(ctx context.Context, requestID string) error
	ApplyRestoration(ctx context.Context, requestID string) error
	// ReconcileAll forces a recompute of every allotment. Used after bulk
	// data fixes; a no-op on an already-consistent ledger.
	ReconcileAll(ctx context.Context) (int, error)
}

// WorkflowService drives the pending -> approved/rejected state machine and
// the allotment administration around it.
type WorkflowService interface {
	Submit(ctx context.Context, actor user.Actor, req SubmitRequestRequest) (RequestResponse, error)
	Decide(ctx context.Context, actor user.Actor, req DecideRequestRequest) (RequestResponse, error)
	DeleteRequest(ctx context.Context, actor user.Actor, requestID string) error

	CreateAllotment(ctx context.Context, actor user.Actor, req CreateAllotmentRequest) (AllotmentResponse, error)
	EditAllotment(ctx context.Context, actor user.Actor, req UpdateAllotmentRequest) (AllotmentResponse, error)
	DeleteAllotment(ctx context.Context, actor user.Actor, allotmentID string) error

	ListMyRequests(ctx context.Context, actor user.Actor) ([]RequestResponse, error)
	ListRequests(ctx context.Context, actor user.Actor, status RequestStatus) ([]RequestResponse, error)
	ListAllotments(ctx context.Context, actor user.Actor, employeeID string) ([]AllotmentResponse, error)
	LedgerHistory(ctx context.Context, actor user.Actor, employeeID, categoryID string) (LedgerHistoryResponse, error)
}
