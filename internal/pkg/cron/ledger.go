package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
)

// LedgerJobs holds the periodic reconciliation pass. Because recompute is
// idempotent, rerunning it on an already-consistent ledger is a no-op; the
// job exists to heal any remaining write that was lost to a race or crash.
type LedgerJobs struct {
	ledger leave.Ledger
}

func NewLedgerJobs(ledger leave.Ledger) *LedgerJobs {
	return &LedgerJobs{ledger: ledger}
}

func (j *LedgerJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_leave_balances", 1*time.Hour, j.ReconcileBalances)
}

func (j *LedgerJobs) ReconcileBalances(ctx context.Context) error {
	count, err := j.ledger.ReconcileAll(ctx)
	if err != nil {
		return err
	}
	slog.Info("Cron: reconciled leave balances", "allotments", count)
	return nil
}
