package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/employee"
	"golang.org/x/sync/singleflight"
)

// assignCooldown is the minimum gap between two assignment sweeps.
const assignCooldown = 5 * time.Minute

// CodeAssigner hands out stable NNNN-NNNN display codes to employees that
// lack one. It is triggered opportunistically from read paths, so it
// throttles itself: at most one sweep per cooldown window, and concurrent
// triggers collapse into a single run.
type CodeAssigner struct {
	employees employee.EmployeeRepository

	group   singleflight.Group
	mu      sync.Mutex
	lastRun time.Time
}

func NewCodeAssigner(employees employee.EmployeeRepository) *CodeAssigner {
	return &CodeAssigner{employees: employees}
}

// MaybeAssign runs an assignment sweep unless one ran recently. Returns the
// number of codes assigned; 0 when the sweep was skipped.
func (a *CodeAssigner) MaybeAssign(ctx context.Context) (int, error) {
	a.mu.Lock()
	if time.Since(a.lastRun) < assignCooldown {
		a.mu.Unlock()
		return 0, nil
	}
	a.mu.Unlock()

	assigned, err, _ := a.group.Do("assign", func() (interface{}, error) {
		a.mu.Lock()
		if time.Since(a.lastRun) < assignCooldown {
			a.mu.Unlock()
			return 0, nil
		}
		a.lastRun = time.Now()
		a.mu.Unlock()

		return a.sweep(ctx)
	})
	if err != nil {
		return 0, err
	}
	return assigned.(int), nil
}

func (a *CodeAssigner) sweep(ctx context.Context) (int, error) {
	pending, err := a.employees.ListWithoutDisplayCode(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees without display code: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	seq, err := a.employees.MaxDisplayCodeSeq(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read max display code: %w", err)
	}

	assigned := 0
	for _, emp := range pending {
		seq++
		code := FormatDisplayCode(seq)
		if err := a.employees.SetDisplayCode(ctx, emp.ID, code); err != nil {
			slog.Warn("Failed to assign display code",
				"employee_id", emp.ID,
				"code", code,
				"error", err)
			continue
		}
		assigned++
	}

	if assigned > 0 {
		slog.Info("Assigned display codes", "count", assigned)
	}
	return assigned, nil
}

// FormatDisplayCode renders a sequence number as NNNN-NNNN.
func FormatDisplayCode(seq int) string {
	return fmt.Sprintf("%04d-%04d", seq/10000, seq%10000)
}
