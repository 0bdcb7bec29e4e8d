package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyDays is the fixed magnitude of a late-arrival penalty.
var PenaltyDays = decimal.NewFromFloat(0.5)

// Penalty entity: at most one per (employee, calendar day), enforced by a
// unique constraint. The threshold, grace count and late count are a
// snapshot of the settings at assessment time, used later to detect
// staleness when the grace count is raised.
type Penalty struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    time.Time

	ThresholdMinutes int
	GraceCount       int
	LateCount        int

	AmountDays decimal.Decimal
	Reason     string

	CreatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// StillValid re-evaluates the penalty condition against the current grace
// count. A penalty becomes stale when the grace count is later raised above
// the late count that triggered it.
func (p Penalty) StillValid(currentGraceCount int) bool {
	if currentGraceCount == 0 {
		return p.LateCount > 0
	}
	return p.LateCount > currentGraceCount
}
