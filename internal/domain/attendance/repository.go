package attendance

import (
	"context"
	"time"
)

// ClockInRepository - interface for the attendance_clock_ins table
type ClockInRepository interface {
	Create(ctx context.Context, c ClockIn) (ClockIn, error)
	// ListForMonth returns every clock-in for the employee in the calendar
	// month containing ref.
	ListForMonth(ctx context.Context, employeeID string, ref time.Time) ([]ClockIn, error)
}
