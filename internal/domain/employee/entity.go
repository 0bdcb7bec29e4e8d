package employee

import "time"

// Employee is the directory slice the leave and penalty engines need. Full
// profile management lives elsewhere.
type Employee struct {
	ID       string
	FullName string
	Email    string

	// DisplayCode is the stable NNNN-NNNN identifier assigned by the
	// housekeeping routine; nil until assigned.
	DisplayCode *string

	// ClockInThreshold overrides the global clock-in threshold for this
	// employee: an "HH:MM" string, the sentinel "unrestricted", or nil to
	// fall back to the global setting.
	ClockInThreshold *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ThresholdUnrestricted is the sentinel override that exempts an employee
// from lateness assessment entirely.
const ThresholdUnrestricted = "unrestricted"
