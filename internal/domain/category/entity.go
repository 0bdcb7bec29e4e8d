package category

import "time"

// Unit is the measurement unit of a leave category. Day categories are
// consumed in whole or fractional days, short-leave categories in
// hours and minutes.
type Unit string

const (
	UnitDays         Unit = "days"
	UnitHoursMinutes Unit = "hours_minutes"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u == UnitDays || u == UnitHoursMinutes
}

// LeaveCategory entity. The unit is an explicit stored field; nothing in the
// system infers it from the category name.
type LeaveCategory struct {
	ID       string
	Name     string
	Unit     Unit
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
