package leave

import (
	"fmt"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/shopspring/decimal"
)

// Amount is a leave quantity tagged with its category unit. Day amounts keep
// one decimal of granularity (half days); hour+minute amounts are normalized
// so minutes always fall in [0,59].
type Amount struct {
	Unit    category.Unit
	Days    decimal.Decimal
	Hours   int
	Minutes int
}

// Days builds a day-unit amount rounded to one decimal place.
func Days(d decimal.Decimal) Amount {
	return Amount{
		Unit: category.UnitDays,
		Days: d.Round(1),
	}
}

// DaysFloat builds a day-unit amount from a float, rounded to one decimal.
func DaysFloat(f float64) Amount {
	return Days(decimal.NewFromFloat(f))
}

// HoursMinutes builds an hour+minute amount, carrying minute overflow
// into hours.
func HoursMinutes(hours, minutes int) Amount {
	return Amount{
		Unit:    category.UnitHoursMinutes,
		Hours:   hours + minutes/60,
		Minutes: minutes % 60,
	}
}

// FromMinutes builds an hour+minute amount from a total minute count.
func FromMinutes(total int) Amount {
	return HoursMinutes(0, total)
}

// TotalMinutes returns the amount as minutes. Only meaningful for
// hour+minute amounts.
func (a Amount) TotalMinutes() int {
	return a.Hours*60 + a.Minutes
}

// IsZero reports whether the amount is zero in its unit.
func (a Amount) IsZero() bool {
	if a.Unit == category.UnitHoursMinutes {
		return a.TotalMinutes() == 0
	}
	return a.Days.IsZero()
}

// IsNegative reports whether the amount is below zero in its unit.
func (a Amount) IsNegative() bool {
	if a.Unit == category.UnitHoursMinutes {
		return a.TotalMinutes() < 0
	}
	return a.Days.IsNegative()
}

// Cmp compares two amounts of the same unit: -1 if a < b, 0 if equal,
// +1 if a > b. Comparing across units is a programming error.
func (a Amount) Cmp(b Amount) int {
	if a.Unit != b.Unit {
		panic("leave: comparing amounts of different units")
	}
	if a.Unit == category.UnitHoursMinutes {
		am, bm := a.TotalMinutes(), b.TotalMinutes()
		switch {
		case am < bm:
			return -1
		case am > bm:
			return 1
		default:
			return 0
		}
	}
	return a.Days.Cmp(b.Days)
}

// Sub subtracts b from a in a's unit, clamping at zero. This is the only
// subtraction the ledger performs: granted minus the approved consumption
// sum, never going negative.
func (a Amount) Sub(b Amount) Amount {
	if a.Unit != b.Unit {
		panic("leave: subtracting amounts of different units")
	}
	if a.Unit == category.UnitHoursMinutes {
		remaining := a.TotalMinutes() - b.TotalMinutes()
		if remaining < 0 {
			remaining = 0
		}
		return FromMinutes(remaining)
	}
	remaining := a.Days.Sub(b.Days)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Days(remaining)
}

// Add sums two amounts of the same unit.
func (a Amount) Add(b Amount) Amount {
	if a.Unit != b.Unit {
		panic("leave: adding amounts of different units")
	}
	if a.Unit == category.UnitHoursMinutes {
		return FromMinutes(a.TotalMinutes() + b.TotalMinutes())
	}
	return Days(a.Days.Add(b.Days))
}

func (a Amount) String() string {
	if a.Unit == category.UnitHoursMinutes {
		return fmt.Sprintf("%dh%02dm", a.Hours, a.Minutes)
	}
	return a.Days.StringFixed(1) + " day(s)"
}

// ZeroAmount returns the zero value for a unit.
func ZeroAmount(unit category.Unit) Amount {
	if unit == category.UnitHoursMinutes {
		return HoursMinutes(0, 0)
	}
	return Days(decimal.Zero)
}
