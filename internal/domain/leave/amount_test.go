package leave

import (
	"testing"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDaysRounding(t *testing.T) {
	a := Days(decimal.NewFromFloat(2.55))
	assert.Equal(t, "2.6 day(s)", a.String())

	b := DaysFloat(0.5)
	assert.Equal(t, "0.5 day(s)", b.String())
}

func TestHoursMinutesNormalization(t *testing.T) {
	a := HoursMinutes(1, 90)
	assert.Equal(t, 2, a.Hours)
	assert.Equal(t, 30, a.Minutes)

	b := FromMinutes(125)
	assert.Equal(t, 2, b.Hours)
	assert.Equal(t, 5, b.Minutes)
	assert.Equal(t, 125, b.TotalMinutes())
}

func TestSubClampsAtZero(t *testing.T) {
	got := DaysFloat(1).Sub(DaysFloat(2.5))
	assert.True(t, got.IsZero())

	gotHM := FromMinutes(30).Sub(FromMinutes(90))
	assert.True(t, gotHM.IsZero())
}

func TestSubExact(t *testing.T) {
	// 2h granted, 1h30m consumed leaves 0h30m.
	got := HoursMinutes(2, 0).Sub(HoursMinutes(1, 30))
	assert.Equal(t, "0h30m", got.String())

	gotDays := DaysFloat(10).Sub(DaysFloat(3))
	assert.Equal(t, "7.0 day(s)", gotDays.String())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, DaysFloat(0.5).Cmp(DaysFloat(1)))
	assert.Equal(t, 0, FromMinutes(60).Cmp(HoursMinutes(1, 0)))
	assert.Equal(t, 1, FromMinutes(61).Cmp(HoursMinutes(1, 0)))
}

func TestCmpPanicsAcrossUnits(t *testing.T) {
	assert.Panics(t, func() {
		DaysFloat(1).Cmp(FromMinutes(60))
	})
}

func TestZeroAmount(t *testing.T) {
	assert.True(t, ZeroAmount(category.UnitDays).IsZero())
	assert.True(t, ZeroAmount(category.UnitHoursMinutes).IsZero())
	assert.Equal(t, category.UnitHoursMinutes, ZeroAmount(category.UnitHoursMinutes).Unit)
}

func TestAdd(t *testing.T) {
	got := DaysFloat(1.5).Add(DaysFloat(0.5))
	assert.Equal(t, "2.0 day(s)", got.String())

	gotHM := HoursMinutes(0, 45).Add(HoursMinutes(0, 30))
	assert.Equal(t, "1h15m", gotHM.String())
}
