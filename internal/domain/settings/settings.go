package settings

import (
	"context"
	"errors"
	"strconv"

	"github.com/peoplehub/hr-backend-go/internal/pkg/validator"
)

// Setting keys consumed by the penalty assessor.
const (
	KeyDefaultClockInThreshold = "default_clock_in_threshold"
	KeyMaxLateDaysPerMonth     = "max_late_days_per_month"
)

// Unrestricted is the threshold value that disables lateness assessment.
const Unrestricted = "unrestricted"

var ErrSettingNotFound = errors.New("setting not found")

// Repository - interface for the app_settings key-value table
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// DefaultClockInThreshold resolves the global clock-in threshold as minutes
// since midnight. ok is false when the threshold is absent or unrestricted,
// meaning no lateness assessment applies.
func DefaultClockInThreshold(ctx context.Context, repo Repository) (int, bool, error) {
	raw, err := repo.Get(ctx, KeyDefaultClockInThreshold)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if raw == Unrestricted {
		return 0, false, nil
	}
	minutes, valid := validator.ParseClockTime(raw)
	if !valid {
		return 0, false, nil
	}
	return minutes, true, nil
}

// MaxLateDaysPerMonth resolves the grace count, defaulting to 0 when the
// setting is absent or malformed.
func MaxLateDaysPerMonth(ctx context.Context, repo Repository) (int, error) {
	raw, err := repo.Get(ctx, KeyMaxLateDaysPerMonth)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return 0, nil
		}
		return 0, err
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0, nil
	}
	return count, nil
}
