package penalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/employee"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/domain/notification"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/domain/settings"
	"github.com/peoplehub/hr-backend-go/internal/domain/user"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
	"github.com/peoplehub/hr-backend-go/internal/pkg/validator"
	"github.com/peoplehub/hr-backend-go/internal/repository/postgresql"
)

// AssessorServiceImpl turns late clock-ins into half-day penalties charged
// against the configured leave category. Same-day idempotency rides on the
// penalty table's unique constraint, not on the pre-read.
type AssessorServiceImpl struct {
	db                  *database.DB
	penaltyCategoryName string

	employees  employee.EmployeeRepository
	clockIns   attendance.ClockInRepository
	penalties  penalty.PenaltyRepository
	categories category.CategoryRepository
	allotments leave.AllotmentRepository
	requests   leave.LeaveRequestRepository
	settings   settings.Repository
	ledger     leave.Ledger
	notifier   notification.Service
}

func NewAssessorService(
	db *database.DB,
	penaltyCategoryName string,
	employees employee.EmployeeRepository,
	clockIns attendance.ClockInRepository,
	penalties penalty.PenaltyRepository,
	categories category.CategoryRepository,
	allotments leave.AllotmentRepository,
	requests leave.LeaveRequestRepository,
	settingsRepo settings.Repository,
	ledger leave.Ledger,
	notifier notification.Service,
) *AssessorServiceImpl {
	return &AssessorServiceImpl{
		db:                  db,
		penaltyCategoryName: penaltyCategoryName,
		employees:           employees,
		clockIns:            clockIns,
		penalties:           penalties,
		categories:          categories,
		allotments:          allotments,
		requests:            requests,
		settings:            settingsRepo,
		ledger:              ledger,
		notifier:            notifier,
	}
}

// Assess implements penalty.Service. Runs after the clock-in event is
// recorded; the clock-in itself never fails because of the assessment.
func (s *AssessorServiceImpl) Assess(ctx context.Context, employeeID string, clockIn time.Time) (penalty.Assessment, error) {
	thresholdMinutes, restricted, err := s.resolveThreshold(ctx, employeeID)
	if err != nil {
		return penalty.Assessment{}, err
	}
	if !restricted {
		return penalty.Assessment{Outcome: penalty.OutcomeNoPenalty}, nil
	}

	graceCount, err := settings.MaxLateDaysPerMonth(ctx, s.settings)
	if err != nil {
		return penalty.Assessment{}, err
	}

	lateCount, err := s.countLateDays(ctx, employeeID, clockIn, thresholdMinutes)
	if err != nil {
		return penalty.Assessment{}, err
	}

	assessment := penalty.Assessment{
		Outcome:          penalty.OutcomeNoPenalty,
		LateCount:        lateCount,
		GraceCount:       graceCount,
		ThresholdMinutes: thresholdMinutes,
	}

	if minutesSinceMidnight(clockIn) <= thresholdMinutes {
		return assessment, nil
	}
	if graceCount > 0 && lateCount <= graceCount {
		return assessment, nil
	}

	day := dateOf(clockIn)
	if _, err := s.penalties.GetByEmployeeAndDate(ctx, employeeID, day); err == nil {
		assessment.Outcome = penalty.OutcomeAlreadyPenalized
		return assessment, nil
	} else if !errors.Is(err, penalty.ErrPenaltyNotFound) {
		return penalty.Assessment{}, err
	}

	created, err := s.createPenalty(ctx, employeeID, clockIn, thresholdMinutes, graceCount, lateCount)
	if err != nil {
		// A concurrent clock-in got there first; both unique gates collapse
		// to the same outcome.
		if errors.Is(err, penalty.ErrAlreadyPenalized) || errors.Is(err, leave.ErrDuplicateDeduction) {
			assessment.Outcome = penalty.OutcomeAlreadyPenalized
			return assessment, nil
		}
		return penalty.Assessment{}, err
	}

	assessment.Outcome = penalty.OutcomePenaltyCreated
	assessment.Penalty = &created

	s.notifier.NotifyPenalty(ctx, created)

	return assessment, nil
}

// resolveThreshold picks the employee override when set, otherwise the
// global setting. restricted is false when the effective threshold is
// unrestricted or absent.
func (s *AssessorServiceImpl) resolveThreshold(ctx context.Context, employeeID string) (int, bool, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return 0, false, err
	}

	if emp.ClockInThreshold != nil {
		if *emp.ClockInThreshold == employee.ThresholdUnrestricted {
			return 0, false, nil
		}
		if minutes, ok := validator.ParseClockTime(*emp.ClockInThreshold); ok {
			return minutes, true, nil
		}
		slog.Warn("Ignoring malformed clock-in threshold override",
			"employee_id", employeeID,
			"value", *emp.ClockInThreshold)
	}

	return settings.DefaultClockInThreshold(ctx, s.settings)
}

// countLateDays counts distinct calendar days in the clock-in's month with at
// least one clock-in past the threshold, counting the current event whether
// or not it is persisted yet.
func (s *AssessorServiceImpl) countLateDays(ctx context.Context, employeeID string, clockIn time.Time, thresholdMinutes int) (int, error) {
	events, err := s.clockIns.ListForMonth(ctx, employeeID, clockIn)
	if err != nil {
		return 0, fmt.Errorf("failed to list clock-ins: %w", err)
	}

	lateDays := make(map[string]struct{})
	for _, e := range events {
		if minutesSinceMidnight(e.ClockIn) > thresholdMinutes {
			lateDays[dateOf(e.Date).Format("2006-01-02")] = struct{}{}
		}
	}
	if minutesSinceMidnight(clockIn) > thresholdMinutes {
		lateDays[dateOf(clockIn).Format("2006-01-02")] = struct{}{}
	}
	return len(lateDays), nil
}

// createPenalty writes the penalty row and its leave deduction in one
// transaction. The deduction is a real approved system-sourced request, so
// the ledger's recompute covers it with no extra bookkeeping.
func (s *AssessorServiceImpl) createPenalty(ctx context.Context, employeeID string, clockIn time.Time, thresholdMinutes, graceCount, lateCount int) (penalty.Penalty, error) {
	cat, err := s.categories.GetByName(ctx, s.penaltyCategoryName)
	if err != nil {
		return penalty.Penalty{}, fmt.Errorf("failed to resolve penalty category %q: %w", s.penaltyCategoryName, err)
	}
	if cat.Unit != category.UnitDays {
		return penalty.Penalty{}, fmt.Errorf("penalty category %q must be a day-unit category", cat.Name)
	}

	day := dateOf(clockIn)
	p := penalty.Penalty{
		EmployeeID:       employeeID,
		Date:             day,
		ClockIn:          clockIn,
		ThresholdMinutes: thresholdMinutes,
		GraceCount:       graceCount,
		LateCount:        lateCount,
		AmountDays:       penalty.PenaltyDays,
		Reason: fmt.Sprintf("late arrival on %s: %d late day(s) this month, grace count %d",
			day.Format("2006-01-02"), lateCount, graceCount),
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		created, err := s.penalties.Create(ctx, p)
		if err != nil {
			return err
		}
		p = created

		if err := s.ensureAllotment(ctx, employeeID, cat); err != nil {
			return err
		}

		deduction := leave.LeaveRequest{
			EmployeeID: employeeID,
			CategoryID: cat.ID,
			Amount:     leave.Days(penalty.PenaltyDays),
			StartDate:  day,
			EndDate:    day,
			Reason:     p.Reason,
			Source:     leave.SourceSystem,
			Status:     leave.StatusApproved,
		}
		if _, err := s.requests.Create(ctx, deduction); err != nil {
			return err
		}

		_, err = s.ledger.Recompute(ctx, employeeID, cat.ID)
		return err
	})
	if err != nil {
		return penalty.Penalty{}, err
	}
	return p, nil
}

// ensureAllotment auto-creates a zero-granted allotment when the employee has
// none for the penalty category, so the deduction always has a ledger row to
// land on. The balance simply clamps at zero.
func (s *AssessorServiceImpl) ensureAllotment(ctx context.Context, employeeID string, cat category.LeaveCategory) error {
	_, err := s.allotments.GetByEmployeeAndCategory(ctx, employeeID, cat.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, leave.ErrNotAllotted) {
		return err
	}

	zero := leave.ZeroAmount(cat.Unit)
	_, err = s.allotments.Create(ctx, leave.Allotment{
		EmployeeID: employeeID,
		CategoryID: cat.ID,
		Granted:    zero,
		Remaining:  zero,
		CreatedBy:  user.SystemActorID,
	})
	if errors.Is(err, leave.ErrDuplicateAllotment) {
		return nil
	}
	return err
}

// ListForEmployee implements penalty.Service. Reading the list sweeps out
// penalties made stale by a later grace-count raise. The sweep removes only
// the penalty record; the leave deduction it caused stays, as a decision
// already taken.
func (s *AssessorServiceImpl) ListForEmployee(ctx context.Context, employeeID string) ([]penalty.PenaltyResponse, error) {
	graceCount, err := settings.MaxLateDaysPerMonth(ctx, s.settings)
	if err != nil {
		return nil, err
	}

	penalties, err := s.penalties.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]penalty.PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		if !p.StillValid(graceCount) {
			if err := s.penalties.Delete(ctx, p.ID); err != nil && !errors.Is(err, penalty.ErrPenaltyNotFound) {
				slog.Warn("Failed to sweep stale penalty", "penalty_id", p.ID, "error", err)
			}
			continue
		}
		responses = append(responses, toPenaltyResponse(p))
	}
	return responses, nil
}

func toPenaltyResponse(p penalty.Penalty) penalty.PenaltyResponse {
	return penalty.PenaltyResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		Date:             p.Date.Format("2006-01-02"),
		ClockIn:          p.ClockIn.Format(time.RFC3339),
		ThresholdMinutes: p.ThresholdMinutes,
		GraceCount:       p.GraceCount,
		LateCount:        p.LateCount,
		AmountDays:       p.AmountDays.InexactFloat64(),
		Reason:           p.Reason,
	}
}

func minutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
