package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/service/employee"
)

// ClockInResponse is the clock-in acknowledgement plus whatever the penalty
// assessment concluded. Assessment fields are zero when assessment was
// skipped or failed.
type ClockInResponse struct {
	ID         string `json:"clock_in_id"`
	EmployeeID string `json:"employee_id"`
	ClockIn    string `json:"clock_in"`
	Date       string `json:"date"`

	AssessmentOutcome string                   `json:"assessment_outcome,omitempty"`
	LateCount         int                      `json:"late_count,omitempty"`
	GraceCount        int                      `json:"grace_count,omitempty"`
	Penalty           *penalty.PenaltyResponse `json:"penalty,omitempty"`
}

type ClockInServiceImpl struct {
	clockIns attendance.ClockInRepository
	assessor penalty.Service
	assigner *employee.CodeAssigner
}

func NewClockInService(clockIns attendance.ClockInRepository, assessor penalty.Service, assigner *employee.CodeAssigner) *ClockInServiceImpl {
	return &ClockInServiceImpl{
		clockIns: clockIns,
		assessor: assessor,
		assigner: assigner,
	}
}

// ClockIn records the event and runs the penalty assessment afterwards. A
// failed assessment is logged and the clock-in still succeeds; the
// reconciliation sweep has no gap to cover because the unpersisted penalty
// never deducted anything.
func (s *ClockInServiceImpl) ClockIn(ctx context.Context, employeeID string, at time.Time) (ClockInResponse, error) {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

	created, err := s.clockIns.Create(ctx, attendance.ClockIn{
		EmployeeID: employeeID,
		ClockIn:    at,
		Date:       day,
	})
	if err != nil {
		return ClockInResponse{}, err
	}

	// Piggyback the display-code sweep on clock-in traffic; the assigner
	// throttles itself.
	go func() {
		if _, err := s.assigner.MaybeAssign(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Display code sweep failed", "error", err)
		}
	}()

	response := ClockInResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		ClockIn:    created.ClockIn.Format(time.RFC3339),
		Date:       day.Format("2006-01-02"),
	}

	assessment, err := s.assessor.Assess(ctx, employeeID, at)
	if err != nil {
		slog.Error("Penalty assessment failed after clock-in",
			"employee_id", employeeID,
			"clock_in_id", created.ID,
			"error", err)
		return response, nil
	}

	response.AssessmentOutcome = string(assessment.Outcome)
	response.LateCount = assessment.LateCount
	response.GraceCount = assessment.GraceCount
	if assessment.Penalty != nil {
		p := toPenaltyResponse(*assessment.Penalty)
		response.Penalty = &p
	}
	return response, nil
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
