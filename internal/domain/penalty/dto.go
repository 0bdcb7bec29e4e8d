package penalty

import (
	"context"
	"time"
)

// Outcome of one assessment pass over a clock-in event.
type Outcome string

const (
	OutcomeNoPenalty        Outcome = "no_penalty"
	OutcomeAlreadyPenalized Outcome = "already_penalized"
	OutcomePenaltyCreated   Outcome = "penalty_created"
)

// Assessment is the result returned to the clock-in path. Counts are
// included even for NoPenalty so the caller can display "2 of 3 late days
// used" style messaging.
type Assessment struct {
	Outcome          Outcome
	LateCount        int
	GraceCount       int
	ThresholdMinutes int
	Penalty          *Penalty
}

// Service assesses clock-in events and serves the penalty read path with
// its lazy staleness sweep.
type Service interface {
	Assess(ctx context.Context, employeeID string, clockIn time.Time) (Assessment, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]PenaltyResponse, error)
}

type PenaltyResponse struct {
	ID               string  `json:"penalty_id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	ClockIn          string  `json:"clock_in"`
	ThresholdMinutes int     `json:"threshold_minutes"`
	GraceCount       int     `json:"grace_count"`
	LateCount        int     `json:"late_count"`
	AmountDays       float64 `json:"amount_days"`
	Reason           string  `json:"reason"`
}
