package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
)

type penaltyRepositoryImpl struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) penalty.PenaltyRepository {
	return &penaltyRepositoryImpl{db: db}
}

// Create implements penalty.PenaltyRepository. The unique constraint on
// (employee_id, date) makes concurrent same-day clock-ins safe: the second
// insert fails with ErrAlreadyPenalized instead of creating a duplicate.
func (r *penaltyRepositoryImpl) Create(ctx context.Context, p penalty.Penalty) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO attendance_penalties (
			id, employee_id, date, clock_in,
			threshold_minutes, grace_count, late_count,
			amount_days, reason, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.Date, p.ClockIn,
		p.ThresholdMinutes, p.GraceCount, p.LateCount,
		p.AmountDays, p.Reason,
	).Scan(&p.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return penalty.Penalty{}, penalty.ErrAlreadyPenalized
		}
		return penalty.Penalty{}, err
	}

	return p, nil
}

// GetByEmployeeAndDate implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, date, clock_in,
			threshold_minutes, grace_count, late_count,
			amount_days, reason, created_at
		FROM attendance_penalties
		WHERE employee_id = $1 AND date = $2
	`

	var p penalty.Penalty
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&p.ID, &p.EmployeeID, &p.Date, &p.ClockIn,
		&p.ThresholdMinutes, &p.GraceCount, &p.LateCount,
		&p.AmountDays, &p.Reason, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return penalty.Penalty{}, penalty.ErrPenaltyNotFound
		}
		return penalty.Penalty{}, err
	}
	return p, nil
}

// ListByEmployee implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, date, clock_in,
			threshold_minutes, grace_count, late_count,
			amount_days, reason, created_at
		FROM attendance_penalties
		WHERE employee_id = $1
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	penalties := make([]penalty.Penalty, 0)
	for rows.Next() {
		var p penalty.Penalty
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Date, &p.ClockIn,
			&p.ThresholdMinutes, &p.GraceCount, &p.LateCount,
			&p.AmountDays, &p.Reason, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}

	return penalties, nil
}

// Delete implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_penalties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return penalty.ErrPenaltyNotFound
	}
	return nil
}
