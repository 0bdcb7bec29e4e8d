package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peoplehub/hr-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
)

type clockInRepositoryImpl struct {
	db *database.DB
}

func NewClockInRepository(db *database.DB) attendance.ClockInRepository {
	return &clockInRepositoryImpl{db: db}
}

// Create implements attendance.ClockInRepository.
func (r *clockInRepositoryImpl) Create(ctx context.Context, c attendance.ClockIn) (attendance.ClockIn, error) {
	q := GetQuerier(ctx, r.db)
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO attendance_clock_ins (id, employee_id, clock_in, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, c.ID, c.EmployeeID, c.ClockIn, c.Date).Scan(&c.CreatedAt)
	if err != nil {
		return attendance.ClockIn{}, err
	}
	return c, nil
}

// ListForMonth implements attendance.ClockInRepository.
func (r *clockInRepositoryImpl) ListForMonth(ctx context.Context, employeeID string, ref time.Time) ([]attendance.ClockIn, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, clock_in, date, created_at
		FROM attendance_clock_ins
		WHERE employee_id = $1
			AND date >= date_trunc('month', $2::date)
			AND date < date_trunc('month', $2::date) + INTERVAL '1 month'
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clockIns := make([]attendance.ClockIn, 0)
	for rows.Next() {
		var c attendance.ClockIn
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.ClockIn, &c.Date, &c.CreatedAt); err != nil {
			return nil, err
		}
		clockIns = append(clockIns, c)
	}

	return clockIns, nil
}
