package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type allotmentRepositoryImpl struct {
	db *database.DB
}

func NewAllotmentRepository(db *database.DB) leave.AllotmentRepository {
	return &allotmentRepositoryImpl{db: db}
}

// allotmentRow is the flat scan target; amounts are reassembled from the
// unit column.
type allotmentRow struct {
	grantedDays      decimal.Decimal
	grantedMinutes   int
	remainingDays    decimal.Decimal
	remainingMinutes int
	unit             string
}

func (row allotmentRow) amounts() (granted, remaining leave.Amount) {
	if category.Unit(row.unit) == category.UnitHoursMinutes {
		return leave.FromMinutes(row.grantedMinutes), leave.FromMinutes(row.remainingMinutes)
	}
	return leave.Days(row.grantedDays), leave.Days(row.remainingDays)
}

const allotmentColumns = `
	a.id, a.employee_id, a.category_id,
	a.granted_days, a.granted_minutes, a.remaining_days, a.remaining_minutes,
	a.carry_forward, a.created_by, a.created_at, a.updated_at,
	c.unit, c.name AS category_name
`

func scanAllotment(row pgx.Row) (leave.Allotment, error) {
	var a leave.Allotment
	var r allotmentRow
	var categoryName string

	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.CategoryID,
		&r.grantedDays, &r.grantedMinutes, &r.remainingDays, &r.remainingMinutes,
		&a.CarryForward, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		&r.unit, &categoryName,
	)
	if err != nil {
		return leave.Allotment{}, err
	}

	a.Granted, a.Remaining = r.amounts()
	a.CategoryName = &categoryName
	return a, nil
}

// Create implements leave.AllotmentRepository. The unique constraint on
// (employee_id, category_id) enforces the single-allotment invariant.
func (r *allotmentRepositoryImpl) Create(ctx context.Context, a leave.Allotment) (leave.Allotment, error) {
	q := GetQuerier(ctx, r.db)
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO leave_allotments (
			id, employee_id, category_id,
			granted_days, granted_minutes, remaining_days, remaining_minutes,
			carry_forward, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.CategoryID,
		a.Granted.Days, a.Granted.TotalMinutes(),
		a.Remaining.Days, a.Remaining.TotalMinutes(),
		a.CarryForward, a.CreatedBy,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return leave.Allotment{}, leave.ErrDuplicateAllotment
		}
		return leave.Allotment{}, err
	}

	return a, nil
}

// GetByID implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Allotment, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + allotmentColumns + `
		FROM leave_allotments a
		JOIN leave_categories c ON a.category_id = c.id
		WHERE a.id = $1
	`

	a, err := scanAllotment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Allotment{}, leave.ErrAllotmentNotFound
		}
		return leave.Allotment{}, err
	}
	return a, nil
}

// GetByEmployeeAndCategory implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) GetByEmployeeAndCategory(ctx context.Context, employeeID, categoryID string) (leave.Allotment, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + allotmentColumns + `
		FROM leave_allotments a
		JOIN leave_categories c ON a.category_id = c.id
		WHERE a.employee_id = $1 AND a.category_id = $2
	`

	a, err := scanAllotment(q.QueryRow(ctx, query, employeeID, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Allotment{}, leave.ErrNotAllotted
		}
		return leave.Allotment{}, err
	}
	return a, nil
}

func (r *allotmentRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.Allotment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allotments := make([]leave.Allotment, 0)
	for rows.Next() {
		a, err := scanAllotment(rows)
		if err != nil {
			return nil, err
		}
		allotments = append(allotments, a)
	}
	return allotments, nil
}

// ListByEmployee implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Allotment, error) {
	query := `
		SELECT ` + allotmentColumns + `
		FROM leave_allotments a
		JOIN leave_categories c ON a.category_id = c.id
		WHERE a.employee_id = $1
		ORDER BY c.name
	`
	return r.list(ctx, query, employeeID)
}

// ListAll implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) ListAll(ctx context.Context) ([]leave.Allotment, error) {
	query := `
		SELECT ` + allotmentColumns + `
		FROM leave_allotments a
		JOIN leave_categories c ON a.category_id = c.id
		ORDER BY a.employee_id, c.name
	`
	return r.list(ctx, query)
}

// Update implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) Update(ctx context.Context, a leave.Allotment) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_allotments
		SET category_id = $2,
			granted_days = $3, granted_minutes = $4,
			carry_forward = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		a.ID, a.CategoryID,
		a.Granted.Days, a.Granted.TotalMinutes(),
		a.CarryForward,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.ErrDuplicateAllotment
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAllotmentNotFound
	}
	return nil
}

// UpdateRemaining implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) UpdateRemaining(ctx context.Context, allotmentID string, remaining leave.Amount) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_allotments
		SET remaining_days = $2, remaining_minutes = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, allotmentID, remaining.Days, remaining.TotalMinutes())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAllotmentNotFound
	}
	return nil
}

// Delete implements leave.AllotmentRepository.
func (r *allotmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_allotments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAllotmentNotFound
	}
	return nil
}
