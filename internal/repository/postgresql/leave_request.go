package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const requestColumns = `
	r.id, r.employee_id, r.category_id,
	r.amount_days, r.amount_minutes,
	r.start_date, r.end_date, r.half_day, r.short_start, r.short_end,
	r.reason, r.source, r.status,
	r.approver_id, r.approved_at, r.rejection_reason,
	r.created_at, r.updated_at,
	c.unit, c.name AS category_name
`

func scanRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	var amountDays decimal.Decimal
	var amountMinutes int
	var unit string
	var categoryName string

	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.CategoryID,
		&amountDays, &amountMinutes,
		&lr.StartDate, &lr.EndDate, &lr.HalfDay, &lr.ShortStart, &lr.ShortEnd,
		&lr.Reason, &lr.Source, &lr.Status,
		&lr.ApproverID, &lr.ApprovedAt, &lr.RejectionReason,
		&lr.CreatedAt, &lr.UpdatedAt,
		&unit, &categoryName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	lr.CategoryUnit = category.Unit(unit)
	if lr.CategoryUnit == category.UnitHoursMinutes {
		lr.Amount = leave.FromMinutes(amountMinutes)
	} else {
		lr.Amount = leave.Days(amountDays)
	}
	lr.CategoryName = &categoryName
	return lr, nil
}

// Create implements leave.LeaveRequestRepository. The partial unique index
// on (employee_id, category_id, start_date) WHERE source = 'system' is the
// authoritative idempotency gate for penalty deductions.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	if lr.ID == "" {
		lr.ID = uuid.New().String()
	}
	query := `
		INSERT INTO leave_requests (
			id, employee_id, category_id,
			amount_days, amount_minutes,
			start_date, end_date, half_day, short_start, short_end,
			reason, source, status,
			approver_id, approved_at, rejection_reason,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lr.ID, lr.EmployeeID, lr.CategoryID,
		lr.Amount.Days, lr.Amount.TotalMinutes(),
		lr.StartDate, lr.EndDate, string(lr.HalfDay), lr.ShortStart, lr.ShortEnd,
		lr.Reason, string(lr.Source), string(lr.Status),
		lr.ApproverID, lr.ApprovedAt, lr.RejectionReason,
	).Scan(&lr.CreatedAt, &lr.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveRequest{}, leave.ErrDuplicateDeduction
		}
		return leave.LeaveRequest{}, err
	}

	return lr, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		JOIN leave_categories c ON r.category_id = c.id
		WHERE r.id = $1
	`

	lr, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		JOIN leave_categories c ON r.category_id = c.id
		WHERE r.employee_id = $1
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, employeeID)
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		JOIN leave_categories c ON r.category_id = c.id
		WHERE ($1 = '' OR r.status = $1)
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, string(status))
}

// ListApprovedByPair implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedByPair(ctx context.Context, employeeID, categoryID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		JOIN leave_categories c ON r.category_id = c.id
		WHERE r.employee_id = $1 AND r.category_id = $2 AND r.status = 'approved'
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, employeeID, categoryID)
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, lr leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET status = $2, approver_id = $3, approved_at = $4,
			rejection_reason = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		lr.ID, string(lr.Status), lr.ApproverID, lr.ApprovedAt, lr.RejectionReason,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// SumApproved implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApproved(ctx context.Context, employeeID, categoryID, excludeRequestID string) (leave.AmountTotals, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT COALESCE(SUM(amount_days), 0), COALESCE(SUM(amount_minutes), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND category_id = $2 AND status = 'approved'
		AND ($3 = '' OR id <> $3)
	`

	var totals leave.AmountTotals
	err := q.QueryRow(ctx, query, employeeID, categoryID, excludeRequestID).
		Scan(&totals.Days, &totals.Minutes)
	if err != nil {
		return leave.AmountTotals{}, err
	}
	return totals, nil
}

// HasSystemDeductionOn implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasSystemDeductionOn(ctx context.Context, employeeID, categoryID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND category_id = $2
			AND source = 'system' AND start_date = $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, categoryID, day).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
