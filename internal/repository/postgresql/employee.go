package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/employee"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, email, display_code, clock_in_threshold,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.Email, &e.DisplayCode, &e.ClockInThreshold,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// ListApprovers implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListApprovers(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE role IN ('hr', 'admin')
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListWithoutDisplayCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListWithoutDisplayCode(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE display_code IS NULL
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// MaxDisplayCodeSeq implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) MaxDisplayCodeSeq(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT COALESCE(MAX(REPLACE(display_code, '-', '')::int), 0)
		FROM employees
		WHERE display_code IS NOT NULL
	`

	var seq int
	if err := q.QueryRow(ctx, query).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// SetDisplayCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetDisplayCode(ctx context.Context, employeeID, code string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET display_code = $2, updated_at = NOW()
		WHERE id = $1 AND display_code IS NULL
	`

	tag, err := q.Exec(ctx, query, employeeID, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}
