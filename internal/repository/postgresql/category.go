package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
)

type categoryRepositoryImpl struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) category.CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create implements category.CategoryRepository.
func (r *categoryRepositoryImpl) Create(ctx context.Context, c category.LeaveCategory) (category.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO leave_categories (id, name, unit, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.ID, c.Name, string(c.Unit), c.IsActive).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return category.LeaveCategory{}, category.ErrCategoryExists
		}
		return category.LeaveCategory{}, err
	}

	return c, nil
}

// GetByID implements category.CategoryRepository.
func (r *categoryRepositoryImpl) GetByID(ctx context.Context, id string) (category.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, unit, is_active, created_at, updated_at
		FROM leave_categories
		WHERE id = $1
	`

	var c category.LeaveCategory
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Unit, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.LeaveCategory{}, category.ErrCategoryNotFound
		}
		return category.LeaveCategory{}, err
	}
	return c, nil
}

// GetByName implements category.CategoryRepository.
func (r *categoryRepositoryImpl) GetByName(ctx context.Context, name string) (category.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, unit, is_active, created_at, updated_at
		FROM leave_categories
		WHERE name = $1
	`

	var c category.LeaveCategory
	err := q.QueryRow(ctx, query, name).Scan(
		&c.ID, &c.Name, &c.Unit, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.LeaveCategory{}, category.ErrCategoryNotFound
		}
		return category.LeaveCategory{}, err
	}
	return c, nil
}

// List implements category.CategoryRepository.
func (r *categoryRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]category.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, unit, is_active, created_at, updated_at
		FROM leave_categories
		WHERE ($1 = false OR is_active = true)
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]category.LeaveCategory, 0)
	for rows.Next() {
		var c category.LeaveCategory
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Unit, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, nil
}

// Update implements category.CategoryRepository.
func (r *categoryRepositoryImpl) Update(ctx context.Context, c category.LeaveCategory) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_categories
		SET name = $2, is_active = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, c.ID, c.Name, c.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Delete implements category.CategoryRepository.
func (r *categoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// IsReferenced implements category.CategoryRepository.
func (r *categoryRepositoryImpl) IsReferenced(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var referenced bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM leave_allotments WHERE category_id = $1)`, id,
	).Scan(&referenced)
	if err != nil {
		return false, err
	}
	return referenced, nil
}
