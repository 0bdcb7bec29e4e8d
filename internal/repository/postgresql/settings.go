package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/settings"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.Repository.
func (r *settingsRepositoryImpl) Get(ctx context.Context, key string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", settings.ErrSettingNotFound
		}
		return "", err
	}
	return value, nil
}

// Set implements settings.Repository.
func (r *settingsRepositoryImpl) Set(ctx context.Context, key, value string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, key, value)
	return err
}
