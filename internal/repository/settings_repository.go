package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

// SettingsRepository stores keyed JSON configuration documents.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*domain.Settings, error) {
	const query = `SELECT key, value, updated_at FROM settings WHERE key=$1`

	var settings domain.Settings
	if err := r.pool.QueryRow(ctx, query, key).Scan(
		&settings.Key,
		&settings.Value,
		&settings.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	const query = `
        INSERT INTO settings (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query, settings.Key, settings.Value).Scan(&settings.UpdatedAt)
}
