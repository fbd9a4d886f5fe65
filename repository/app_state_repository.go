package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type appStateRepository struct {
	db     DB
	logger *slog.Logger
}

// NewAppStateRepository creates the pgx-backed key/value state store.
func NewAppStateRepository(db DB, logger *slog.Logger) AppStateRepository {
	return &appStateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *appStateRepository) Get(ctx context.Context, key string) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("database connection is nil")
	}

	var value string

	err := r.db.QueryRow(ctx, `SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("failed to read app state %s: %w", key, err)
	}

	return value, nil
}

func (r *appStateRepository) Set(ctx context.Context, key, value string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO app_state (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to write app state", "error", err, "key", key)
		return fmt.Errorf("failed to write app state %s: %w", key, err)
	}

	return nil
}
