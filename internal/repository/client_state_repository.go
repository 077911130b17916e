package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ClientStateRepository stores opaque per-key client state blobs, such as the
// preferences store's persisted projection.
type ClientStateRepository struct {
	db *sql.DB
}

func NewClientStateRepository(db *sql.DB) *ClientStateRepository {
	return &ClientStateRepository{db: db}
}

func (r *ClientStateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT value FROM client_state WHERE key = ?`,
		key,
	)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client state %s: %w", key, err)
	}
	return value, nil
}

func (r *ClientStateRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO client_state (key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set client state %s: %w", key, err)
	}
	return nil
}

func (r *ClientStateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete client state %s: %w", key, err)
	}
	return nil
}
