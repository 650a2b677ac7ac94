package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RyoWakabayashi/pm-study/internal/storage"
	"github.com/lib/pq"
)

// Postgres raises disk_full when the tablespace runs out of room.
const pqDiskFull = "53100"

type KeyValueR struct {
	db QueryI
}

func NewKeyValueRepository(db QueryI) *KeyValueR {
	return &KeyValueR{db: db}
}

func (k *KeyValueR) Migrate(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS key_value_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	if _, err := k.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create key_value_store: %w", err)
	}
	return nil
}

func (k *KeyValueR) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM key_value_store WHERE key = $1`

	var value string
	err := k.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return []byte(value), nil
}

func (k *KeyValueR) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO key_value_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
		`

	_, err := k.db.ExecContext(ctx, query, key, string(value))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqDiskFull {
			return fmt.Errorf("%w: %v", storage.ErrQuotaExceeded, err)
		}
		return err
	}
	return nil
}

func (k *KeyValueR) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM key_value_store WHERE key = $1`

	_, err := k.db.ExecContext(ctx, query, key)
	return err
}
