package repository

import (
	"context"
	"database/sql"
)

type QueryI interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Repository struct {
	*KeyValueR
}

func NewRepository(db QueryI) Repository {
	return Repository{
		KeyValueR: NewKeyValueRepository(db),
	}
}
