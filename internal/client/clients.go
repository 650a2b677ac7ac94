package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/RyoWakabayashi/pm-study/internal/config"
)

var ErrNotFound = errors.New("resource not found")

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

type Source interface {
	FetchJSON(ctx context.Context, path string) ([]byte, error)
	ImageExists(ctx context.Context, path string) bool
}

func InitSource(cfg config.ExamDataConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceHTTP:
		return NewExamHTTP(cfg.BaseURL), nil
	case config.SourceFile:
		return NewExamFile(cfg.Dir), nil
	default:
		return nil, fmt.Errorf("unknown exam data source: %q", cfg.Source)
	}
}
