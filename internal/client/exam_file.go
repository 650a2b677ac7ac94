package client

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type ExamFile struct {
	dir string
}

func NewExamFile(dir string) *ExamFile {
	return &ExamFile{dir: dir}
}

func (e *ExamFile) FetchJSON(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(e.dir, filepath.FromSlash(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

func (e *ExamFile) ImageExists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(e.dir, filepath.FromSlash(path)))
	return err == nil && !info.IsDir()
}
