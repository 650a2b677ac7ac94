package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/RyoWakabayashi/pm-study/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "json"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images", "exam"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "json", "exam.json"), []byte(`[]`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "exam", "q01.png"), []byte{0x89}, 0o600))

	src := NewExamFile(dir)
	ctx := context.Background()

	data, err := src.FetchJSON(ctx, "json/exam.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = src.FetchJSON(ctx, "json/missing.json")
	require.ErrorIs(t, err, ErrNotFound)

	assert.True(t, src.ImageExists(ctx, "images/exam/q01.png"))
	assert.False(t, src.ImageExists(ctx, "images/exam/q02.png"))
	assert.False(t, src.ImageExists(ctx, "images/exam"))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.FetchJSON(canceled, "json/exam.json")
	require.ErrorIs(t, err, context.Canceled)
}

func TestInitSource(t *testing.T) {
	t.Parallel()

	src, err := InitSource(config.ExamDataConfig{Source: config.SourceHTTP, BaseURL: "http://localhost"})
	require.NoError(t, err)
	assert.IsType(t, &ExamHTTP{}, src)

	src, err = InitSource(config.ExamDataConfig{Source: config.SourceFile, Dir: "exam_data"})
	require.NoError(t, err)
	assert.IsType(t, &ExamFile{}, src)

	_, err = InitSource(config.ExamDataConfig{Source: "ftp"})
	require.Error(t, err)
}
