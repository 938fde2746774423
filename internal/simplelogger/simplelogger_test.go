package simplelogger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_WritesAndAppends(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "textdiffy.log"))

	Log("hello %s", "world")
	Log(" %d", 123)

	b, err := os.ReadFile(os.Getenv(EnvVar))
	require.NoError(t, err)
	require.Equal(t, "hello world\n 123\n", string(b))
}

func TestLog_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvVar, "")
	Log("should not %s", "panic")
}

func TestLog_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, dir)

	Log("ignored %d", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestNew_WritesStructuredRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textdiffy.log")
	t.Setenv(EnvVar, path)

	logger := New("cli")
	logger.Info("built diff", "entries", 3, "granularity", "word")
	logger.Debug("detail")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `level=INFO msg="built diff" component=cli entries=3 granularity=word`)
	assert.Contains(t, out, `level=DEBUG msg=detail component=cli`)
}

func TestNew_DiscardsWhenUnset(t *testing.T) {
	t.Setenv(EnvVar, "")
	logger := New("tui")
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
}
