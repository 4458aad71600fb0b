package logger_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	l, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.With(logger.String("group", "example.se")).Info("page analyzed",
		logger.Int("issues", 3),
		logger.Bool("statement", true),
		logger.Error(errors.New("boom")),
	)
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"page analyzed"`)
	assert.Contains(t, string(data), `"group":"example.se"`)
	assert.Contains(t, string(data), `"issues":3`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	l, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNop_IsUsable(t *testing.T) {
	l := logger.NewNop()
	l.Debug("debug")
	l.With(logger.String("k", "v")).Error("error")
	assert.NoError(t, l.Sync())
}
