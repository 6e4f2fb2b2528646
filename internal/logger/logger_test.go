package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "seventy.log")

	l, err := New(path, "debug")
	require.NoError(t, err)
	l.Info("entry saved")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"entry saved"`))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}

func TestNewOrNopNeverNil(t *testing.T) {
	l := NewOrNop(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.NotNil(t, l)
	l.Info("discarded")
}
