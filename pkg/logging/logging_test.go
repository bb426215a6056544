package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppLogger(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewAppLoggerWriter(&buf, LogLevelWarn)

		l.Info("hidden")
		l.Warn("shown", "key", "value")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "warn: shown key=value")
	})

	t.Run("quotes values with spaces", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewAppLoggerWriter(&buf, LogLevelDebug)

		l.Debug("signed in", "name", "Rahim Ahmed")

		assert.Contains(t, buf.String(), `name="Rahim Ahmed"`)
	})

	t.Run("with adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewAppLoggerWriter(&buf, LogLevelInfo).With("component", "session")

		l.Info("restored", "user", "admin")

		assert.Contains(t, buf.String(), "component=session user=admin")
	})
}

func TestAccessLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewAccessLoggerWriter(&buf)

	l.LogAuth("SIGNIN", "admin", "success", "role", "admin")
	l.LogNavigation("admin-buses", "student1", "redirect_unauthorized")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "op=SIGNIN user=admin status=success role=admin")
	assert.Contains(t, lines[1], "op=NAVIGATE screen=admin-buses user=student1 decision=redirect_unauthorized")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestRotatingWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingWriter(path, 64, time.Hour)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte(strings.Repeat("a", 40)))
	require.NoError(t, err)
	_, err = w.Write([]byte(strings.Repeat("b", 40)))
	require.NoError(t, err)

	archived, err := os.ReadDir(filepath.Join(dir, archiveDirName))
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("b", 40), string(current))
}
