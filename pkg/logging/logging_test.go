package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv(EnvLogFile, "")
			t.Setenv("XDG_STATE_HOME", tempDir)

			var console bytes.Buffer
			setup(&console, tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			_, err := os.Stat(filepath.Join(tempDir, "modresolve", "modresolve.log"))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupWritesBothOutputs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	t.Setenv(EnvLogFile, logPath)
	prev := log.Logger
	defer func() { log.Logger = prev }()

	var console bytes.Buffer
	setup(&console, 1)
	logger := GetLogger("install")
	logger.Info().Msg("copied mod")

	assert.Contains(t, console.String(), "copied mod")
	assert.NotContains(t, console.String(), "\x1b[", "buffers get no color")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"install"`)
}

func TestLogFilePath(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		t.Setenv(EnvLogFile, "/tmp/mr.log")
		assert.Equal(t, "/tmp/mr.log", LogFilePath())
	})

	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(EnvLogFile, "")
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "modresolve", "modresolve.log"), LogFilePath())
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv(EnvLogFile, "")
		t.Setenv("XDG_STATE_HOME", "")
		got := filepath.ToSlash(LogFilePath())
		assert.Contains(t, got, ".local/state/modresolve/modresolve.log")
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := GetLogger("resolve")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"resolve"`)
	assert.Contains(t, buf.String(), "test message")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "patch")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
