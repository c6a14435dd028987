package logger

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture routes the global logger into a buffer at level until the test ends.
func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelWarn)
	})
	return &buf
}

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	Init(true)
	assert.Equal(t, LevelDebug, GetLevel())

	Init(false)
	assert.Equal(t, LevelWarn, GetLevel())
}

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		level Level
		name  string
		zl    zerolog.Level
	}{
		{LevelDebug, "DEBUG", zerolog.DebugLevel},
		{LevelInfo, "INFO", zerolog.InfoLevel},
		{LevelWarn, "WARN", zerolog.WarnLevel},
		{LevelError, "ERROR", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.level.String())
			assert.Equal(t, tt.zl, tt.level.zerologLevel())
		})
	}

	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestLevelFiltering(t *testing.T) {
	emit := map[Level]func(string, ...interface{}){
		LevelDebug: Debug,
		LevelInfo:  Info,
		LevelWarn:  Warn,
		LevelError: Error,
	}

	for _, threshold := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		t.Run(threshold.String(), func(t *testing.T) {
			buf := capture(t, threshold)
			for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
				buf.Reset()
				emit[level]("saving qibuild.xml")
				assert.Equal(t, level >= threshold, buf.Len() > 0, "%s at %s", level, threshold)
			}
		})
	}
}

func TestConsoleLineLayout(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("read %d bytes from %s", 42, "qibuild.xml")

	line := strings.TrimSpace(buf.String())
	fields := strings.Fields(line)
	require.GreaterOrEqual(t, len(fields), 3, line)
	assert.Equal(t, "[DEBUG]", fields[0], "level is rendered upper-case in brackets")
	_, err := time.Parse(timeFormat, fields[1]+" "+fields[2])
	assert.NoError(t, err, "timestamp follows %s: %s", timeFormat, line)
	assert.True(t, strings.HasSuffix(line, "read 42 bytes from qibuild.xml"), line)
	assert.NotContains(t, line, "\x1b[", "console output is uncolored")
}

func TestFieldsFollowMessageSorted(t *testing.T) {
	buf := capture(t, LevelDebug)

	DebugFields("parsed configuration", map[string]interface{}{
		"ides":    2,
		"configs": 1,
		"path":    "qibuild.xml",
	})

	line := strings.TrimSpace(buf.String())
	msg := strings.Index(line, "parsed configuration")
	configs := strings.Index(line, "configs=1")
	ides := strings.Index(line, "ides=2")
	path := strings.Index(line, "path=qibuild.xml")
	require.True(t, msg >= 0 && configs >= 0 && ides >= 0 && path >= 0, line)
	assert.Less(t, msg, configs, "fields come after the message")
	assert.Less(t, configs, ides)
	assert.Less(t, ides, path)
}

func TestFieldsVariants(t *testing.T) {
	buf := capture(t, LevelDebug)

	InfoFields("ide registered", map[string]interface{}{"name": "vim"})
	WarnFields("duplicate ide", map[string]interface{}{"name": "vim"})
	ErrorFields("save failed", map[string]interface{}{"name": "vim"})
	DebugFields("no fields", nil)

	got := lines(buf)
	require.Len(t, got, 4)
	assert.True(t, strings.HasPrefix(got[0], "[INFO]"), got[0])
	assert.True(t, strings.HasPrefix(got[1], "[WARN]"), got[1])
	assert.True(t, strings.HasPrefix(got[2], "[ERROR]"), got[2])
	for _, line := range got[:3] {
		assert.Contains(t, line, "name=vim")
	}
	assert.True(t, strings.HasSuffix(got[3], "no fields"), got[3])
}

func TestLogError(t *testing.T) {
	buf := capture(t, LevelError)

	LogError(nil, "nothing happened")
	assert.Zero(t, buf.Len(), "a nil error is not logged")

	LogError(errors.New("permission denied"), "failed to save configuration")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "[ERROR]"), line)
	assert.Contains(t, line, "failed to save configuration")
	assert.Contains(t, line, "permission denied")
}

func TestConcurrentLogging(t *testing.T) {
	buf := capture(t, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("update %d", n)
			InfoFields("update", map[string]interface{}{"n": n})
		}(i)
	}
	wg.Wait()

	got := lines(buf)
	assert.Len(t, got, 100)
	for _, line := range got {
		if !strings.HasPrefix(line, "[DEBUG]") && !strings.HasPrefix(line, "[INFO]") {
			t.Errorf("interleaved line: %q", line)
		}
	}
}

func TestSetOutputNilRestoresStderr(t *testing.T) {
	SetOutput(nil)

	std.mu.Lock()
	defer std.mu.Unlock()
	assert.Equal(t, os.Stderr, std.output)
}
