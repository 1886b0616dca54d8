package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beka-birhanu/sma-maze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("SOLVER", config.ColorCyan, &buf)
	require.NoError(t, err)

	l.Info("solved maze")
	l.Warning("bound reached")
	l.Error("cache down")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], config.ColorCyan+"[SOLVER]"+config.ColorReset)
	assert.Contains(t, lines[0], "[INFO]"+config.ColorReset+" solved maze")
	assert.Contains(t, lines[1], "[WARNING]"+config.ColorReset+" bound reached")
	assert.Contains(t, lines[2], "[ERROR]"+config.ColorReset+" cache down")
}

func TestLoggerRequiresPrefix(t *testing.T) {
	_, err := New("", config.ColorCyan, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrEmptyPrefix)
}

func TestLoggerLineShape(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("APP", "", &buf)
	require.NoError(t, err)

	l.Info("ready")
	line := buf.String()

	assert.True(t, strings.HasSuffix(line, "[APP]"+config.ColorReset+" "+config.ColorGreen+"[INFO]"+config.ColorReset+" ready\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
}
