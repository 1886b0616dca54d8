// Package logger provides the leveled, colored console logger used across the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/sma-maze/config"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006/01/02 15:04:05"

var ErrEmptyPrefix = errors.New("logger prefix must not be empty")

var levelColors = map[logrus.Level]string{
	logrus.InfoLevel:  config.ColorGreen,
	logrus.WarnLevel:  config.ColorYellow,
	logrus.ErrorLevel: config.ColorRed,
}

// Logger writes lines as "[PREFIX] [LEVEL] message" with the prefix in its own color.
type Logger struct {
	out *logrus.Logger
}

// New creates a Logger writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	out := logrus.New()
	out.SetOutput(w)
	out.SetLevel(logrus.InfoLevel)
	out.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	return &Logger{out: out}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Info(msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Warn(msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Error(msg)
}

type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return fmt.Appendf(nil, "%s %s[%s]%s %s[%s]%s %s\n",
		e.Time.Format(timeLayout),
		f.color, f.prefix, config.ColorReset,
		levelColors[e.Level], strings.ToUpper(e.Level.String()), config.ColorReset,
		e.Message), nil
}
