// Package log provides the logger used throughout the emulator.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface accepted by every component.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing to stderr at info level.
func New() Logger {
	return NewWithOutput(os.Stderr, logrus.InfoLevel)
}

// NewWithOutput returns a Logger writing to w at the given level.
func NewWithOutput(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel parses a level name such as "debug" or "info".
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}
