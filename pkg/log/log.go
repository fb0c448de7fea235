// Package log provides the Logger interface used throughout the module,
// backed by logrus the way internal/mmu configured it directly in the
// teacher codebase.
package log

import "github.com/sirupsen/logrus"

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger backed by a freshly configured logrus.Logger.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{})  { l.l.Infof(format, args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.l.Warnf(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.l.Errorf(format, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.l.Debugf(format, args...) }
