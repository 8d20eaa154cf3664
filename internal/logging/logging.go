// Package logging holds the logger shared by all packages of this module.
package logging

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var current atomic.Pointer[logrus.Logger]

func init() {
	current.Store(newLogger())
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Logger returns the logger used for all diagnostics. It logs at warning
// level unless replaced with Set.
func Logger() *logrus.Logger {
	return current.Load()
}

// Set replaces the shared logger. Passing nil restores the default. It is
// safe to call while other goroutines are logging.
func Set(l *logrus.Logger) {
	if l == nil {
		l = newLogger()
	}
	current.Store(l)
}
