package gfx

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.FieldLogger]

func init() {
	SetLogger(nil)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger installs the sink for progress and diagnostic lines. By default
// nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Info: one line per initialisation step
//   - Warn/Error: validation layer messages
//   - Debug: frame statistics and resource release
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger()
	}
	loggerPtr.Store(&l)
}

// Logger returns the current sink.
func Logger() logrus.FieldLogger {
	return *loggerPtr.Load()
}
