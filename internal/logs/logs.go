// Package logs is the process-wide logging facade. Commands log through the
// package-level helpers; machine-readable output never goes through here.
package logs

import (
	"os"
	"sync"

	"github.com/rockplan/rockplan/internal/ui"
)

var (
	initOnce sync.Once
	logger   *ui.Logger
)

func Init() {
	initOnce.Do(func() {
		logger = ui.New(ui.Options{
			Out:      os.Stderr,
			LogLevel: ui.LogLevelWarn,
		})
	})
}

func L() *ui.Logger {
	Init()
	return logger
}

func SetComponent(component string) {
	L().SetComponent(component)
}

// SetDebugVerbosity maps the -v counter onto log levels.
func SetDebugVerbosity(cnt int) {
	switch {
	case cnt <= 0:
		L().SetLogLevel(ui.LogLevelWarn)
	case cnt == 1:
		L().SetLogLevel(ui.LogLevelInfo)
	default:
		L().SetLogLevel(ui.LogLevelDebug)
	}
}

func Banner(title string) {
	L().Banner(title)
}

func Spacer() {
	L().Spacer()
}

func Infof(format string, args ...any) {
	L().Info(format, args...)
}

func Debugf(format string, args ...any) {
	L().Debug(format, args...)
}

func Warnf(format string, args ...any) {
	L().Warn(format, args...)
}

func Errorf(format string, args ...any) {
	L().Error(format, args...)
}
