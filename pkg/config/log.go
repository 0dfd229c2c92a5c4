package config

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

var root = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		FullTimestamp:    true,
		CallerPrettyfier: shortCaller,
	},
	Hooks:        make(logrus.LevelHooks),
	Level:        logrus.InfoLevel,
	ReportCaller: true,
}

// NamedLogger creates named package logger. All named loggers share one
// output and level.
func NamedLogger(name string) *logrus.Entry {
	return root.WithField("pkg", name)
}

// SetLoggingLevel applies a level name to every named logger.
func SetLoggingLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	root.SetLevel(lvl)
	return nil
}

// shortCaller reports the call site as file:line without the function.
func shortCaller(f *runtime.Frame) (string, string) {
	return "", fmt.Sprintf("%s:%03d", path.Base(f.File), f.Line)
}
