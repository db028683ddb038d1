package logging

import (
	"os"

	"github.com/juanbracho/girasoulresale/internal/config"

	"github.com/sirupsen/logrus"
)

var logg = logrus.New()

// Setup configures the shared logger from config. Safe to call once at
// startup; before that the logger runs with logrus defaults.
func Setup(cfg config.LogConfig) *logrus.Logger {
	if cfg.JSON {
		logg.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logg.SetLevel(level)
	logg.SetOutput(os.Stdout)
	return logg
}

// L returns the shared logger.
func L() *logrus.Logger {
	return logg
}

// LogError records a service-level error with module and function context.
func LogError(module, funcName string, err error, fields logrus.Fields) {
	entry := logg.WithFields(logrus.Fields{
		"module":   module,
		"funcName": funcName,
	})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Error(err.Error())
}
