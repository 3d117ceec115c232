package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// serviceHook stamps every entry with the service name as a structured
// field, so aggregated logs stay filterable.
type serviceHook struct {
	serviceName string
}

// Levels implements logrus.Hook interface.
func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.serviceName
	}
	return nil
}

func InitLogger(serviceName string) {
	Logger.SetOutput(os.Stdout)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	// LOG_FORMAT=json switches to machine-readable output for log shippers.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// Re-init replaces any prior hook instead of stacking a second one.
	Logger.ReplaceHooks(logrus.LevelHooks{})
	Logger.AddHook(&serviceHook{serviceName})
}
