package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// LogError logs msg at error level with err attached under "error".
func LogError(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	entry := logger.WithFields(withFields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

// LogWarn is LogError at warn level, for failures the request survives.
func LogWarn(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	entry := logger.WithFields(withFields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}

func LogInfo(logger logrus.FieldLogger, msg string, fields logrus.Fields) {
	logger.WithFields(withFields(fields)).Info(msg)
}

func withFields(fields logrus.Fields) logrus.Fields {
	if fields == nil {
		return logrus.Fields{}
	}
	return fields
}
