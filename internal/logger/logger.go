package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/wealthtrack-backend/internal/config"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the standard logrus logger and returns it
func Init(cfg config.LoggerConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	Configure(log, cfg, os.Stdout)
	return log
}

// Configure applies level and format to log, writing to out
func Configure(log *logrus.Logger, cfg config.LoggerConfig, out io.Writer) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	default:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	}

	log.SetOutput(out)
}
