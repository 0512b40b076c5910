package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Components attach themselves via
// Component("reminder") and log through the returned entry.
var Log *logrus.Logger

// Init configures the shared structured logger. Level comes from LOG_LEVEL
// (debug/info/warn/error), defaulting to info.
func Init(service string) *logrus.Logger {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}

	serviceName = service
	return Log
}

// Component returns an entry tagged with the service and component name.
func Component(name string) *logrus.Entry {
	if Log == nil {
		Init("brf-backend")
	}
	return Log.WithFields(logrus.Fields{
		"service":   serviceName,
		"component": name,
	})
}

var serviceName string
