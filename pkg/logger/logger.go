package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init so that
// packages and tests can log without setup.
var Log = logrus.New()

// Init configures the global logger from the environment.
// Call it once from main before anything else logs.
func Init() {
	// Level from LOG_LEVEL, "info" when unset or unparsable.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" for collected logs, text otherwise.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// The window and terminal frontends own stdout, so logs go to stderr
	// unless LOG_FILE points somewhere else.
	Log.SetOutput(os.Stderr)
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Log.WithError(err).Warn("cannot open LOG_FILE, logging to stderr")
			return
		}
		Log.SetOutput(f)
	}
}
