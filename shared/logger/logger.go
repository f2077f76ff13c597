// Package logger configures the application-wide logrus instance with file
// rotation alongside stdout.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger for the given environment. Production gets JSON output
// and a rotated log file; everything else logs human-readable text to stdout
// only.
func New(environment string) *logrus.Logger {
	log := logrus.New()

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   "logs/app.log",
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}))
		return log
	}

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(os.Stdout)
	return log
}
