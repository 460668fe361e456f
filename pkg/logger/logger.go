// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Configure sets level and formatter of the standard logrus logger for env:
// human-readable debug output in development, JSON at info level otherwise.
func Configure(out io.Writer, appName, env string) *log.Logger {
	l := log.StandardLogger()
	l.SetOutput(out)
	if env == "development" {
		l.SetLevel(log.DebugLevel)
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		l.SetLevel(log.InfoLevel)
		l.SetFormatter(&log.JSONFormatter{})
	}
	l.WithFields(log.Fields{"app": appName, "env": env}).Debug("logger initialized")
	return l
}
