// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// Setup sets the standard logger's level, formatter and output.
// Level values are logrus names ("debug", "info", "warn", ...); anything
// unparsable falls back to info. Format is "text" (default) or "json".
func Setup(level, format string, out io.Writer) {
	if strings.ToLower(format) == "json" {
		logger.SetFormatter(&logger.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	}
	if out != nil {
		logger.SetOutput(out)
	}
	logger.SetLevel(ParseLevel(level))
}

func ParseLevel(level string) logger.Level {
	lvl, err := logger.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logger.InfoLevel
	}
	return lvl
}
