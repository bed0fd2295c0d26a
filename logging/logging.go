package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// Log is the default logger for the application.
	Log = logrus.New()
)

// Init configures Log with the given level and output format ("text" or
// "json"). An empty format selects text.
func Init(level, format string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	var formatter logrus.Formatter
	switch format {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	Log.SetLevel(logLevel)
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(formatter)
	return nil
}
