package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the global logrus logger. Diagnostics always go to
// stderr; when logFile is non-empty they are additionally written to a
// rotating file. Stdout stays reserved for result lines.
func Setup(level, logFile string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	out := io.Writer(os.Stderr)
	if logFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	logrus.SetOutput(out)
}
