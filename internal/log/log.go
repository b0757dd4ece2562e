// ABOUTME: Process-wide structured logger built on logrus
// ABOUTME: Level comes from SAMPLEFLOW_DEBUG or an explicit SetLevel call
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

var std = logrus.New()

func init() {
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug, err := strconv.ParseBool(os.Getenv("SAMPLEFLOW_DEBUG")); err == nil && debug {
		std.SetLevel(logrus.DebugLevel)
	}
}

// SetLevel parses a level name ("debug", "info", "warn", ...) and applies it.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// WithComponent returns an entry tagged with the component name.
func WithComponent(name string) *logrus.Entry {
	return std.WithField("component", name)
}
