package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Setup configures the global charm logger. Unknown level names fall back
// to warn, which is what a non-debug run uses.
func Setup(level string, timestamps bool) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetReportTimestamp(timestamps)
	return lvl
}
