package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Prefix tags every log line of the tool
const Prefix = "MICROC"

// Init installs the process-wide logger on stderr
func Init(verbose, noColor bool) {
	Setup(os.Stderr, verbose, noColor)
}

// Setup installs the process-wide logger on w. Without verbose only
// warnings and errors get through.
func Setup(w io.Writer, verbose, noColor bool) {
	log.SetDefault(log.NewWithOptions(w,
		log.Options{
			ReportCaller:    true,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          Prefix,
		}))

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
