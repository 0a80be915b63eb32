package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackb/groovy-build/pkg/procutil"
)

// New returns a console logger writing to w, colored unless NO_COLOR is
// set.  Debug output (command lines, request dumps) is only emitted when
// debug is set.
func New(w io.Writer, debug bool) zerolog.Logger {
	noColor, _ := procutil.LookupEnv(procutil.NoColor)
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor != "",
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that drops everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
