package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	for name, tc := range map[string]struct {
		debug     bool
		wantDebug bool
	}{
		"info":  {},
		"debug": {debug: true, wantDebug: true},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")
			var buf bytes.Buffer
			log := New(&buf, tc.debug)
			log.Debug().Msg("command line")
			log.Info().Msg("compiling")

			out := buf.String()
			if !strings.Contains(out, "compiling") {
				t.Errorf("info message missing: %q", out)
			}
			if got := strings.Contains(out, "command line"); got != tc.wantDebug {
				t.Errorf("debug message present: want %v, got %v (%q)", tc.wantDebug, got, out)
			}
		})
	}
}

func TestNewNoColor(t *testing.T) {
	for name, tc := range map[string]struct {
		noColor   string
		wantColor bool
	}{
		"unset":     {wantColor: true},
		"set":       {noColor: "1", wantColor: false},
		"any value": {noColor: "yes", wantColor: false},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tc.noColor)
			var buf bytes.Buffer
			log := New(&buf, false)
			log.Info().Msg("compiling")

			if got := strings.Contains(buf.String(), "\x1b["); got != tc.wantColor {
				t.Errorf("colored output: want %v, got %v (%q)", tc.wantColor, got, buf.String())
			}
		})
	}
}
