package solver

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/gitrdm/printemps/pkg/config"
)

// Logger is the leveled console logger of SPEC_FULL.md's (ambient) Logging
// section: one threshold (config.VerboseLevel) gates four message kinds,
// colored the way kanso-lang's CLI colors its own diagnostics (yellow for
// warnings, cyan for outer-loop messages, faint for inner-loop messages,
// plain for full detail) rather than through a generic logging framework.
type Logger struct {
	level config.VerboseLevel
	out   io.Writer
}

// NewLogger returns a Logger writing to os.Stdout at the given threshold.
func NewLogger(level config.VerboseLevel) *Logger {
	return &Logger{level: level, out: os.Stdout}
}

// Warning prints at VerboseWarning and above: corrected initial values,
// redundant-constraint removals, variable fixings (§7's non-fatal
// warnings).
func (l *Logger) Warning(format string, args ...interface{}) {
	if l.level < config.VerboseWarning {
		return
	}
	fmt.Fprintln(l.out, color.YellowString(format, args...))
}

// Outer prints once per outer-loop iteration at VerboseOuter and above.
func (l *Logger) Outer(format string, args ...interface{}) {
	if l.level < config.VerboseOuter {
		return
	}
	fmt.Fprintln(l.out, color.CyanString(format, args...))
}

// Inner prints per-move detail at VerboseInner and above.
func (l *Logger) Inner(format string, args ...interface{}) {
	if l.level < config.VerboseInner {
		return
	}
	fmt.Fprintln(l.out, color.New(color.Faint).Sprintf(format, args...))
}

// Full prints everything else (move-by-move deltas, penalty updates) at
// VerboseFull only.
func (l *Logger) Full(format string, args ...interface{}) {
	if l.level < config.VerboseFull {
		return
	}
	fmt.Fprintln(l.out, fmt.Sprintf(format, args...))
}
