// Package log implements glwrap's format for logging different types of logs.
// It extends the standard library logger with labeled levels: info, warning,
// debug, fatal and performance. Every level discards its output until a
// writer is set.
package log

import (
	"fmt"
	"io"
	"log"
)

// The prefix labels for each of the loggers
const (
	infoLabel  = "INFO"
	warnLabel  = "WARN"
	debugLabel = "DBUG"
	fatalLabel = "FATL"
	perfLabel  = "PERF"
)

// ANSI foreground text color codes
const (
	brightRed     = "91"
	brightGreen   = "92"
	brightYellow  = "93"
	brightMagenta = "95"
	brightWhite   = "97"
)

var (
	info  = log.New(io.Discard, infoLabel+" ", log.LstdFlags)
	warn  = log.New(io.Discard, warnLabel+" ", log.LstdFlags)
	debug = log.New(io.Discard, debugLabel+" ", log.LstdFlags|log.Lshortfile)
	fatal = log.New(io.Discard, fatalLabel+" ", log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	perf  = log.New(io.Discard, perfLabel+" ", log.LstdFlags|log.Lmicroseconds)
)

// SetColorized toggles ANSI colors on the level labels.
func SetColorized(toggle bool) {
	setColorized(toggle, info, brightWhite, infoLabel)
	setColorized(toggle, warn, brightYellow, warnLabel)
	setColorized(toggle, debug, brightMagenta, debugLabel)
	setColorized(toggle, fatal, brightRed, fatalLabel)
	setColorized(toggle, perf, brightGreen, perfLabel)
}

func setColorized(toggle bool, l *log.Logger, color, label string) {
	if !toggle {
		l.SetPrefix(label + " ")
		return
	}
	prefix := fmt.Sprintf("\033[%vm%v\033[0m ", color, label)
	l.SetPrefix(prefix)
}

// SetOutput sets the output destination of every level at once.
func SetOutput(out io.Writer) {
	for _, l := range []*log.Logger{info, warn, debug, fatal, perf} {
		l.SetOutput(out)
	}
}

// ConstErr is an error that can be declared as a constant.
type ConstErr string

func (e ConstErr) Error() string {
	return string(e)
}
