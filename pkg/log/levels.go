package log

import (
	"fmt"
	"io"
	"os"
)

// exit is swapped out by tests.
var exit = os.Exit

// Info prints to the info logger in the manner of fmt.Print.
func Info(v ...interface{}) {
	_ = info.Output(2, fmt.Sprint(v...))
}

// Infof prints to the info logger in the manner of fmt.Printf.
func Infof(format string, v ...interface{}) {
	_ = info.Output(2, fmt.Sprintf(format, v...))
}

// SetInfoOutput sets the output destination for the info logger.
func SetInfoOutput(out io.Writer) {
	info.SetOutput(out)
}

// Warn prints to the warning logger in the manner of fmt.Print.
func Warn(v ...interface{}) {
	_ = warn.Output(2, fmt.Sprint(v...))
}

// Warnf prints to the warning logger in the manner of fmt.Printf.
func Warnf(format string, v ...interface{}) {
	_ = warn.Output(2, fmt.Sprintf(format, v...))
}

// SetWarnOutput sets the output destination for the warning logger.
func SetWarnOutput(out io.Writer) {
	warn.SetOutput(out)
}

// Debug prints to the debug logger in the manner of fmt.Print.
func Debug(v ...interface{}) {
	_ = debug.Output(2, fmt.Sprint(v...))
}

// Debugf prints to the debug logger in the manner of fmt.Printf.
func Debugf(format string, v ...interface{}) {
	_ = debug.Output(2, fmt.Sprintf(format, v...))
}

// SetDebugOutput sets the output destination for the debug logger.
func SetDebugOutput(out io.Writer) {
	debug.SetOutput(out)
}

// Perf prints to the performance logger in the manner of fmt.Print.
func Perf(v ...interface{}) {
	_ = perf.Output(2, fmt.Sprint(v...))
}

// Perff prints to the performance logger in the manner of fmt.Printf.
func Perff(format string, v ...interface{}) {
	_ = perf.Output(2, fmt.Sprintf(format, v...))
}

// SetPerfOutput sets the output destination for the performance logger.
func SetPerfOutput(out io.Writer) {
	perf.SetOutput(out)
}

// Fatal prints to the fatal logger and exits with status 1.
func Fatal(v ...interface{}) {
	_ = fatal.Output(2, fmt.Sprint(v...))
	exit(1)
}

// Fatalf prints to the fatal logger in the manner of fmt.Printf and exits
// with status 1.
func Fatalf(format string, v ...interface{}) {
	_ = fatal.Output(2, fmt.Sprintf(format, v...))
	exit(1)
}

// SetFatalOutput sets the output destination for the fatal logger.
func SetFatalOutput(out io.Writer) {
	fatal.SetOutput(out)
}
