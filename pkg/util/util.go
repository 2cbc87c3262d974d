package util

import (
	"fmt"
	"time"

	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/perf"
)

// ErrNoFileChosen indicates that the user closed a file dialog without
// picking anything.
const ErrNoFileChosen log.ConstErr = "no file chosen"

// StopWatch is a time.Time with a stopping methods
type StopWatch struct {
	t time.Time
}

// Start returns a newly started stopwatch
func Start() StopWatch {
	return StopWatch{time.Now()}
}

// Stop prints the time duration since the stopwatch start
func (sw StopWatch) Stop(str string) {
	fmt.Printf("%v=%v\n", str, time.Since(sw.t))
}

// StopGetNano returns the nanoseconds from the stopwatch start
func (sw StopWatch) StopGetNano() int64 {
	return time.Since(sw.t).Nanoseconds()
}

// StopRecordAverage adds the time since the stopwatch start to the running
// average kept under key.
func (sw StopWatch) StopRecordAverage(key string) {
	perf.RecordAverageTime(key, sw.StopGetNano())
}
