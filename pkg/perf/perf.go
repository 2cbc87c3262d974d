package perf

import (
	"sort"
	"time"

	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// Keys recorded by the viewer.
const (
	// CPUFrame is the CPU time spent issuing one frame's draw calls.
	CPUFrame = "cpu frame"
	// GPUFrame is the GPU time of one frame, from a timer query.
	GPUFrame = "gpu frame"
	// FontLoad is the time to rasterize a glyph atlas.
	FontLoad = "font.Load"
)

type average struct {
	// nanoseconds
	total int64
	// recordings
	count int64
}

// Metric is the running average of one key.
type Metric struct {
	Key     string
	Average time.Duration
	Samples int64
}

var enabled bool
var averages = make(map[string]average)

// RecordAverageTime adds one measurement to the running average of key
// (ex: GPUFrame from a finished gfx.TimerQuery). Nothing is recorded while
// metrics are disabled.
func RecordAverageTime(key string, nanos int64) {
	if !enabled {
		return
	}

	var avg average
	if v, ok := averages[key]; ok {
		avg = v
	}

	avg.total += nanos
	avg.count++
	averages[key] = avg
}

// SetMetricsEnabled turns recording on or off. The viewer enables it with
// the --perf flag or the log.perf config key.
func SetMetricsEnabled(enable bool) {
	enabled = enable
}

// Average returns the mean of the measurements recorded under key.
func Average(key string) (time.Duration, bool) {
	v, ok := averages[key]
	if !ok || v.count == 0 {
		return 0, false
	}
	return time.Duration(v.total / v.count), true
}

// Metrics returns every recorded key sorted by name.
func Metrics() []Metric {
	keys := make([]string, 0, len(averages))
	for k := range averages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	metrics := make([]Metric, 0, len(keys))
	for _, k := range keys {
		if avg, ok := Average(k); ok {
			metrics = append(metrics, Metric{Key: k, Average: avg, Samples: averages[k].count})
		}
	}
	return metrics
}

// Reset forgets every measurement.
func Reset() {
	averages = make(map[string]average)
}

// LogMetrics writes every average to the perf log. The viewer calls it once
// a second, so the CPUFrame and GPUFrame lines show the running frame cost.
func LogMetrics() {
	if !enabled || len(averages) == 0 {
		return
	}

	log.Perf("average metrics")
	for _, m := range Metrics() {
		log.Perff("- %v = %v (%v samples)", m.Key, m.Average, m.Samples)
	}
}
