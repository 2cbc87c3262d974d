package perf

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAverageTimeDisabled(t *testing.T) {
	defer Reset()
	SetMetricsEnabled(false)
	RecordAverageTime("frame", 10)
	_, ok := Average("frame")
	assert.False(t, ok)
}

func TestRecordAverageTime(t *testing.T) {
	defer Reset()
	SetMetricsEnabled(true)
	defer SetMetricsEnabled(false)

	RecordAverageTime("frame", 10)
	RecordAverageTime("frame", 30)
	avg, ok := Average("frame")
	require.True(t, ok)
	assert.Equal(t, 20*time.Nanosecond, avg)
}

func TestLogMetricsSorted(t *testing.T) {
	defer Reset()
	SetMetricsEnabled(true)
	defer SetMetricsEnabled(false)

	var buf bytes.Buffer
	log.SetPerfOutput(&buf)
	defer log.SetPerfOutput(io.Discard)

	RecordAverageTime("b", 2)
	RecordAverageTime("a", 1)
	LogMetrics()

	out := buf.String()
	assert.Contains(t, out, "average metrics")
	a := bytes.Index(buf.Bytes(), []byte("- a = 1ns (1 samples)"))
	b := bytes.Index(buf.Bytes(), []byte("- b = 2ns (1 samples)"))
	require.NotEqual(t, -1, a)
	require.NotEqual(t, -1, b)
	assert.Less(t, a, b)
}

func TestMetrics(t *testing.T) {
	defer Reset()
	SetMetricsEnabled(true)
	defer SetMetricsEnabled(false)

	assert.Empty(t, Metrics())
	RecordAverageTime(GPUFrame, 4)
	RecordAverageTime(GPUFrame, 8)
	RecordAverageTime(CPUFrame, 3)

	assert.Equal(t, []Metric{
		{Key: CPUFrame, Average: 3 * time.Nanosecond, Samples: 1},
		{Key: GPUFrame, Average: 6 * time.Nanosecond, Samples: 2},
	}, Metrics())
}
