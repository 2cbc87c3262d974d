package util

import (
	"testing"
	"time"

	"github.com/gregjohnson2017/glwrap/pkg/perf"
	"github.com/stretchr/testify/assert"
)

func TestStopGetNano(t *testing.T) {
	sw := Start()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, sw.StopGetNano(), time.Millisecond.Nanoseconds())
}

func TestStopRecordAverage(t *testing.T) {
	perf.SetMetricsEnabled(true)
	defer perf.SetMetricsEnabled(false)
	defer perf.Reset()

	Start().StopRecordAverage("util.test")
	_, ok := perf.Average("util.test")
	assert.True(t, ok)
}

func TestErrNoFileChosen(t *testing.T) {
	assert.Equal(t, "no file chosen", ErrNoFileChosen.Error())
}
