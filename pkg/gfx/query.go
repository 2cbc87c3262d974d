package gfx

import (
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gregjohnson2017/glwrap/pkg/perf"
)

// TimerQuery measures GPU time between Start and Stop with timestamp
// queries.
type TimerQuery struct {
	queryID [2]uint32
}

// StartTimerQuery records the starting GPU timestamp.
func StartTimerQuery() TimerQuery {
	var tq TimerQuery
	tq.queryID[0] = drv.GenQuery()
	tq.queryID[1] = drv.GenQuery()
	drv.QueryCounter(tq.queryID[0], gl.TIMESTAMP)
	return tq
}

// Stop waits for the GPU to reach this point and records the elapsed time
// under key.
func (tq TimerQuery) Stop(key string) time.Duration {
	drv.QueryCounter(tq.queryID[1], gl.TIMESTAMP)
	for drv.GetQueryObjectiv(tq.queryID[1], gl.QUERY_RESULT_AVAILABLE) == 0 {
	}
	startTime := drv.GetQueryObjectui64v(tq.queryID[0], gl.QUERY_RESULT)
	stopTime := drv.GetQueryObjectui64v(tq.queryID[1], gl.QUERY_RESULT)
	elapsed := time.Duration(int64(stopTime - startTime))
	perf.RecordAverageTime(key, elapsed.Nanoseconds())

	drv.DeleteQuery(tq.queryID[0])
	drv.DeleteQuery(tq.queryID[1])
	return elapsed
}
