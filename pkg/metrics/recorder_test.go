package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Provider = &r

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Count(RequestCount, 1, []string{"status:200"})
		}()
	}
	wg.Wait()

	_ = p.Histogram(RequestLatency, 12.5, nil)
	_ = p.Gauge("inflight", 3, nil)

	assert.Len(t, r.Named(RequestCount), 10)
	latency := r.Named(RequestLatency)
	if assert.Len(t, latency, 1) {
		assert.Equal(t, "histogram", latency[0].Type)
		assert.Equal(t, 12.5, latency[0].Value)
	}
	assert.Len(t, r.Samples(), 12)
}
