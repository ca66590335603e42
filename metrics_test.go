package agentx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	var c Counter
	assert.Equal(t, int64(0), c.Value())

	c.Add(5)
	c.Add(3)
	assert.Equal(t, int64(8), c.Value())

	c.Reset()
	assert.Equal(t, int64(0), c.Value())
}

func TestCounterConcurrent(t *testing.T) {
	t.Parallel()

	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), c.Value())
}

func TestSizeHistogram(t *testing.T) {
	t.Parallel()

	h := NewSizeHistogram()
	h.Observe(10)
	h.Observe(100)
	h.Observe(1 << 21)

	stats := h.Stats()
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, int64(10+100+(1<<21)), stats.Sum)
	assert.Equal(t, int64(10), stats.Min)
	assert.Equal(t, int64(1<<21), stats.Max)
	assert.InDelta(t, float64(10+100+(1<<21))/3, stats.Avg, 0.01)
}

func TestSizeHistogramEmpty(t *testing.T) {
	t.Parallel()

	stats := NewSizeHistogram().Stats()
	assert.Equal(t, int64(0), stats.Count)
	assert.Equal(t, int64(-1), stats.Min)
	assert.Equal(t, float64(0), stats.Avg)
}

func TestMetricsSnapshot(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.PacketsDecoded.Add(2)
	m.BytesDecoded.Add(96)
	m.EncodeErrors.Add(1)
	m.PayloadSizes.Observe(28)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.PacketsDecoded)
	assert.Equal(t, int64(96), snap.BytesDecoded)
	assert.Equal(t, int64(1), snap.EncodeErrors)
	assert.Equal(t, int64(1), snap.PayloadSizes.Count)
	assert.GreaterOrEqual(t, snap.Uptime.Nanoseconds(), int64(0))
}

func TestMetricsReset(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.PacketsDecoded.Add(5)
	m.VarbindsEncoded.Add(7)
	m.PayloadSizes.Observe(100)

	m.Reset()

	snap := m.Snapshot()
	require.Equal(t, int64(0), snap.PacketsDecoded)
	require.Equal(t, int64(0), snap.VarbindsEncoded)
	assert.Equal(t, int64(0), snap.PayloadSizes.Count)
}
