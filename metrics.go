// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agentx

import (
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a simple atomic counter.
type Counter struct {
	value int64
}

// Add adds a value to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to zero.
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// SizeHistogram tracks the distribution of packet payload sizes.
type SizeHistogram struct {
	mu      sync.RWMutex
	count   int64
	sum     int64
	min     int64
	max     int64
	buckets []int64
	bounds  []int64
}

// NewSizeHistogram creates a new size histogram.
func NewSizeHistogram() *SizeHistogram {
	return &SizeHistogram{
		min:     -1,
		bounds:  []int64{64, 128, 256, 512, 1024, 4096, 16384, 65536, 262144, 1048576},
		buckets: make([]int64, 11), // 10 buckets + overflow
	}
}

// Observe records a size observation in bytes.
func (h *SizeHistogram) Observe(sizeBytes int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.count++
	h.sum += sizeBytes

	if h.min < 0 || sizeBytes < h.min {
		h.min = sizeBytes
	}
	if sizeBytes > h.max {
		h.max = sizeBytes
	}

	// Find bucket
	for i, bound := range h.bounds {
		if sizeBytes <= bound {
			h.buckets[i]++
			return
		}
	}
	h.buckets[len(h.buckets)-1]++ // overflow
}

// Stats returns histogram statistics.
func (h *SizeHistogram) Stats() SizeStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := SizeStats{
		Count: h.count,
		Sum:   h.sum,
		Min:   h.min,
		Max:   h.max,
	}

	if h.count > 0 {
		stats.Avg = float64(h.sum) / float64(h.count)
	}

	return stats
}

// SizeStats contains size statistics.
type SizeStats struct {
	Count int64
	Sum   int64
	Min   int64
	Max   int64
	Avg   float64
}

// Metrics contains all codec metrics.
type Metrics struct {
	// Decode path
	PacketsDecoded Counter
	DecodeErrors   Counter
	BytesDecoded   Counter

	// Encode path
	PacketsEncoded Counter
	EncodeErrors   Counter
	BytesEncoded   Counter

	// Varbind traffic
	VarbindsDecoded Counter
	VarbindsEncoded Counter

	// Payload size distribution across both paths
	PayloadSizes *SizeHistogram

	// Start time
	StartTime time.Time
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		PayloadSizes: NewSizeHistogram(),
		StartTime:    time.Now(),
	}
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		PacketsDecoded:  m.PacketsDecoded.Value(),
		DecodeErrors:    m.DecodeErrors.Value(),
		BytesDecoded:    m.BytesDecoded.Value(),
		PacketsEncoded:  m.PacketsEncoded.Value(),
		EncodeErrors:    m.EncodeErrors.Value(),
		BytesEncoded:    m.BytesEncoded.Value(),
		VarbindsDecoded: m.VarbindsDecoded.Value(),
		VarbindsEncoded: m.VarbindsEncoded.Value(),
		PayloadSizes:    m.PayloadSizes.Stats(),
		Uptime:          time.Since(m.StartTime),
	}
}

// MetricsSnapshot is a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	PacketsDecoded  int64
	DecodeErrors    int64
	BytesDecoded    int64
	PacketsEncoded  int64
	EncodeErrors    int64
	BytesEncoded    int64
	VarbindsDecoded int64
	VarbindsEncoded int64
	PayloadSizes    SizeStats
	Uptime          time.Duration
}

// Reset resets all metrics.
func (m *Metrics) Reset() {
	m.PacketsDecoded.Reset()
	m.DecodeErrors.Reset()
	m.BytesDecoded.Reset()
	m.PacketsEncoded.Reset()
	m.EncodeErrors.Reset()
	m.BytesEncoded.Reset()
	m.VarbindsDecoded.Reset()
	m.VarbindsEncoded.Reset()
	m.PayloadSizes = NewSizeHistogram()
	m.StartTime = time.Now()
}
