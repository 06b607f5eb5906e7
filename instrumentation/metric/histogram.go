// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"fmt"
	"github.com/codahale/hdrhistogram"
	"github.com/orbs-network/scribe/log"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram keeps a rotating window of latencies in milliseconds
type Histogram struct {
	namedMetric
	mu            sync.Mutex
	histo         *hdrhistogram.WindowedHistogram
	overflowCount int64
}

type histogramExport struct {
	Name    string
	Min     int64
	P50     int64
	P95     int64
	P99     int64
	Max     int64
	Avg     float64
	Samples int64
}

func newHistogram(name string, max time.Duration) *Histogram {
	return &Histogram{
		namedMetric: newNamedMetric(name),
		histo:       hdrhistogram.NewWindowed(5, 1, int64(max/time.Millisecond), 3),
	}
}

func (h *Histogram) RecordSince(t time.Time) {
	h.Record(time.Since(t))
}

func (h *Histogram) Record(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.histo.Current.RecordValue(int64(d / time.Millisecond)); err != nil {
		atomic.AddInt64(&h.overflowCount, 1)
	}
}

func (h *Histogram) Rotate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.histo.Rotate()
}

func (h *Histogram) export() histogramExport {
	h.mu.Lock()
	defer h.mu.Unlock()
	histo := h.histo.Current

	return histogramExport{
		h.name,
		histo.Min(),
		histo.ValueAtQuantile(50),
		histo.ValueAtQuantile(95),
		histo.ValueAtQuantile(99),
		histo.Max(),
		histo.Mean(),
		histo.TotalCount(),
	}
}

func (h *Histogram) String() string {
	e := h.export()
	return fmt.Sprintf(
		"metric %s: [min=%d, p50=%d, p95=%d, p99=%d, max=%d, avg=%f, samples=%d, overflows=%d]\n",
		e.Name, e.Min, e.P50, e.P95, e.P99, e.Max, e.Avg, e.Samples, atomic.LoadInt64(&h.overflowCount))
}

func (h *Histogram) Export() exportedMetric {
	return h.export()
}

func (h histogramExport) LogRow() []*log.Field {
	if h.Samples == 0 {
		return nil
	}
	return []*log.Field{
		log.String("metric", h.Name),
		log.String("metric-type", "histogram"),
		log.Int64("min", h.Min),
		log.Int64("p50", h.P50),
		log.Int64("p95", h.P95),
		log.Int64("p99", h.P99),
		log.Int64("max", h.Max),
		log.Float64("avg", h.Avg),
		log.Int64("samples", h.Samples),
	}
}
