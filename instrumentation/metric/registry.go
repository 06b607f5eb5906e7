// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-counter-go/synchronization"
	"github.com/orbs-network/scribe/log"
	"sort"
	"sync"
	"time"
)

type Factory interface {
	NewLatency(name string, maxDuration time.Duration) *Histogram
	NewGauge(name string) *Gauge
	NewRate(name string) *Rate
}

type Registry interface {
	Factory
	String() string
	ExportAll() map[string]exportedMetric
	ExportPrometheus() string
	ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) *synchronization.PeriodicalTrigger
}

type exportedMetric interface {
	LogRow() []*log.Field
}

type metric interface {
	fmt.Stringer
	Name() string
	Export() exportedMetric
	exportPrometheus(labelString string) string
}

type namedMetric struct {
	name  string
	pName string
}

func newNamedMetric(name string) namedMetric {
	return namedMetric{name: name, pName: prometheusName(name)}
}

func (m *namedMetric) Name() string {
	return m.name
}

func NewRegistry() *inMemoryRegistry {
	return &inMemoryRegistry{}
}

type inMemoryRegistry struct {
	nodeName string
	mu       struct {
		sync.RWMutex
		metrics []metric
	}
}

// WithNodeName labels every exported prometheus row with the node name
func (r *inMemoryRegistry) WithNodeName(name string) *inMemoryRegistry {
	r.nodeName = name
	return r
}

func (r *inMemoryRegistry) register(m metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mu.metrics = append(r.mu.metrics, m)
}

func (r *inMemoryRegistry) NewRate(name string) *Rate {
	m := newRate(name)
	r.register(m)
	return m
}

func (r *inMemoryRegistry) NewGauge(name string) *Gauge {
	g := &Gauge{namedMetric: newNamedMetric(name)}
	r.register(g)
	return g
}

func (r *inMemoryRegistry) NewLatency(name string, maxDuration time.Duration) *Histogram {
	h := newHistogram(name, maxDuration)
	r.register(h)
	return h
}

func (r *inMemoryRegistry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s string
	for _, m := range r.sorted() {
		s += m.String()
	}

	return s
}

func (r *inMemoryRegistry) ExportAll() map[string]exportedMetric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]exportedMetric)
	for _, m := range r.mu.metrics {
		all[m.Name()] = m.Export()
	}

	return all
}

// must be called with the lock held
func (r *inMemoryRegistry) sorted() []metric {
	metrics := make([]metric, len(r.mu.metrics))
	copy(metrics, r.mu.metrics)
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Name() < metrics[j].Name() })
	return metrics
}

func (r *inMemoryRegistry) report(logger log.Logger) {
	for _, value := range r.ExportAll() {
		if logRow := value.LogRow(); logRow != nil {
			logger.Metric(logRow...)
		}
	}
}

func (r *inMemoryRegistry) rotateHistograms() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.mu.metrics {
		if h, ok := m.(*Histogram); ok {
			h.Rotate()
		}
	}
}

func (r *inMemoryRegistry) ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) *synchronization.PeriodicalTrigger {
	return synchronization.NewPeriodicalTrigger(ctx, "metric-reporter", interval, logger, func() {
		r.report(logger)
		r.rotateHistograms()
	}, func() {
		r.report(logger)
	})
}
