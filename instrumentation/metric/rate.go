// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"fmt"
	"github.com/VividCortex/ewma"
	"github.com/orbs-network/scribe/log"
	"sync"
	"time"
)

var tickInterval = 1 * time.Second

// Rate is an exponentially weighted moving average of events per tick
type Rate struct {
	namedMetric
	movingAverage ewma.MovingAverage

	m          sync.Mutex
	runningSum int64
	nextTick   time.Time
}

type rateExport struct {
	Name     string
	Rate     float64
	Interval time.Duration
}

func newRate(name string) *Rate {
	return &Rate{
		namedMetric:   newNamedMetric(name),
		movingAverage: ewma.NewMovingAverage(),
		nextTick:      time.Now().Add(tickInterval),
	}
}

func (r *Rate) value() float64 {
	r.m.Lock()
	defer r.m.Unlock()
	return r.movingAverage.Value()
}

func (r *Rate) Export() exportedMetric {
	return rateExport{
		r.name,
		r.value(),
		tickInterval,
	}
}

func (r *Rate) String() string {
	return fmt.Sprintf("metric %s: %f per %s\n", r.name, r.value(), tickInterval)
}

func (r *Rate) Measure(eventCount int64) {
	r.m.Lock()
	defer r.m.Unlock()
	for now := time.Now(); r.nextTick.Before(now); r.nextTick = r.nextTick.Add(tickInterval) {
		r.movingAverage.Add(float64(r.runningSum))
		r.runningSum = 0
	}

	r.runningSum += eventCount
}

func (r *Rate) Reset() {
	r.m.Lock()
	defer r.m.Unlock()

	r.movingAverage = ewma.NewMovingAverage()
	r.runningSum = 0
}

func (r rateExport) LogRow() []*log.Field {
	return []*log.Field{
		log.String("metric", r.Name),
		log.String("metric-type", "rate"),
		log.Float64("rate", r.Rate),
	}
}
