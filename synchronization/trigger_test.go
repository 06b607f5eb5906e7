// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package synchronization_test

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/synchronization"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/stretchr/testify/require"
	"sync/atomic"
	"testing"
	"time"
)

func TestPeriodicalTrigger_FiresRepeatedly(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			var x int32
			fired := make(chan struct{}, 10)
			p := synchronization.NewPeriodicalTrigger(ctx, "test-trigger", time.Millisecond, parent.Logger, func() {
				atomic.AddInt32(&x, 1)
				fired <- struct{}{}
			}, nil)
			defer p.Stop()

			<-fired
			<-fired
			require.True(t, atomic.LoadInt32(&x) >= 2, "expected at least two ticks")
		})
	})
}

func TestPeriodicalTrigger_StopRunsOnStopAndHaltsTicks(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			var x int32
			stopped := false
			p := synchronization.NewPeriodicalTrigger(ctx, "test-trigger", time.Millisecond, parent.Logger, func() {
				atomic.AddInt32(&x, 1)
			}, func() { stopped = true })

			p.Stop()
			require.True(t, stopped, "onStop should run before Stop returns")

			ticksAtStop := atomic.LoadInt32(&x)
			time.Sleep(5 * time.Millisecond)
			require.Equal(t, ticksAtStop, atomic.LoadInt32(&x), "expected no ticks after stop")
		})
	})
}

func TestPeriodicalTrigger_StopsWhenParentContextIsCancelled(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		ctx, cancel := context.WithCancel(context.Background())
		p := synchronization.NewPeriodicalTrigger(ctx, "test-trigger", time.Hour, parent.Logger, func() {}, nil)
		cancel()

		select {
		case <-p.Closed:
		case <-time.After(time.Second):
			t.Fatal("trigger did not stop after context cancellation")
		}
	})
}

func TestPeriodicalTrigger_KeepsTickingAfterHandlerPanics(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			parent.AllowErrorsMatching("recovered panic")
			var calls int32
			recovered := make(chan struct{})
			p := synchronization.NewPeriodicalTrigger(ctx, "panicking-trigger", time.Millisecond, parent.Logger, func() {
				switch atomic.AddInt32(&calls, 1) {
				case 1:
					panic("boom")
				case 2:
					close(recovered)
				}
			}, nil)
			defer p.Stop()

			select {
			case <-recovered:
			case <-time.After(time.Second):
				t.Fatal("trigger did not resume after handler panic")
			}
		})
	})
}
