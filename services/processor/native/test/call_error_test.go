// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCallThatReturnsErrorFailsWithContractResult(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("BenchmarkContract", "throw").WithArgs().Build()

			output, err := h.process(ctx, call)
			require.EqualError(t, err, "contract returns error")
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, output.CallResult)
			require.Equal(t, []interface{}{"contract returns error"}, outputValues(output.OutputArgumentArray))
		})
	})
}

func TestCallThatPanicsFailsWithContractResult(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("BenchmarkContract", "panic").WithArgs().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, output.CallResult)
			require.Equal(t, []interface{}{"contract panicked"}, outputValues(output.OutputArgumentArray))
		})
	})
}

func TestCallMethodWithoutErrorReturnFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("BenchmarkContract", "invalidNoError").WithArgs().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
		})
	})
}

func TestCallMethodWithoutContextFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("BenchmarkContract", "invalidNoContext").WithArgs().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
		})
	})
}
