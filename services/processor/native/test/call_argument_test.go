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

func TestCallNoArgsNoReturn(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithInternalMethod().WithSystemPermissions().Build()

			output, err := h.process(ctx, call)
			require.NoError(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
			require.Empty(t, outputValues(output.OutputArgumentArray))
		})
	})
}

func TestCallAllArgTypes(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("BenchmarkContract", "argTypes").WithArgs(uint32(11), uint64(12), "hello", []byte{0x01, 0x02, 0x03}).Build()

			output, err := h.process(ctx, call)
			require.NoError(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, output.CallResult)
			require.Equal(t, []interface{}{uint32(12), uint64(13), "hello1", []byte{0x01, 0x02, 0x03, 0x01}}, outputValues(output.OutputArgumentArray))
		})
	})
}

func TestCallWithReturnValue(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)

			output, err := h.process(ctx, processCallInput().Build())
			require.NoError(t, err)
			require.Equal(t, []interface{}{uint64(39)}, outputValues(output.OutputArgumentArray))
		})
	})
}

func TestCallIncorrectArgTypeFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("BenchmarkContract", "argTypes").WithArgs(uint64(12), uint32(11), []byte{0x01, 0x02, 0x03}, "hello").Build()

			output, err := h.process(ctx, call)
			require.Error(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
		})
	})
}

func TestCallIncorrectArgNumFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			tooLittleCall := processCallInput().WithMethod("BenchmarkContract", "argTypes").WithArgs(uint32(11), uint64(12), "hello").Build()

			output, err := h.process(ctx, tooLittleCall)
			require.Error(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)

			tooMuchCall := processCallInput().WithMethod("BenchmarkContract", "argTypes").WithArgs(uint32(11), uint64(12), "hello", []byte{0x01, 0x02, 0x03}, uint32(11)).Build()

			output, err = h.process(ctx, tooMuchCall)
			require.Error(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
		})
	})
}

func TestCallWithNilArgumentArrayIsTreatedAsEmpty(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithCounterIncrement().Build()
			call.InputArgumentArray = nil

			output, err := h.process(ctx, call)
			require.NoError(t, err)
			require.Equal(t, []interface{}{uint32(1)}, outputValues(output.OutputArgumentArray))
		})
	})
}
