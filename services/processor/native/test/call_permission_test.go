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

func TestCallUnknownContractFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithUnknownContract().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err, "call should fail")
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED, output.CallResult)
		})
	})
}

func TestCallUnknownMethodFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithUnknownMethod().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err, "call should fail")
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
		})
	})
}

func TestCallInternalMethodUnderServicePermissionsFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithInternalMethod().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err, "call should fail")
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
		})
	})
}

func TestCallInternalMethodUnderSystemPermissionsSucceeds(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithInternalMethod().WithSystemPermissions().Build()

			_, err := h.process(ctx, call)
			require.NoError(t, err, "call should succeed")
		})
	})
}

func TestCallWriteMethodInReadOnlyScopeFails(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)
			call := processCallInput().WithMethod("Counter", "increment").WithArgs().Build()

			output, err := h.process(ctx, call)
			require.Error(t, err, "call should fail")
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, output.CallResult)
			require.Nil(t, h.stateValue("COUNTER"), "nothing should be written")
		})
	})
}

func TestSdkCallsCarryTheContractPermission(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			h := newHarness(parent.Logger)

			_, err := h.process(ctx, processCallInput().WithCounterIncrement().WithSystemPermissions().Build())
			require.NoError(t, err)
			require.NotEmpty(t, h.sdkHandler.permissions)
			for _, permission := range h.sdkHandler.permissions {
				require.Equal(t, protocol.PERMISSION_SCOPE_SERVICE, permission, "sdk calls should use the contract permission, not the caller's")
			}
		})
	})
}
