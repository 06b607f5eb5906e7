// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) handleSdkLogCall(ctx context.Context, executionContext *executionContext, methodName primitives.MethodName, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {

	case "info":
		if len(args) != 1 || !args[0].IsTypeStringValue() {
			return nil, errors.Errorf("invalid SDK log info args: %v", args)
		}
		message := args[0].StringValue()

		s.contractLogger.Info(message, trace.LogFieldFrom(ctx), logfields.ContractName(executionContext.serviceStackTop()), logfields.ContextId(executionContext.contextId))
		executionContext.appendEvent(message)
		return []*protocol.Argument{}, nil

	default:
		return nil, errors.Errorf("unknown SDK log call method: %s", methodName)
	}
}
