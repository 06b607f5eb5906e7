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
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	orbsservices "github.com/orbs-network/orbs-spec/types/go/services"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// RunMethod invocations are serialized; the transient state of a call is committed only when the call succeeds
func (s *service) RunMethod(ctx context.Context, input *services.RunMethodInput) (*services.RunMethodOutput, error) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.metrics.runMethodRate.Measure(1)
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.ContractName(input.ContractName), logfields.MethodName(input.MethodName))

	if timeout := s.config.ProcessorCallTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// create execution context
	executionContextId, executionContext := s.contexts.allocateExecutionContext(input.AccessScope)
	defer s.destroyExecutionContext(executionContextId)
	s.metrics.activeContexts.Update(int64(s.contexts.count()))

	executionContext.serviceStackPush(input.ContractName)
	defer executionContext.serviceStackPop()

	// execute the call
	output, err := s.processor.ProcessCall(ctx, &orbsservices.ProcessCallInput{
		ContextId:              executionContextId,
		ContractName:           input.ContractName,
		MethodName:             input.MethodName,
		InputArgumentArray:     input.InputArgumentArray,
		AccessScope:            input.AccessScope,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})
	if output == nil {
		output = &orbsservices.ProcessCallOutput{
			OutputArgumentArray: (&protocol.ArgumentArrayBuilder{}).Build(),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_UNEXPECTED,
		}
		if err == nil {
			err = errors.New("processor returned no output")
		}
	}
	if err == nil && ctx.Err() != nil {
		err = errors.Wrap(ctx.Err(), "contract call exceeded its time limit")
		output.CallResult = protocol.EXECUTION_RESULT_ERROR_UNEXPECTED
	}

	succeeded := err == nil && output.CallResult == protocol.EXECUTION_RESULT_SUCCESS
	if !succeeded {
		logger.Info("method execution failed, discarding its state", log.Stringable("result", output.CallResult), log.Error(err))
	}

	// commit
	var blockHeight primitives.BlockHeight
	if succeeded && input.AccessScope == protocol.ACCESS_SCOPE_READ_WRITE && executionContext.transientState.isDirty() {
		commitOutput, commitErr := s.stateStorage.CommitStateDiff(ctx, &services.CommitStateDiffInput{
			ContractStateDiffs: encodeTransientStateToStateDiffs(executionContext.transientState),
		})
		if commitErr != nil {
			s.metrics.commitFailures.Inc()
			logger.Error("failed to commit state diff", log.Error(commitErr))
			return &services.RunMethodOutput{
				CallResult:          protocol.EXECUTION_RESULT_ERROR_UNEXPECTED,
				OutputArgumentArray: (&protocol.ArgumentArrayBuilder{}).Build(),
				DiagnosticEvents:    executionContext.diagnosticEvents(false),
			}, errors.Wrap(commitErr, "commit state diff failed")
		}
		blockHeight = commitOutput.BlockHeight
		logger.Info("committed state diff", logfields.BlockHeight(blockHeight))
	} else {
		heightOutput, heightErr := s.stateStorage.GetBlockHeight(ctx, &services.GetBlockHeightInput{})
		if heightErr == nil {
			blockHeight = heightOutput.BlockHeight
		}
	}

	return &services.RunMethodOutput{
		CallResult:          output.CallResult,
		OutputArgumentArray: output.OutputArgumentArray,
		DiagnosticEvents:    executionContext.diagnosticEvents(succeeded),
		BlockHeight:         blockHeight,
	}, err
}

func (s *service) destroyExecutionContext(executionContextId primitives.ExecutionContextId) {
	s.contexts.destroyExecutionContext(executionContextId)
	s.metrics.activeContexts.Update(int64(s.contexts.count()))
}

func encodeTransientStateToStateDiffs(transientState *transientState) []*protocol.ContractStateDiff {
	res := []*protocol.ContractStateDiff{}
	for _, contractName := range transientState.contractSortOrder {
		stateDiffs := []*protocol.StateRecordBuilder{}
		transientState.forDirty(contractName, func(key []byte, value []byte) {
			stateDiffs = append(stateDiffs, &protocol.StateRecordBuilder{
				Key:   key,
				Value: value,
			})
		})
		if len(stateDiffs) > 0 {
			res = append(res, (&protocol.ContractStateDiffBuilder{
				ContractName: contractName,
				StateDiffs:   stateDiffs,
			}).Build())
		}
	}
	return res
}
