// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-counter-go/services/processor/native"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	orbsservices "github.com/orbs-network/orbs-spec/types/go/services"
	"github.com/orbs-network/orbs-spec/types/go/services/handlers"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
)

var LogTag = log.Service("virtual-machine")

// tags the lines contracts write through Sdk.Log
var ContractLogTag = log.Service("contract-log")

type service struct {
	stateStorage   services.StateStorage
	processor      orbsservices.Processor
	config         config.VirtualMachineConfig
	logger         log.Logger
	contractLogger log.Logger
	metrics        *metrics

	runMutex sync.Mutex
	contexts *executionContextProvider
}

type metrics struct {
	runMethodRate  *metric.Rate
	activeContexts *metric.Gauge
	commitFailures *metric.Gauge
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		runMethodRate:  m.NewRate("VirtualMachine.RunMethod.Rate"),
		activeContexts: m.NewGauge("VirtualMachine.ActiveContexts.Count"),
		commitFailures: m.NewGauge("VirtualMachine.CommitFailures.Count"),
	}
}

func NewVirtualMachine(
	stateStorage services.StateStorage,
	processor orbsservices.Processor,
	config config.VirtualMachineConfig,
	parentLogger log.Logger,
	metricFactory metric.Factory,
) services.VirtualMachine {

	s := &service{
		stateStorage:   stateStorage,
		processor:      processor,
		config:         config,
		logger:         parentLogger.WithTags(LogTag),
		contractLogger: parentLogger.WithTags(ContractLogTag),
		metrics:        getMetrics(metricFactory),
		contexts:       newExecutionContextProvider(),
	}

	processor.RegisterContractSdkCallHandler(s)

	return s
}

func (s *service) HandleSdkCall(ctx context.Context, input *handlers.HandleSdkCallInput) (*handlers.HandleSdkCallOutput, error) {
	executionContext := s.contexts.loadExecutionContext(input.ContextId)
	if executionContext == nil {
		return nil, errors.Errorf("invalid execution context %s", input.ContextId)
	}

	var output []*protocol.Argument
	var err error
	switch input.OperationName {
	case native.SDK_OPERATION_NAME_STATE:
		output, err = s.handleSdkStateCall(ctx, executionContext, input.MethodName, input.InputArguments, input.PermissionScope)
	case native.SDK_OPERATION_NAME_LOG:
		output, err = s.handleSdkLogCall(ctx, executionContext, input.MethodName, input.InputArguments)
	default:
		return nil, errors.Errorf("unknown SDK call operation: %s", input.OperationName)
	}

	if err != nil {
		s.logger.Info("sdk call failed", log.Error(err), logfields.ContextId(input.ContextId), log.String("operation", string(input.OperationName)), logfields.MethodName(input.MethodName))
		return nil, err
	}

	return &handlers.HandleSdkCallOutput{
		OutputArguments: output,
	}, nil
}
