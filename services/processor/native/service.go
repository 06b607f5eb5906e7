// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/orbs-spec/types/go/services"
	"github.com/orbs-network/orbs-spec/types/go/services/handlers"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("processor-native")

// returns nil without error when the contract is unknown
type Repository interface {
	ContractInfo(contractName primitives.ContractName) (*types.ContractInfo, error)
}

type PrebuiltRepository struct {
	contracts map[primitives.ContractName]types.ContractInfo
}

func NewPrebuiltRepository(contracts map[primitives.ContractName]types.ContractInfo) *PrebuiltRepository {
	return &PrebuiltRepository{contracts: contracts}
}

func (r *PrebuiltRepository) ContractInfo(contractName primitives.ContractName) (*types.ContractInfo, error) {
	if contractInfo, found := r.contracts[contractName]; found {
		return &contractInfo, nil
	}
	return nil, nil
}

type activeCall struct {
	ctx        context.Context
	permission protocol.ExecutionPermissionScope
}

type service struct {
	logger     log.Logger
	repository Repository
	metrics    *metrics

	mutex             sync.RWMutex
	sdkHandler        handlers.ContractSdkCallHandler
	contractInstances map[primitives.ContractName]types.Contract
	activeCalls       map[string]*activeCall
}

type metrics struct {
	processCallTime *metric.Histogram
	contractErrors  *metric.Gauge
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processCallTime: m.NewLatency("Processor.Native.ProcessCallTime.Millis", 10*time.Second),
		contractErrors:  m.NewGauge("Processor.Native.ContractErrors.Count"),
	}
}

func NewNativeProcessor(repository Repository, parentLogger log.Logger, metricFactory metric.Factory) services.Processor {
	return &service{
		logger:            parentLogger.WithTags(LogTag),
		repository:        repository,
		metrics:           getMetrics(metricFactory),
		contractInstances: make(map[primitives.ContractName]types.Contract),
		activeCalls:       make(map[string]*activeCall),
	}
}

func (s *service) RegisterContractSdkCallHandler(handler handlers.ContractSdkCallHandler) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sdkHandler = handler
}

func (s *service) ProcessCall(ctx context.Context, input *services.ProcessCallInput) (*services.ProcessCallOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.ContractName(input.ContractName), logfields.MethodName(input.MethodName))

	// retrieve code
	contractInfo, err := s.retrieveContractInfo(input.ContractName)
	if err != nil {
		return &services.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED,
		}, err
	}

	// get the method and check permissions
	methodInfo, err := s.retrieveMethodInfo(contractInfo, input)
	if err != nil {
		return &services.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	contractInstance := s.getContractInstance(contractInfo)
	inputArgs := input.InputArgumentArray
	if inputArgs == nil {
		inputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}

	// setup context for the contract sdk
	s.pushCall(input.ContextId, ctx, contractInfo.Permission)
	defer s.popCall(input.ContextId)

	start := time.Now()
	defer s.metrics.processCallTime.RecordSince(start)

	// execute
	logger.Info("processor executing contract")

	functionNameForErrors := string(input.ContractName) + "." + string(input.MethodName)
	outputArgs, contractErr, err := s.processMethodCall(types.Context(input.ContextId), contractInstance, methodInfo, inputArgs, functionNameForErrors)
	if outputArgs == nil {
		outputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}
	if err != nil {
		logger.Info("contract execution failed", log.Error(err))

		return &services.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	// result
	callResult := protocol.EXECUTION_RESULT_SUCCESS
	if contractErr != nil {
		logger.Info("contract returned error", log.Error(contractErr))

		s.metrics.contractErrors.Inc()
		callResult = protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT
	}
	return &services.ProcessCallOutput{
		OutputArgumentArray: outputArgs,
		CallResult:          callResult,
	}, contractErr
}

func (s *service) GetContractInfo(ctx context.Context, input *services.GetContractInfoInput) (*services.GetContractInfoOutput, error) {
	contractInfo, err := s.retrieveContractInfo(input.ContractName)
	if err != nil {
		return nil, err
	}

	return &services.GetContractInfoOutput{
		PermissionScope: contractInfo.Permission,
	}, nil
}

func (s *service) retrieveContractInfo(contractName primitives.ContractName) (*types.ContractInfo, error) {
	contractInfo, err := s.repository.ContractInfo(contractName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve contract '%s'", contractName)
	}
	if contractInfo == nil {
		return nil, errors.Errorf("contract '%s' is not deployed", contractName)
	}
	return contractInfo, nil
}

func (s *service) retrieveMethodInfo(contractInfo *types.ContractInfo, input *services.ProcessCallInput) (*types.MethodInfo, error) {
	methodInfo, found := contractInfo.Methods[input.MethodName]
	if !found {
		return nil, errors.Errorf("method '%s' not found on contract '%s'", input.MethodName, input.ContractName)
	}

	if !methodInfo.External && input.CallingPermissionScope != protocol.PERMISSION_SCOPE_SYSTEM {
		return nil, errors.Errorf("only system contracts can run method '%s'", input.MethodName)
	}

	if methodInfo.Access == protocol.ACCESS_SCOPE_READ_WRITE && input.AccessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return nil, errors.Errorf("method '%s' writes state and cannot run in a read only call", input.MethodName)
	}

	return &methodInfo, nil
}

func (s *service) getContractInstance(contractInfo *types.ContractInfo) types.Contract {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if instance, found := s.contractInstances[contractInfo.Name]; found {
		return instance
	}

	instance := contractInfo.InitSingleton(types.NewBaseContract(&stateSdk{s}, &logSdk{s}))
	s.contractInstances[contractInfo.Name] = instance
	return instance
}

func (s *service) pushCall(contextId primitives.ExecutionContextId, ctx context.Context, permission protocol.ExecutionPermissionScope) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.activeCalls[contextId.KeyForMap()] = &activeCall{ctx: ctx, permission: permission}
}

func (s *service) popCall(contextId primitives.ExecutionContextId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.activeCalls, contextId.KeyForMap())
}

func (s *service) handleSdkCall(ctx types.Context, operationName primitives.ContractName, methodName primitives.MethodName, args ...*protocol.Argument) (*handlers.HandleSdkCallOutput, error) {
	contextId := primitives.ExecutionContextId(ctx)

	s.mutex.RLock()
	handler := s.sdkHandler
	call, found := s.activeCalls[contextId.KeyForMap()]
	s.mutex.RUnlock()

	if handler == nil {
		return nil, errors.New("no contract sdk handler registered")
	}
	if !found {
		return nil, errors.Errorf("sdk call %s.%s made outside of an active execution context %s", operationName, methodName, contextId)
	}

	return handler.HandleSdkCall(call.ctx, &handlers.HandleSdkCallInput{
		ContextId:       contextId,
		OperationName:   operationName,
		MethodName:      methodName,
		InputArguments:  args,
		PermissionScope: call.permission,
	})
}
