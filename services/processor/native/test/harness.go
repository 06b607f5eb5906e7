// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/processor/native"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/repository"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-counter-go/test/builders"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/orbs-spec/types/go/services"
	"github.com/orbs-network/orbs-spec/types/go/services/handlers"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
)

type harness struct {
	service    services.Processor
	sdkHandler *sdkHandlerStub
}

func newHarness(logger log.Logger) *harness {
	sdkHandler := &sdkHandlerStub{state: make(map[string][]byte)}
	service := native.NewNativeProcessor(native.NewPrebuiltRepository(repository.Contracts), logger, metric.NewRegistry())
	service.RegisterContractSdkCallHandler(sdkHandler)

	return &harness{
		service:    service,
		sdkHandler: sdkHandler,
	}
}

func (h *harness) process(ctx context.Context, input *services.ProcessCallInput) (*services.ProcessCallOutput, error) {
	return h.service.ProcessCall(ctx, input)
}

func (h *harness) seedState(key string, value interface{}) {
	h.sdkHandler.mutex.Lock()
	defer h.sdkHandler.mutex.Unlock()
	h.sdkHandler.state[string(hash.CalcRipemd160Sha256([]byte(key)))] = builders.StateValue(value)
}

func (h *harness) stateValue(key string) interface{} {
	h.sdkHandler.mutex.Lock()
	defer h.sdkHandler.mutex.Unlock()
	arg, err := types.DecodeValue(h.sdkHandler.state[string(hash.CalcRipemd160Sha256([]byte(key)))])
	if err != nil || arg == nil {
		return nil
	}
	return types.ValueOf(arg)
}

func outputValues(array *protocol.ArgumentArray) []interface{} {
	res := []interface{}{}
	for i := array.ArgumentsIterator(); i.HasNext(); {
		res = append(res, types.ValueOf(i.NextArguments()))
	}
	return res
}

// plays the virtual machine: a flat state map with no transient layer
type sdkHandlerStub struct {
	mutex       sync.Mutex
	state       map[string][]byte
	logs        []string
	permissions []protocol.ExecutionPermissionScope
}

func (c *sdkHandlerStub) HandleSdkCall(ctx context.Context, input *handlers.HandleSdkCallInput) (*handlers.HandleSdkCallOutput, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.permissions = append(c.permissions, input.PermissionScope)
	switch string(input.OperationName) + "." + string(input.MethodName) {
	case "Sdk.State.has":
		found := uint32(0)
		if len(c.state[string(input.InputArguments[0].BytesValue())]) > 0 {
			found = 1
		}
		return &handlers.HandleSdkCallOutput{OutputArguments: builders.Arguments(found)}, nil
	case "Sdk.State.read":
		return &handlers.HandleSdkCallOutput{OutputArguments: builders.Arguments(c.state[string(input.InputArguments[0].BytesValue())])}, nil
	case "Sdk.State.write":
		c.state[string(input.InputArguments[0].BytesValue())] = input.InputArguments[1].BytesValue()
		return &handlers.HandleSdkCallOutput{}, nil
	case "Sdk.Log.info":
		c.logs = append(c.logs, input.InputArguments[0].StringValue())
		return &handlers.HandleSdkCallOutput{}, nil
	default:
		return nil, errors.Errorf("unknown sdk call %s.%s", input.OperationName, input.MethodName)
	}
}

type processCallInputBuilder struct {
	input *services.ProcessCallInput
}

func processCallInput() *processCallInputBuilder {
	return &processCallInputBuilder{
		input: &services.ProcessCallInput{
			ContextId:              primitives.ExecutionContextId{0, 0, 0, 0, 0, 0, 0, 17},
			ContractName:           "BenchmarkContract",
			MethodName:             "add",
			InputArgumentArray:     builders.ArgumentsArray(uint64(12), uint64(27)),
			AccessScope:            protocol.ACCESS_SCOPE_READ_ONLY,
			CallingPermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
		},
	}
}

func (b *processCallInputBuilder) WithMethod(contractName primitives.ContractName, methodName primitives.MethodName) *processCallInputBuilder {
	b.input.ContractName = contractName
	b.input.MethodName = methodName
	return b
}

func (b *processCallInputBuilder) WithArgs(args ...interface{}) *processCallInputBuilder {
	b.input.InputArgumentArray = builders.ArgumentsArray(args...)
	return b
}

func (b *processCallInputBuilder) WithUnknownContract() *processCallInputBuilder {
	b.input.ContractName = "UnknownContract"
	return b
}

func (b *processCallInputBuilder) WithUnknownMethod() *processCallInputBuilder {
	b.input.MethodName = "unknownMethod"
	return b
}

func (b *processCallInputBuilder) WithInternalMethod() *processCallInputBuilder {
	b.input.MethodName = "_init"
	b.input.InputArgumentArray = builders.ArgumentsArray()
	return b
}

func (b *processCallInputBuilder) WithSystemPermissions() *processCallInputBuilder {
	b.input.CallingPermissionScope = protocol.PERMISSION_SCOPE_SYSTEM
	return b
}

func (b *processCallInputBuilder) WithReadWriteAccess() *processCallInputBuilder {
	b.input.AccessScope = protocol.ACCESS_SCOPE_READ_WRITE
	return b
}

func (b *processCallInputBuilder) WithCounterIncrement() *processCallInputBuilder {
	return b.WithMethod("Counter", "increment").WithArgs().WithReadWriteAccess()
}

func (b *processCallInputBuilder) Build() *services.ProcessCallInput {
	return b.input
}
