// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"bytes"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-counter-go/services/processor/native"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/repository"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-counter-go/services/virtualmachine"
	"github.com/orbs-network/orbs-counter-go/test/builders"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
)

type harness struct {
	vm           services.VirtualMachine
	stateStorage *services.MockStateStorage
}

func newHarness(parent *with.LoggingHarness) *harness {
	stateStorage := &services.MockStateStorage{}
	processor := native.NewNativeProcessor(native.NewPrebuiltRepository(repository.Contracts), parent.Logger, metric.NewRegistry())
	vm := virtualmachine.NewVirtualMachine(stateStorage, processor, config.ForTests(), parent.Logger, metric.NewRegistry())

	return &harness{
		vm:           vm,
		stateStorage: stateStorage,
	}
}

func runMethodInput(contractName primitives.ContractName, methodName primitives.MethodName, accessScope protocol.ExecutionAccessScope, args ...interface{}) *services.RunMethodInput {
	return &services.RunMethodInput{
		ContractName:       contractName,
		MethodName:         methodName,
		InputArgumentArray: builders.ArgumentsArray(args...),
		AccessScope:        accessScope,
	}
}

func (h *harness) expectStateStorageRead(contractName primitives.ContractName, key string, value []byte) {
	address := hash.CalcRipemd160Sha256([]byte(key))
	keyMatcher := func(i interface{}) bool {
		input := i.(*services.ReadKeysInput)
		return input.ContractName == contractName && len(input.Keys) == 1 && bytes.Equal(input.Keys[0], address)
	}

	h.stateStorage.When("ReadKeys", mock.Any, mock.AnyIf("reads the expected key", keyMatcher)).Return(&services.ReadKeysOutput{
		StateRecords: []*protocol.StateRecord{(&protocol.StateRecordBuilder{Key: address, Value: value}).Build()},
	}, nil)
}

func (h *harness) expectStateStorageBlockHeight(height primitives.BlockHeight) {
	h.stateStorage.When("GetBlockHeight", mock.Any, mock.Any).Return(&services.GetBlockHeightOutput{BlockHeight: height}, nil)
}

func (h *harness) expectCommit(contractName primitives.ContractName, key string, value interface{}, resultHeight primitives.BlockHeight) {
	address := hash.CalcRipemd160Sha256([]byte(key))
	expectedValue := builders.StateValue(value)
	diffMatcher := func(i interface{}) bool {
		input := i.(*services.CommitStateDiffInput)
		if len(input.ContractStateDiffs) != 1 || input.ContractStateDiffs[0].ContractName() != contractName {
			return false
		}
		records := input.ContractStateDiffs[0].StateDiffsIterator()
		if !records.HasNext() {
			return false
		}
		record := records.NextStateDiffs()
		return bytes.Equal(record.Key(), address) && bytes.Equal(record.Value(), expectedValue) && !records.HasNext()
	}

	h.stateStorage.When("CommitStateDiff", mock.Any, mock.AnyIf("commits the expected value", diffMatcher)).Return(&services.CommitStateDiffOutput{BlockHeight: resultHeight}, nil).Times(1)
}

func (h *harness) expectCommitToFail(err error) {
	h.stateStorage.When("CommitStateDiff", mock.Any, mock.Any).Return(nil, err).Times(1)
}

func (h *harness) expectNoCommit() {
	h.stateStorage.Never("CommitStateDiff", mock.Any, mock.Any)
}

func (h *harness) verifyStateStorage(t *testing.T) {
	ok, errCalled := h.stateStorage.Verify()
	require.True(t, ok, "state storage mock expectations not met: %v", errCalled)
}

func outputValues(array *protocol.ArgumentArray) []interface{} {
	res := []interface{}{}
	for i := array.ArgumentsIterator(); i.HasNext(); {
		res = append(res, types.ValueOf(i.NextArguments()))
	}
	return res
}
