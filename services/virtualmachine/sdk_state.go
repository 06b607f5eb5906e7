// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) handleSdkStateCall(ctx context.Context, executionContext *executionContext, methodName primitives.MethodName, args []*protocol.Argument, permissionScope protocol.ExecutionPermissionScope) ([]*protocol.Argument, error) {
	switch methodName {

	case "has":
		value, err := s.handleSdkStateRead(ctx, executionContext, args)
		if err != nil {
			return nil, err
		}
		found := uint32(0)
		if len(value) > 0 {
			found = 1
		}
		return []*protocol.Argument{(&protocol.ArgumentBuilder{
			Type:        protocol.ARGUMENT_TYPE_UINT_32_VALUE,
			Uint32Value: found,
		}).Build()}, nil

	case "read":
		value, err := s.handleSdkStateRead(ctx, executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{(&protocol.ArgumentBuilder{
			Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
			BytesValue: value,
		}).Build()}, nil

	case "write":
		err := s.handleSdkStateWrite(executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{}, nil

	default:
		return nil, errors.Errorf("unknown SDK state call method: %s", methodName)
	}
}

// reads see this invocation's own writes before falling back to state storage
func (s *service) handleSdkStateRead(ctx context.Context, executionContext *executionContext, args []*protocol.Argument) ([]byte, error) {
	if len(args) != 1 || !args[0].IsTypeBytesValue() {
		return nil, errors.Errorf("invalid SDK state read args: %v", args)
	}
	key := args[0].BytesValue()
	contractName := executionContext.serviceStackTop()

	if value, found := executionContext.transientState.getValue(contractName, key); found {
		return value, nil
	}

	output, err := s.stateStorage.ReadKeys(ctx, &services.ReadKeysInput{
		ContractName: contractName,
		Keys:         []hash.Ripemd160Sha256{key},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "state read of contract '%s' failed", contractName)
	}
	if len(output.StateRecords) != 1 {
		return nil, errors.Errorf("state read returned %d records instead of 1", len(output.StateRecords))
	}

	value := output.StateRecords[0].Value()
	executionContext.transientState.setValue(contractName, key, value, false)
	return value, nil
}

func (s *service) handleSdkStateWrite(executionContext *executionContext, args []*protocol.Argument) error {
	if executionContext.accessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return errors.Errorf("write attempted in a read only execution context %s", executionContext.contextId)
	}
	if len(args) != 2 || !args[0].IsTypeBytesValue() || !args[1].IsTypeBytesValue() {
		return errors.Errorf("invalid SDK state write args: %v", args)
	}

	executionContext.transientState.setValue(executionContext.serviceStackTop(), args[0].BytesValue(), args[1].BytesValue(), true)
	return nil
}
