// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_STATE = primitives.ContractName("Sdk.State")

type stateSdk struct {
	s *service
}

func (s *stateSdk) Has(ctx types.Context, key string) (bool, error) {
	output, err := s.s.handleSdkCall(ctx, SDK_OPERATION_NAME_STATE, "has", addressArgument(key))
	if err != nil {
		return false, err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeUint32Value() {
		return false, errors.Errorf("has Sdk.State returned corrupt output value")
	}
	return output.OutputArguments[0].Uint32Value() != 0, nil
}

func (s *stateSdk) readRaw(ctx types.Context, key string) ([]byte, error) {
	output, err := s.s.handleSdkCall(ctx, SDK_OPERATION_NAME_STATE, "read", addressArgument(key))
	if err != nil {
		return nil, err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeBytesValue() {
		return nil, errors.Errorf("read Sdk.State returned corrupt output value")
	}
	return output.OutputArguments[0].BytesValue(), nil
}

func (s *stateSdk) read(ctx types.Context, key string) (*protocol.Argument, error) {
	raw, err := s.readRaw(ctx, key)
	if err != nil {
		return nil, err
	}
	value, err := types.DecodeValue(raw)
	if err != nil {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "key '%s': %s", key, err.Error())
	}
	return value, nil
}

func (s *stateSdk) writeRaw(ctx types.Context, key string, raw []byte) error {
	_, err := s.s.handleSdkCall(ctx, SDK_OPERATION_NAME_STATE, "write", addressArgument(key), (&protocol.ArgumentBuilder{
		Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
		BytesValue: raw,
	}).Build())
	return err
}

func (s *stateSdk) write(ctx types.Context, key string, value interface{}) error {
	raw, err := types.EncodeValue(value)
	if err != nil {
		return err
	}
	return s.writeRaw(ctx, key, raw)
}

func (s *stateSdk) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	value, err := s.read(ctx, key)
	if err != nil || value == nil {
		return nil, err
	}
	if !value.IsTypeBytesValue() {
		return nil, types.TypeMismatch(key, "bytes", value)
	}
	return value.BytesValue(), nil
}

func (s *stateSdk) ReadStringByKey(ctx types.Context, key string) (string, error) {
	value, err := s.read(ctx, key)
	if err != nil || value == nil {
		return "", err
	}
	if !value.IsTypeStringValue() {
		return "", types.TypeMismatch(key, "string", value)
	}
	return value.StringValue(), nil
}

func (s *stateSdk) ReadUint64ByKey(ctx types.Context, key string) (uint64, error) {
	value, err := s.read(ctx, key)
	if err != nil || value == nil {
		return 0, err
	}
	if !value.IsTypeUint64Value() {
		return 0, types.TypeMismatch(key, "uint64", value)
	}
	return value.Uint64Value(), nil
}

func (s *stateSdk) ReadUint32ByKey(ctx types.Context, key string) (uint32, error) {
	value, err := s.read(ctx, key)
	if err != nil || value == nil {
		return 0, err
	}
	if !value.IsTypeUint32Value() {
		return 0, types.TypeMismatch(key, "uint32", value)
	}
	return value.Uint32Value(), nil
}

func (s *stateSdk) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	return s.write(ctx, key, value)
}

func (s *stateSdk) WriteStringByKey(ctx types.Context, key string, value string) error {
	return s.write(ctx, key, value)
}

func (s *stateSdk) WriteUint64ByKey(ctx types.Context, key string, value uint64) error {
	return s.write(ctx, key, value)
}

func (s *stateSdk) WriteUint32ByKey(ctx types.Context, key string, value uint32) error {
	return s.write(ctx, key, value)
}

// an empty value deletes the record on commit
func (s *stateSdk) ClearByKey(ctx types.Context, key string) error {
	return s.writeRaw(ctx, key, []byte{})
}

func keyToAddress(key string) hash.Ripemd160Sha256 {
	return hash.CalcRipemd160Sha256([]byte(key))
}

func addressArgument(key string) *protocol.Argument {
	return (&protocol.ArgumentBuilder{
		Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
		BytesValue: keyToAddress(key),
	}).Build()
}
