// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

var ErrTypeMismatch = errors.New("stored value type mismatch")

// EncodeValue serializes a typed state value; state storage keeps these bytes as-is
func EncodeValue(value interface{}) ([]byte, error) {
	var builder *protocol.ArgumentBuilder
	switch v := value.(type) {
	case uint32:
		builder = &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: v}
	case uint64:
		builder = &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: v}
	case string:
		builder = &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: v}
	case []byte:
		builder = &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: v}
	default:
		return nil, errors.Errorf("unsupported state value type %T", value)
	}
	return builder.Build().Raw(), nil
}

// DecodeValue returns nil for an empty (absent) value
func DecodeValue(raw []byte) (*protocol.Argument, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	arg := protocol.ArgumentReader(raw)
	if !arg.IsValid() {
		return nil, errors.Errorf("stored value is not a valid typed argument (%d bytes)", len(raw))
	}
	return arg, nil
}

func TypeMismatch(key string, expected string, actual *protocol.Argument) error {
	return errors.Wrapf(ErrTypeMismatch, "key '%s' holds %s, expected %s", key, actual.StringType(), expected)
}

// ValueOf unwraps a decoded argument into its Go value
func ValueOf(arg *protocol.Argument) interface{} {
	switch {
	case arg.IsTypeUint32Value():
		return arg.Uint32Value()
	case arg.IsTypeUint64Value():
		return arg.Uint64Value()
	case arg.IsTypeStringValue():
		return arg.StringValue()
	case arg.IsTypeBytesValue():
		return arg.BytesValue()
	default:
		return nil
	}
}
