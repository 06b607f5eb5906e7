// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package builders

import (
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// Test builders for: protocol.Argument, protocol.ArgumentArray and raw state values

func ArgumentsBuilders(args ...interface{}) (res []*protocol.ArgumentBuilder) {
	res = []*protocol.ArgumentBuilder{}
	for _, arg := range args {
		res = append(res, argumentBuilder(arg))
	}
	return
}

func argumentBuilder(arg interface{}) *protocol.ArgumentBuilder {
	switch v := arg.(type) {
	case uint32:
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: v}
	case uint64:
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: v}
	case string:
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: v}
	case []byte:
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: v}
	default:
		panic("unsupported argument type in test builder")
	}
}

func Arguments(args ...interface{}) (res []*protocol.Argument) {
	res = []*protocol.Argument{}
	for _, builder := range ArgumentsBuilders(args...) {
		res = append(res, builder.Build())
	}
	return
}

func ArgumentsArray(args ...interface{}) *protocol.ArgumentArray {
	return (&protocol.ArgumentArrayBuilder{Arguments: ArgumentsBuilders(args...)}).Build()
}

// StateValue returns the bytes a contract write of v leaves in state storage
func StateValue(v interface{}) []byte {
	return argumentBuilder(v).Build().Raw()
}
