// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// Context is the handle a contract method receives; SDK calls made with it are routed to the invocation that created it
type Context primitives.ExecutionContextId

type StateSdk interface {
	Has(ctx Context, key string) (bool, error)

	// read, absent keys give the zero value
	ReadBytesByKey(ctx Context, key string) ([]byte, error)
	ReadStringByKey(ctx Context, key string) (string, error)
	ReadUint64ByKey(ctx Context, key string) (uint64, error)
	ReadUint32ByKey(ctx Context, key string) (uint32, error)

	// write
	WriteBytesByKey(ctx Context, key string, value []byte) error
	WriteStringByKey(ctx Context, key string, value string) error
	WriteUint64ByKey(ctx Context, key string, value uint64) error
	WriteUint32ByKey(ctx Context, key string, value uint32) error

	// clear
	ClearByKey(ctx Context, key string) error
}

type LogSdk interface {
	Info(ctx Context, message string)
}
