// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package adapter

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// contract name -> key (KeyForMap of the ripemd160 address) -> raw value; an empty value deletes the key
type ChainState map[primitives.ContractName]map[string][]byte

type StatePersistence interface {
	// writes the diff and the new height atomically
	Write(height primitives.BlockHeight, diff ChainState) error
	Read(contract primitives.ContractName, key string) ([]byte, bool, error)
	ReadMetadata() (primitives.BlockHeight, error)
	Close() error
}

// implemented by adapters that can list their full content
type Dumper interface {
	Dump() string
}

func IsZeroValue(value []byte) bool {
	return len(value) == 0
}
