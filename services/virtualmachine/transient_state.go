// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"fmt"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
	"strings"
)

type keyValuePair struct {
	key     []byte
	value   []byte
	isDirty bool
}

type transientState struct {
	contracts         map[primitives.ContractName]map[string]*keyValuePair
	contractSortOrder []primitives.ContractName
}

func newTransientState() *transientState {
	return &transientState{
		contracts: make(map[primitives.ContractName]map[string]*keyValuePair),
	}
}

func (t *transientState) getValue(contractName primitives.ContractName, key []byte) ([]byte, bool) {
	records, found := t.contracts[contractName]
	if !found {
		return nil, false
	}
	record, found := records[string(key)]
	if !found {
		return nil, false
	}
	return record.value, true
}

// a clean value (read-through cache) replaces a dirty one, so only the last write decides dirtiness
func (t *transientState) setValue(contractName primitives.ContractName, key []byte, value []byte, isDirty bool) {
	records, found := t.contracts[contractName]
	if !found {
		records = make(map[string]*keyValuePair)
		t.contracts[contractName] = records
		t.contractSortOrder = append(t.contractSortOrder, contractName)
	}
	records[string(key)] = &keyValuePair{key, value, isDirty}
}

// visits dirty keys in key order so committed diffs are deterministic
func (t *transientState) forDirty(contractName primitives.ContractName, f func(key []byte, value []byte)) {
	records, found := t.contracts[contractName]
	if !found {
		return
	}
	keys := make([]string, 0, len(records))
	for key, record := range records {
		if record.isDirty {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		f(records[key].key, records[key].value)
	}
}

func (t *transientState) isDirty() bool {
	for _, records := range t.contracts {
		for _, record := range records {
			if record.isDirty {
				return true
			}
		}
	}
	return false
}

func (t *transientState) String() string {
	b := strings.Builder{}
	for _, contractName := range t.contractSortOrder {
		t.forDirty(contractName, func(key []byte, value []byte) {
			b.WriteString(fmt.Sprintf("%s:%x=%x\n", contractName, key, value))
		})
	}
	return b.String()
}
