// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.



package virtualmachine

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
	"testing"
)

func requireDirtyPairs(t *testing.T, s *transientState, contract primitives.ContractName, expected []keyValuePair) {
	d := []keyValuePair{}
	s.forDirty(contract, func(key []byte, value []byte) {
		d = append(d, keyValuePair{key, value, true})
	})
	require.ElementsMatch(t, expected, d, "dirty keys should be equal")
}

func TestTransientStateReadMissingContract(t *testing.T) {
	s := newTransientState()

	_, found := s.getValue("Contract1", []byte{0x01})
	require.False(t, found, "key should not be found")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{})
}

func TestTransientStateReadMissingKey(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x02}, []byte{0x77, 0x88}, false)

	_, found := s.getValue("Contract1", []byte{0x01})
	require.False(t, found, "key should not be found")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{})
}

func TestTransientStateWriteReadKey(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x77, 0x88}, false)

	v, found := s.getValue("Contract1", []byte{0x01})
	require.True(t, found, "key should be found")
	require.Equal(t, []byte{0x77, 0x88}, v, "value should be equal")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{})
}

func TestTransientStateReplaceKey(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x77, 0x88}, false)
	s.setValue("Contract1", []byte{0x01}, []byte{0x99, 0xaa, 0xbb}, false)

	v, found := s.getValue("Contract1", []byte{0x01})
	require.True(t, found, "key should be found")
	require.Equal(t, []byte{0x99, 0xaa, 0xbb}, v, "value should be equal")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{})
}

func TestTransientStateWriteDirtyReadKeys(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x22, 0x33}, true)
	s.setValue("Contract1", []byte{0x02}, []byte{0x33, 0x44}, false)
	s.setValue("Contract1", []byte{0x03}, []byte{0x44, 0x55}, false)
	s.setValue("Contract1", []byte{0x03}, []byte{0x55, 0x66}, true)
	s.setValue("Contract1", []byte{0x04}, []byte{0x66, 0x77}, true)
	s.setValue("Contract1", []byte{0x04}, []byte{0x77, 0x88}, false)
	s.setValue("Contract1", []byte{0x05}, []byte{0x88, 0x99}, true)
	s.setValue("Contract1", []byte{0x05}, []byte{0x99, 0xaa}, true)

	v, found := s.getValue("Contract1", []byte{0x01})
	require.True(t, found, "key should be found")
	require.Equal(t, []byte{0x22, 0x33}, v, "value should be equal")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{
		{[]byte{0x01}, []byte{0x22, 0x33}, true},
		{[]byte{0x03}, []byte{0x55, 0x66}, true},
		{[]byte{0x05}, []byte{0x99, 0xaa}, true},
	})
}

func TestTransientStateForDirtyVisitsKeysInOrder(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x03}, []byte{0x33}, true)
	s.setValue("Contract1", []byte{0x01}, []byte{0x11}, true)
	s.setValue("Contract1", []byte{0x02}, []byte{0x22}, true)

	keys := [][]byte{}
	s.forDirty("Contract1", func(key []byte, value []byte) {
		keys = append(keys, key)
	})
	require.Equal(t, [][]byte{{0x01}, {0x02}, {0x03}}, keys, "dirty keys should be visited sorted")
}

func TestTransientStateIsDirtyOnlyAfterDirtyWrite(t *testing.T) {
	s := newTransientState()
	require.False(t, s.isDirty(), "new state should be clean")

	s.setValue("Contract1", []byte{0x01}, []byte{0x11}, false)
	require.False(t, s.isDirty(), "cached reads should not make state dirty")

	s.setValue("Contract2", []byte{0x01}, []byte{0x11}, true)
	require.True(t, s.isDirty(), "a write should make state dirty")
	require.Equal(t, []primitives.ContractName{"Contract1", "Contract2"}, s.contractSortOrder)
}

func TestEncodeTransientStateToStateDiffsSkipsCleanContracts(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x11}, false)
	s.setValue("Contract2", []byte{0x02}, []byte{0x22}, true)

	diffs := encodeTransientStateToStateDiffs(s)
	require.Len(t, diffs, 1)
	require.Equal(t, primitives.ContractName("Contract2"), diffs[0].ContractName())

	i := diffs[0].StateDiffsIterator()
	require.True(t, i.HasNext())
	record := i.NextStateDiffs()
	require.Equal(t, []byte{0x02}, []byte(record.Key()))
	require.Equal(t, []byte{0x22}, record.Value())
	require.False(t, i.HasNext())
}
