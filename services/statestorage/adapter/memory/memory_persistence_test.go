// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestWriteAndReadBack(t *testing.T) {
	registry := metric.NewRegistry()
	d := NewStatePersistence(registry)

	err := d.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}, "k2": []byte{0x02}}})
	require.NoError(t, err)

	value, found, err := d.Read("Counter", "k1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte{0x01}, value)

	height, err := d.ReadMetadata()
	require.NoError(t, err)
	require.EqualValues(t, 1, height)

	require.Contains(t, registry.String(), "metric StateStoragePersistence.TotalNumberOfKeys.Count: 2\n")
	require.Contains(t, registry.String(), "metric StateStoragePersistence.TotalNumberOfContracts.Count: 1\n")
}

func TestReadMissingKey(t *testing.T) {
	d := NewStatePersistence(metric.NewRegistry())

	_, found, err := d.Read("Counter", "k1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestWriteZeroValueDeletesKey(t *testing.T) {
	d := NewStatePersistence(metric.NewRegistry())
	require.NoError(t, d.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}}}))
	require.NoError(t, d.Write(2, adapter.ChainState{"Counter": {"k1": []byte{}}}))

	_, found, err := d.Read("Counter", "k1")
	require.NoError(t, err)
	require.False(t, found, "empty value should delete the key")
	require.Equal(t, "{height: 2, data: {}}", d.Dump())
}

func TestDumpIsSorted(t *testing.T) {
	d := NewStatePersistence(metric.NewRegistry())
	require.NoError(t, d.Write(3, adapter.ChainState{
		"B": {"\x02": []byte{0xbb}},
		"A": {"\x02": []byte{0x22}, "\x01": []byte{0x11}},
	}))

	require.Equal(t, "{height: 3, data: {A:{01:11,02:22,},B:{02:bb,},}}", d.Dump())
}
