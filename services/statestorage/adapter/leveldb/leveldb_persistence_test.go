// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"testing"
)

func withDataDir(t *testing.T, f func(dataDir string)) {
	dataDir, err := ioutil.TempDir("", "counter-state-")
	require.NoError(t, err)
	defer os.RemoveAll(dataDir)
	f(dataDir)
}

func TestLevelDbWriteAndReadBack(t *testing.T) {
	withDataDir(t, func(dataDir string) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp, err := NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			defer sp.Close()

			require.NoError(t, sp.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}}}))

			value, found, err := sp.Read("Counter", "k1")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte{0x01}, value)

			_, found, err = sp.Read("Other", "k1")
			require.NoError(t, err)
			require.False(t, found, "keys should be scoped by contract")
		})
	})
}

func TestLevelDbSurvivesReopen(t *testing.T) {
	withDataDir(t, func(dataDir string) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp, err := NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			require.NoError(t, sp.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}}}))
			require.NoError(t, sp.Write(2, adapter.ChainState{"Counter": {"k1": []byte{0x02}}}))
			require.NoError(t, sp.Close())

			reopened, err := NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			defer reopened.Close()

			height, err := reopened.ReadMetadata()
			require.NoError(t, err)
			require.EqualValues(t, 2, height)

			value, found, err := reopened.Read("Counter", "k1")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte{0x02}, value)
		})
	})
}

func TestLevelDbZeroValueDeletesKey(t *testing.T) {
	withDataDir(t, func(dataDir string) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp, err := NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			defer sp.Close()

			require.NoError(t, sp.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}}}))
			require.NoError(t, sp.Write(2, adapter.ChainState{"Counter": {"k1": []byte{}}}))

			_, found, err := sp.Read("Counter", "k1")
			require.NoError(t, err)
			require.False(t, found)
			require.Equal(t, "{height: 2, data: {}}", sp.Dump())
		})
	})
}

func TestLevelDbDumpGroupsByContract(t *testing.T) {
	withDataDir(t, func(dataDir string) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp, err := NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			defer sp.Close()

			require.NoError(t, sp.Write(3, adapter.ChainState{
				"B": {"\x02": []byte{0xbb}},
				"A": {"\x02": []byte{0x22}, "\x01": []byte{0x11}},
			}))

			require.Equal(t, "{height: 3, data: {A:{01:11,02:22,},B:{02:bb,},}}", sp.Dump())
		})
	})
}

func TestLevelDbEmptyDatabaseHasHeightZero(t *testing.T) {
	withDataDir(t, func(dataDir string) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp, err := NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			defer sp.Close()

			height, err := sp.ReadMetadata()
			require.NoError(t, err)
			require.EqualValues(t, 0, height)
		})
	})
}
