// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter/leveldb"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"testing"
)

func TestReadOfUnknownKeyIsEmpty(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			d := newStateStorageDriver(parent.Logger)

			value, err := d.readSingleKey(ctx, "Counter", "COUNTER")
			require.NoError(t, err)
			require.Empty(t, value)
			require.EqualValues(t, 0, d.blockHeight(ctx))
		})
	})
}

func TestCommitThenRead(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			d := newStateStorageDriver(parent.Logger)

			height, err := d.commit(ctx, "Counter", "COUNTER", []byte{0x01})
			require.NoError(t, err)
			require.EqualValues(t, 1, height)

			value, err := d.readSingleKey(ctx, "Counter", "COUNTER")
			require.NoError(t, err)
			require.Equal(t, []byte{0x01}, value)

			value, err = d.readSingleKey(ctx, "Other", "COUNTER")
			require.NoError(t, err)
			require.Empty(t, value, "state should be scoped by contract")
		})
	})
}

func TestEachCommitAdvancesHeight(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			d := newStateStorageDriver(parent.Logger)

			for i := 1; i <= 3; i++ {
				height, err := d.commit(ctx, "Counter", "COUNTER", []byte{byte(i)})
				require.NoError(t, err)
				require.EqualValues(t, i, height)
			}
			require.EqualValues(t, 3, d.blockHeight(ctx))

			value, err := d.readSingleKey(ctx, "Counter", "COUNTER")
			require.NoError(t, err)
			require.Equal(t, []byte{0x03}, value)
		})
	})
}

func TestCommitOfEmptyValueDeletesKey(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			d := newStateStorageDriver(parent.Logger)

			_, err := d.commit(ctx, "Counter", "COUNTER", []byte{0x01})
			require.NoError(t, err)
			_, err = d.commit(ctx, "Counter", "COUNTER", []byte{})
			require.NoError(t, err)

			value, err := d.readSingleKey(ctx, "Counter", "COUNTER")
			require.NoError(t, err)
			require.Empty(t, value)
		})
	})
}

func TestLevelDbBackedStateSurvivesRestart(t *testing.T) {
	dataDir, err := ioutil.TempDir("", "counter-state-storage-")
	require.NoError(t, err)
	defer os.RemoveAll(dataDir)

	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			persistence, err := leveldb.NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			d := newStateStorageDriverWithPersistence(persistence, parent.Logger)
			_, err = d.commit(ctx, "Counter", "COUNTER", []byte{0x07})
			require.NoError(t, err)
			require.NoError(t, persistence.Close())

			reopened, err := leveldb.NewStatePersistence(dataDir, parent.Logger, metric.NewRegistry())
			require.NoError(t, err)
			defer reopened.Close()
			d = newStateStorageDriverWithPersistence(reopened, parent.Logger)

			require.EqualValues(t, 1, d.blockHeight(ctx))
			value, err := d.readSingleKey(ctx, "Counter", "COUNTER")
			require.NoError(t, err)
			require.Equal(t, []byte{0x07}, value)
		})
	})
}
