// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package redis

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func newPersistenceForTests(t *testing.T, ctx context.Context, parent *with.LoggingHarness) *RedisStatePersistence {
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		t.Skip("REDIS_ADDRESS is not set")
	}

	keyPrefix := fmt.Sprintf("counter-test-%d", time.Now().UnixNano())
	sp, err := NewStatePersistence(ctx, address, keyPrefix, parent.Logger, metric.NewRegistry())
	require.NoError(t, err)
	return sp
}

func TestRedisWriteAndReadBack(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp := newPersistenceForTests(t, ctx, parent)
			defer sp.Close()

			require.NoError(t, sp.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}}}))

			value, found, err := sp.Read("Counter", "k1")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte{0x01}, value)

			height, err := sp.ReadMetadata()
			require.NoError(t, err)
			require.EqualValues(t, 1, height)
		})
	})
}

func TestRedisZeroValueDeletesKey(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp := newPersistenceForTests(t, ctx, parent)
			defer sp.Close()

			require.NoError(t, sp.Write(1, adapter.ChainState{"Counter": {"k1": []byte{0x01}}}))
			require.NoError(t, sp.Write(2, adapter.ChainState{"Counter": {"k1": []byte{}}}))

			_, found, err := sp.Read("Counter", "k1")
			require.NoError(t, err)
			require.False(t, found)
		})
	})
}

func TestRedisEmptyDatabaseHasHeightZero(t *testing.T) {
	with.Context(func(ctx context.Context) {
		with.Logging(t, func(parent *with.LoggingHarness) {
			sp := newPersistenceForTests(t, ctx, parent)
			defer sp.Close()

			height, err := sp.ReadMetadata()
			require.NoError(t, err)
			require.EqualValues(t, 0, height)
		})
	})
}
