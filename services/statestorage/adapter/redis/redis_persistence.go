// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package redis

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"time"
)

var LogTag = log.Service("state-persistence-redis")

const operationTimeout = 2 * time.Second

type metrics struct {
	writeTime *metric.Histogram
	readTime  *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		writeTime: m.NewLatency("StateStoragePersistence.Redis.WriteTime.Millis", 5*time.Second),
		readTime:  m.NewLatency("StateStoragePersistence.Redis.ReadTime.Millis", 5*time.Second),
	}
}

// keeps one hash per contract and the height under its own key, all namespaced by keyPrefix
type RedisStatePersistence struct {
	logger    log.Logger
	metrics   *metrics
	keyPrefix string
	client    redis.UniversalClient
}

func NewStatePersistence(ctx context.Context, address string, keyPrefix string, parentLogger log.Logger, metricFactory metric.Factory) (*RedisStatePersistence, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{address},
		DialTimeout:  operationTimeout,
		ReadTimeout:  operationTimeout,
		WriteTimeout: operationTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to connect to redis at %s", address)
	}

	logger := parentLogger.WithTags(LogTag, log.String("address", address), log.String("key-prefix", keyPrefix))
	logger.Info("connected to redis")

	return &RedisStatePersistence{
		logger:    logger,
		metrics:   newMetrics(metricFactory),
		keyPrefix: keyPrefix,
		client:    client,
	}, nil
}

func (sp *RedisStatePersistence) contractKey(contract primitives.ContractName) string {
	return sp.keyPrefix + ":state:" + string(contract)
}

func (sp *RedisStatePersistence) heightKey() string {
	return sp.keyPrefix + ":height"
}

func (sp *RedisStatePersistence) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	start := time.Now()
	defer sp.metrics.writeTime.RecordSince(start)

	_, err := sp.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for contract, records := range diff {
			for key, value := range records {
				if adapter.IsZeroValue(value) {
					pipe.HDel(ctx, sp.contractKey(contract), key)
				} else {
					pipe.HSet(ctx, sp.contractKey(contract), key, value)
				}
			}
		}
		pipe.Set(ctx, sp.heightKey(), uint64(height), 0)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write state diff for height %d", height)
	}
	return nil
}

func (sp *RedisStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	start := time.Now()
	defer sp.metrics.readTime.RecordSince(start)

	value, err := sp.client.HGet(ctx, sp.contractKey(contract), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key of contract %s", contract)
	}
	return value, true, nil
}

func (sp *RedisStatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	height, err := sp.client.Get(ctx, sp.heightKey()).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read state height")
	}
	return primitives.BlockHeight(height), nil
}

func (sp *RedisStatePersistence) Close() error {
	sp.logger.Info("closing redis connection")
	return sp.client.Close()
}
