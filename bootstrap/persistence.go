// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter/leveldb"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter/redis"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

func NewStatePersistence(ctx context.Context, cfg config.StateStorageConfig, logger log.Logger, metricFactory metric.Factory) (adapter.StatePersistence, error) {
	switch cfg.StateStoragePersistence() {
	case config.PERSISTENCE_MEMORY:
		return memory.NewStatePersistence(metricFactory), nil
	case config.PERSISTENCE_LEVELDB:
		return leveldb.NewStatePersistence(cfg.StateStorageDataDir(), logger, metricFactory)
	case config.PERSISTENCE_REDIS:
		return redis.NewStatePersistence(ctx, cfg.StateStorageRedisAddress(), cfg.StateStorageRedisKeyPrefix(), logger, metricFactory)
	default:
		return nil, errors.Errorf("unknown state storage persistence '%s'", cfg.StateStoragePersistence())
	}
}
