// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-counter-go/services/statestorage"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
)

type driver struct {
	service     statestorage.Service
	persistence adapter.StatePersistence
}

func newStateStorageDriver(logger log.Logger) *driver {
	return newStateStorageDriverWithPersistence(memory.NewStatePersistence(metric.NewRegistry()), logger)
}

func newStateStorageDriverWithPersistence(persistence adapter.StatePersistence, logger log.Logger) *driver {
	service, err := statestorage.NewStateStorage(persistence, logger, metric.NewRegistry())
	if err != nil {
		panic(err)
	}
	return &driver{service: service, persistence: persistence}
}

func address(key string) hash.Ripemd160Sha256 {
	return hash.CalcRipemd160Sha256([]byte(key))
}

func (d *driver) readSingleKey(ctx context.Context, contract string, key string) ([]byte, error) {
	out, err := d.service.ReadKeys(ctx, &services.ReadKeysInput{ContractName: primitives.ContractName(contract), Keys: []hash.Ripemd160Sha256{address(key)}})
	if err != nil {
		return nil, err
	}
	return out.StateRecords[0].Value(), nil
}

func (d *driver) commit(ctx context.Context, contract string, keyValues ...interface{}) (primitives.BlockHeight, error) {
	records := []*protocol.StateRecordBuilder{}
	for i := 0; i < len(keyValues); i += 2 {
		records = append(records, &protocol.StateRecordBuilder{Key: address(keyValues[i].(string)), Value: keyValues[i+1].([]byte)})
	}

	out, err := d.service.CommitStateDiff(ctx, &services.CommitStateDiffInput{
		ContractStateDiffs: []*protocol.ContractStateDiff{(&protocol.ContractStateDiffBuilder{
			ContractName: primitives.ContractName(contract),
			StateDiffs:   records,
		}).Build()},
	})
	if err != nil {
		return 0, err
	}
	return out.BlockHeight, nil
}

func (d *driver) blockHeight(ctx context.Context) primitives.BlockHeight {
	out, err := d.service.GetBlockHeight(ctx, &services.GetBlockHeightInput{})
	if err != nil {
		panic(err)
	}
	return out.BlockHeight
}
