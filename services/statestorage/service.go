// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-counter-go/instrumentation/logfields"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("state-storage")

type metrics struct {
	readKeysTime    *metric.Histogram
	commitTime      *metric.Histogram
	lastBlockHeight *metric.Gauge
	committedKeys   *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		readKeysTime:    m.NewLatency("StateStorage.ReadKeys.Time.Millis", 5*time.Second),
		commitTime:      m.NewLatency("StateStorage.CommitStateDiff.Time.Millis", 5*time.Second),
		lastBlockHeight: m.NewGauge("StateStorage.BlockHeight"),
		committedKeys:   m.NewGauge("StateStorage.CommittedKeys.Count"),
	}
}

type Service interface {
	services.StateStorage
	Dump() string
}

type service struct {
	logger  log.Logger
	metrics *metrics

	mutex       sync.RWMutex
	persistence adapter.StatePersistence
	blockHeight primitives.BlockHeight
}

func NewStateStorage(persistence adapter.StatePersistence, parentLogger log.Logger, metricFactory metric.Factory) (Service, error) {
	height, err := persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read state storage metadata")
	}

	logger := parentLogger.WithTags(LogTag)
	logger.Info("state storage loaded", logfields.BlockHeight(height))

	s := &service{
		logger:      logger,
		metrics:     newMetrics(metricFactory),
		persistence: persistence,
		blockHeight: height,
	}
	s.metrics.lastBlockHeight.Update(int64(height))

	return s, nil
}

func (s *service) ReadKeys(ctx context.Context, input *services.ReadKeysInput) (*services.ReadKeysOutput, error) {
	if input.ContractName == "" {
		return nil, errors.Errorf("missing contract name")
	}

	start := time.Now()
	defer s.metrics.readKeysTime.RecordSince(start)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]*protocol.StateRecord, 0, len(input.Keys))
	for _, key := range input.Keys {
		value, found, err := s.persistence.Read(input.ContractName, key.KeyForMap())
		if err != nil {
			return nil, errors.Wrapf(err, "persistence layer error while reading contract '%s'", input.ContractName)
		}
		if !found {
			value = []byte{}
		}
		records = append(records, (&protocol.StateRecordBuilder{
			Key:   key,
			Value: value,
		}).Build())
	}

	return &services.ReadKeysOutput{
		StateRecords: records,
		BlockHeight:  s.blockHeight,
	}, nil
}

// every commit advances the height by one
func (s *service) CommitStateDiff(ctx context.Context, input *services.CommitStateDiffInput) (*services.CommitStateDiffOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	start := time.Now()
	defer s.metrics.commitTime.RecordSince(start)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	diff, keyCount := inflateChainState(input.ContractStateDiffs)
	nextHeight := s.blockHeight + 1
	if err := s.persistence.Write(nextHeight, diff); err != nil {
		return nil, errors.Wrapf(err, "failed to write state for height %d", nextHeight)
	}

	s.blockHeight = nextHeight
	s.metrics.lastBlockHeight.Update(int64(nextHeight))
	s.metrics.committedKeys.Add(int64(keyCount))
	logger.Info("committed state diff", logfields.BlockHeight(nextHeight), log.Int("keys", keyCount))

	return &services.CommitStateDiffOutput{
		BlockHeight: nextHeight,
	}, nil
}

func (s *service) GetBlockHeight(ctx context.Context, input *services.GetBlockHeightInput) (*services.GetBlockHeightOutput, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return &services.GetBlockHeightOutput{
		BlockHeight: s.blockHeight,
	}, nil
}

func (s *service) Dump() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if dumper, ok := s.persistence.(adapter.Dumper); ok {
		return dumper.Dump()
	}
	return fmt.Sprintf("{height: %v, data: unavailable}", s.blockHeight)
}

func inflateChainState(csd []*protocol.ContractStateDiff) (adapter.ChainState, int) {
	result := make(adapter.ChainState)
	keyCount := 0
	for _, stateDiffs := range csd {
		contract := stateDiffs.ContractName()
		contractMap, ok := result[contract]
		if !ok {
			contractMap = make(map[string][]byte)
			result[contract] = contractMap
		}
		for i := stateDiffs.StateDiffsIterator(); i.HasNext(); {
			r := i.NextStateDiffs()
			contractMap[hash.Ripemd160Sha256(r.Key()).KeyForMap()] = r.Value()
			keyCount++
		}
	}
	return result, keyCount
}
