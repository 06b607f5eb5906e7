// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"fmt"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
	"strings"
	"sync"
)

type metrics struct {
	numberOfKeys      *metric.Gauge
	numberOfContracts *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfKeys:      m.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count"),
		numberOfContracts: m.NewGauge("StateStoragePersistence.TotalNumberOfContracts.Count"),
	}
}

type InMemoryStatePersistence struct {
	metrics   *metrics
	mutex     sync.RWMutex
	fullState adapter.ChainState
	height    primitives.BlockHeight
}

func NewStatePersistence(metricFactory metric.Factory) *InMemoryStatePersistence {
	return &InMemoryStatePersistence{
		metrics:   newMetrics(metricFactory),
		fullState: adapter.ChainState{},
		height:    0,
	}
}

func (sp *InMemoryStatePersistence) reportSize() {
	nContracts := 0
	nKeys := 0
	for _, records := range sp.fullState {
		nContracts++
		nKeys = nKeys + len(records)
	}
	sp.metrics.numberOfKeys.Update(int64(nKeys))
	sp.metrics.numberOfContracts.Update(int64(nContracts))
}

func (sp *InMemoryStatePersistence) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	sp.height = height
	for contract, records := range diff {
		for key, value := range records {
			sp._writeOneRecord(contract, key, value)
		}
	}
	sp.reportSize()
	return nil
}

func (sp *InMemoryStatePersistence) _writeOneRecord(c primitives.ContractName, key string, value []byte) {
	if _, ok := sp.fullState[c]; !ok {
		sp.fullState[c] = map[string][]byte{}
	}

	if adapter.IsZeroValue(value) {
		delete(sp.fullState[c], key)
		if len(sp.fullState[c]) == 0 {
			delete(sp.fullState, c)
		}
		return
	}

	sp.fullState[c][key] = append([]byte{}, value...)
}

func (sp *InMemoryStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	record, ok := sp.fullState[contract][key]
	return record, ok, nil
}

func (sp *InMemoryStatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	return sp.height, nil
}

func (sp *InMemoryStatePersistence) Close() error {
	return nil
}

func (sp *InMemoryStatePersistence) Dump() string {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	output := strings.Builder{}
	output.WriteString("{")
	output.WriteString(fmt.Sprintf("height: %v, data: {", sp.height))
	contracts := make([]primitives.ContractName, 0, len(sp.fullState))
	for c := range sp.fullState {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i] < contracts[j] })
	for _, currentContract := range contracts {
		keys := make([]string, 0, len(sp.fullState[currentContract]))
		for k := range sp.fullState[currentContract] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		output.WriteString(string(currentContract) + ":{")
		for _, k := range keys {
			output.WriteString(fmt.Sprintf("%x:%x,", k, sp.fullState[currentContract][k]))
		}
		output.WriteString("},")
	}
	output.WriteString("}}")
	return output.String()
}
