// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"bytes"
	"fmt"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-counter-go/instrumentation/metric"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var LogTag = log.Service("state-persistence-leveldb")

const stateDbDirName = "state"

var (
	stateKeyPrefix = []byte("s/")
	heightKey      = []byte("m/height")
)

type metrics struct {
	writeTime     *metric.Histogram
	sizeOnDiskKB  *metric.Gauge
	writtenBlocks *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		writeTime:     m.NewLatency("StateStoragePersistence.LevelDB.WriteTime.Millis", 5*time.Second),
		sizeOnDiskKB:  m.NewGauge("StateStoragePersistence.LevelDB.SizeOnDisk.KB"),
		writtenBlocks: m.NewGauge("StateStoragePersistence.LevelDB.WrittenBlocks.Count"),
	}
}

type LevelDbStatePersistence struct {
	logger  log.Logger
	metrics *metrics
	path    string

	mutex sync.RWMutex
	db    *leveldb.DB
}

func NewStatePersistence(dataDir string, parentLogger log.Logger, metricFactory metric.Factory) (*LevelDbStatePersistence, error) {
	path := filepath.Join(dataDir, stateDbDirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create data dir %s", dataDir)
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %s", path)
	}

	logger := parentLogger.WithTags(LogTag, log.String("path", path))
	logger.Info("opened state database")

	return &LevelDbStatePersistence{
		logger:  logger,
		metrics: newMetrics(metricFactory),
		path:    path,
		db:      db,
	}, nil
}

func stateKey(contract primitives.ContractName, key string) []byte {
	res := make([]byte, 0, len(stateKeyPrefix)+len(contract)+1+len(key))
	res = append(res, stateKeyPrefix...)
	res = append(res, contract...)
	res = append(res, '/')
	return append(res, key...)
}

func encodeHeight(height primitives.BlockHeight) []byte {
	res := make([]byte, 8)
	membuffers.WriteUint64(res, uint64(height))
	return res
}

func (sp *LevelDbStatePersistence) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	start := time.Now()
	defer sp.metrics.writeTime.RecordSince(start)

	batch := new(leveldb.Batch)
	for contract, records := range diff {
		for key, value := range records {
			if adapter.IsZeroValue(value) {
				batch.Delete(stateKey(contract, key))
			} else {
				batch.Put(stateKey(contract, key), value)
			}
		}
	}
	batch.Put(heightKey, encodeHeight(height))

	if err := sp.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(err, "failed to write state diff for height %d", height)
	}

	sp.metrics.writtenBlocks.Inc()
	sp.reportSize()
	return nil
}

func (sp *LevelDbStatePersistence) reportSize() {
	sizes, err := sp.db.SizeOf([]util.Range{{Start: nil, Limit: nil}})
	if err != nil {
		sp.logger.Info("failed to measure state database size", log.Error(err))
		return
	}
	sp.metrics.sizeOnDiskKB.Update(sizes.Sum() / 1024)
}

func (sp *LevelDbStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	value, err := sp.db.Get(stateKey(contract, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key of contract %s", contract)
	}
	return value, true, nil
}

func (sp *LevelDbStatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	value, err := sp.db.Get(heightKey, nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read state height")
	}
	if len(value) != 8 {
		return 0, errors.Errorf("corrupt state height record of %d bytes", len(value))
	}
	return primitives.BlockHeight(membuffers.GetUint64(value)), nil
}

func (sp *LevelDbStatePersistence) Close() error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	sp.logger.Info("closing state database")
	return sp.db.Close()
}

func (sp *LevelDbStatePersistence) Dump() string {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	height, _ := sp.db.Get(heightKey, nil)

	output := strings.Builder{}
	output.WriteString("{")
	if len(height) == 8 {
		output.WriteString(fmt.Sprintf("height: %v, data: {", membuffers.GetUint64(height)))
	} else {
		output.WriteString("height: 0, data: {")
	}

	// keys come back sorted, so records of a contract are contiguous
	iter := sp.db.NewIterator(util.BytesPrefix(stateKeyPrefix), nil)
	defer iter.Release()
	currentContract := ""
	for iter.Next() {
		rest := iter.Key()[len(stateKeyPrefix):]
		separator := bytes.IndexByte(rest, '/')
		if separator < 0 {
			continue
		}
		contract, key := string(rest[:separator]), rest[separator+1:]
		if contract != currentContract {
			if currentContract != "" {
				output.WriteString("},")
			}
			output.WriteString(contract + ":{")
			currentContract = contract
		}
		output.WriteString(fmt.Sprintf("%x:%x,", key, iter.Value()))
	}
	if currentContract != "" {
		output.WriteString("},")
	}
	output.WriteString("}}")
	return output.String()
}
