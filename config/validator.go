// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"github.com/pkg/errors"
	"reflect"
	"runtime"
	"strings"
	"time"
)

func ValidateNodeConfig(cfg NodeConfig) error {
	switch cfg.StateStoragePersistence() {
	case PERSISTENCE_MEMORY:
	case PERSISTENCE_LEVELDB:
		if cfg.StateStorageDataDir() == "" {
			return errors.Errorf("%s persistence requires %s", PERSISTENCE_LEVELDB, STATE_STORAGE_DATA_DIR)
		}
	case PERSISTENCE_REDIS:
		if cfg.StateStorageRedisAddress() == "" {
			return errors.Errorf("%s persistence requires %s", PERSISTENCE_REDIS, STATE_STORAGE_REDIS_ADDRESS)
		}
	default:
		return errors.Errorf("unknown state storage persistence '%s'", cfg.StateStoragePersistence())
	}

	if cfg.HttpRequestsPerSecond() == 0 {
		return errors.Errorf("%s must be positive", HTTP_REQUESTS_PER_SECOND)
	}

	if cfg.HttpRequestsBurst() == 0 {
		return errors.Errorf("%s must be positive", HTTP_REQUESTS_BURST)
	}

	if err := requirePositive(cfg.ProcessorCallTimeout); err != nil {
		return err
	}

	return requireGT(cfg.GracefulShutdownTimeout, cfg.ProcessorCallTimeout, "shutdown must leave time for an in-flight call to finish")
}

func requirePositive(d func() time.Duration) error {
	if d() <= 0 {
		return errors.Errorf("%s must be positive, got %s", funcName(d), d())
	}
	return nil
}

func requireGT(d1 func() time.Duration, d2 func() time.Duration, msg string) error {
	if d1() <= d2() {
		return errors.Errorf("%s: %s=%s, %s=%s", msg, funcName(d1), d1(), funcName(d2), d2())
	}
	return nil
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
