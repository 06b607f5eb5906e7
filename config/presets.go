// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"time"
)

func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetBool(HTTP_PROFILING, false)
	cfg.SetUint32(HTTP_REQUESTS_PER_SECOND, 500)
	cfg.SetUint32(HTTP_REQUESTS_BURST, 100)

	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_LEVELDB)
	cfg.SetString(STATE_STORAGE_DATA_DIR, "./data")
	cfg.SetString(STATE_STORAGE_REDIS_ADDRESS, "localhost:6379")
	cfg.SetString(STATE_STORAGE_REDIS_KEY_PREFIX, "counter")

	cfg.SetDuration(PROCESSOR_CALL_TIMEOUT, 5*time.Second)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetDuration(SYSTEM_METRICS_INTERVAL, 3*time.Second)

	cfg.SetBool(LOGGER_FULL_LOG, false)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)

	cfg.SetString(NODE_NAME, "counter")
	cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, 10*time.Second)

	return cfg
}

// ForDevelopment keeps state in memory and logs everything
func ForDevelopment(httpAddress string) mutableNodeConfig {
	cfg := defaultProductionConfig()
	cfg.SetString(HTTP_ADDRESS, httpAddress)
	cfg.SetBool(HTTP_PROFILING, true)
	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_MEMORY)
	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 10*time.Second)
	return cfg
}

func ForTests() mutableNodeConfig {
	cfg := defaultProductionConfig()
	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetString(STATE_STORAGE_PERSISTENCE, PERSISTENCE_MEMORY)
	cfg.SetUint32(HTTP_REQUESTS_PER_SECOND, 10000)
	cfg.SetUint32(HTTP_REQUESTS_BURST, 10000)
	cfg.SetDuration(PROCESSOR_CALL_TIMEOUT, 1*time.Second)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 0)
	cfg.SetDuration(SYSTEM_METRICS_INTERVAL, 0)
	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, 2*time.Second)
	return cfg
}
