// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"time"
)

type NodeConfig interface {
	// http server
	HttpAddress() string
	HttpProfiling() bool
	HttpRequestsPerSecond() uint32
	HttpRequestsBurst() uint32

	// state storage
	StateStoragePersistence() string
	StateStorageDataDir() string
	StateStorageRedisAddress() string
	StateStorageRedisKeyPrefix() string

	// processor
	ProcessorCallTimeout() time.Duration

	// metrics
	MetricsReportInterval() time.Duration
	SystemMetricsInterval() time.Duration

	// logger
	LoggerFullLog() bool
	LoggerFileTruncationInterval() time.Duration

	// node
	NodeName() string
	GracefulShutdownTimeout() time.Duration
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	Modify(newValues ...NodeConfigKeyValue)
}

type HttpServerConfig interface {
	HttpAddress() string
	HttpProfiling() bool
	HttpRequestsPerSecond() uint32
	HttpRequestsBurst() uint32
}

type StateStorageConfig interface {
	StateStoragePersistence() string
	StateStorageDataDir() string
	StateStorageRedisAddress() string
	StateStorageRedisKeyPrefix() string
}

type VirtualMachineConfig interface {
	ProcessorCallTimeout() time.Duration
}

type MetricsConfig interface {
	MetricsReportInterval() time.Duration
	SystemMetricsInterval() time.Duration
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

const (
	HTTP_ADDRESS             = "HTTP_ADDRESS"
	HTTP_PROFILING           = "HTTP_PROFILING"
	HTTP_REQUESTS_PER_SECOND = "HTTP_REQUESTS_PER_SECOND"
	HTTP_REQUESTS_BURST      = "HTTP_REQUESTS_BURST"

	STATE_STORAGE_PERSISTENCE      = "STATE_STORAGE_PERSISTENCE"
	STATE_STORAGE_DATA_DIR         = "STATE_STORAGE_DATA_DIR"
	STATE_STORAGE_REDIS_ADDRESS    = "STATE_STORAGE_REDIS_ADDRESS"
	STATE_STORAGE_REDIS_KEY_PREFIX = "STATE_STORAGE_REDIS_KEY_PREFIX"

	PROCESSOR_CALL_TIMEOUT = "PROCESSOR_CALL_TIMEOUT"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"
	SYSTEM_METRICS_INTERVAL = "SYSTEM_METRICS_INTERVAL"

	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"
	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"

	NODE_NAME                 = "NODE_NAME"
	GRACEFUL_SHUTDOWN_TIMEOUT = "GRACEFUL_SHUTDOWN_TIMEOUT"
)

type valueKind int

const (
	KIND_DURATION valueKind = iota
	KIND_UINT32
	KIND_STRING
	KIND_BOOL
)

// keyKinds is the declared type of every known key; environment overrides are decoded by it
var keyKinds = map[string]valueKind{
	HTTP_ADDRESS:                    KIND_STRING,
	HTTP_PROFILING:                  KIND_BOOL,
	HTTP_REQUESTS_PER_SECOND:        KIND_UINT32,
	HTTP_REQUESTS_BURST:             KIND_UINT32,
	STATE_STORAGE_PERSISTENCE:       KIND_STRING,
	STATE_STORAGE_DATA_DIR:          KIND_STRING,
	STATE_STORAGE_REDIS_ADDRESS:     KIND_STRING,
	STATE_STORAGE_REDIS_KEY_PREFIX:  KIND_STRING,
	PROCESSOR_CALL_TIMEOUT:          KIND_DURATION,
	METRICS_REPORT_INTERVAL:         KIND_DURATION,
	SYSTEM_METRICS_INTERVAL:         KIND_DURATION,
	LOGGER_FULL_LOG:                 KIND_BOOL,
	LOGGER_FILE_TRUNCATION_INTERVAL: KIND_DURATION,
	NODE_NAME:                       KIND_STRING,
	GRACEFUL_SHUTDOWN_TIMEOUT:       KIND_DURATION,
}

const (
	PERSISTENCE_MEMORY  = "memory"
	PERSISTENCE_LEVELDB = "leveldb"
	PERSISTENCE_REDIS   = "redis"
)

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableNodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) Modify(newValues ...NodeConfigKeyValue) {
	for _, kv := range newValues {
		c.kv[kv.Key] = kv.Value
	}
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) HttpProfiling() bool {
	return c.kv[HTTP_PROFILING].BoolValue
}

func (c *config) HttpRequestsPerSecond() uint32 {
	return c.kv[HTTP_REQUESTS_PER_SECOND].Uint32Value
}

func (c *config) HttpRequestsBurst() uint32 {
	return c.kv[HTTP_REQUESTS_BURST].Uint32Value
}

func (c *config) StateStoragePersistence() string {
	return c.kv[STATE_STORAGE_PERSISTENCE].StringValue
}

func (c *config) StateStorageDataDir() string {
	return c.kv[STATE_STORAGE_DATA_DIR].StringValue
}

func (c *config) StateStorageRedisAddress() string {
	return c.kv[STATE_STORAGE_REDIS_ADDRESS].StringValue
}

func (c *config) StateStorageRedisKeyPrefix() string {
	return c.kv[STATE_STORAGE_REDIS_KEY_PREFIX].StringValue
}

func (c *config) ProcessorCallTimeout() time.Duration {
	return c.kv[PROCESSOR_CALL_TIMEOUT].DurationValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) SystemMetricsInterval() time.Duration {
	return c.kv[SYSTEM_METRICS_INTERVAL].DurationValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}

func (c *config) NodeName() string {
	return c.kv[NODE_NAME].StringValue
}

func (c *config) GracefulShutdownTimeout() time.Duration {
	return c.kv[GRACEFUL_SHUTDOWN_TIMEOUT].DurationValue
}
