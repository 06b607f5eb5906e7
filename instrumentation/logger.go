// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package instrumentation

import (
	"github.com/orbs-network/orbs-counter-go/config"
	"github.com/orbs-network/orbs-counter-go/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"os"
	"time"
)

const bootstrapLogPath = "./counter-node-bootstrap.log"

func GetBootstrapCrashLogger() log.Logger {
	logFile, err := os.OpenFile(bootstrapLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}

	fileWriter := log.NewTruncatingFileWriter(logFile, 24*time.Hour)
	outputs := []log.Output{
		log.NewFormattingOutput(fileWriter, log.NewHumanReadableFormatter()),
		log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter()),
	}

	return log.GetLogger().WithOutput(outputs...)
}

type LoggerConfig interface {
	LoggerFullLog() bool
	LoggerFileTruncationInterval() time.Duration
}

func GetLogger(path string, silent bool, cfg LoggerConfig) log.Logger {
	outputs := make([]log.Output, 0, 2)

	if !silent {
		outputs = append(outputs, log.NewFormattingOutput(os.Stdout, log.NewJsonFormatter()))
	}

	if path != "" {
		logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err)
		}

		fileWriter := log.NewTruncatingFileWriter(logFile, cfg.LoggerFileTruncationInterval())
		outputs = append(outputs, log.NewFormattingOutput(fileWriter, log.NewJsonFormatter().WithTimestampColumn("@timestamp")))
	}

	logger := log.GetLogger().WithOutput(outputs...)

	conditionalFilter := log.NewConditionalFilter(false, nil)
	if !cfg.LoggerFullLog() {
		// contract log lines are the node's business output, keep them next to errors
		conditionalFilter = log.NewConditionalFilter(true, log.Or(log.OnlyErrors(), log.MatchField(virtualmachine.ContractLogTag)))
	}

	return logger.WithFilters(conditionalFilter)
}

var _ LoggerConfig = config.NodeConfig(nil)
