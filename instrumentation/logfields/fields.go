// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package logfields

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"runtime/debug"
)

func ContractName(value primitives.ContractName) *log.Field {
	return log.String("contract", string(value))
}

func MethodName(value primitives.MethodName) *log.Field {
	return log.String("method", string(value))
}

func BlockHeight(value primitives.BlockHeight) *log.Field {
	return &log.Field{Key: "block-height", Uint: uint64(value), Type: log.UintType}
}

func ContextId(value primitives.ExecutionContextId) *log.Field {
	return log.Stringable("context-id", value)
}

func ContextStringValue(ctx context.Context, key string) *log.Field {
	val := "not-found-in-context"
	if v := ctx.Value(key); v != nil {
		if vString, ok := v.(string); ok {
			val = vString
		} else {
			val = "found-in-context-but-not-string"
		}
	}
	return log.String(key, val)
}

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err), log.String("panic", "true"), log.String("stack-trace", string(debug.Stack())))
}

// GovnrErrorer reports panics recovered by supervised goroutines to the given logger
func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}
