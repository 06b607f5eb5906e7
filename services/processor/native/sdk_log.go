// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
)

const SDK_OPERATION_NAME_LOG = primitives.ContractName("Sdk.Log")

type logSdk struct {
	s *service
}

// failures are logged and swallowed, a contract never fails because of its own log line
func (l *logSdk) Info(ctx types.Context, message string) {
	_, err := l.s.handleSdkCall(ctx, SDK_OPERATION_NAME_LOG, "info", (&protocol.ArgumentBuilder{
		Type:        protocol.ARGUMENT_TYPE_STRING_VALUE,
		StringValue: message,
	}).Build())
	if err != nil {
		l.s.logger.Info("contract log sdk call failed", log.Error(err), log.String("contract-message", message))
	}
}
