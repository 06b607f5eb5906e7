// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package services

import (
	"context"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/orbs-spec/types/go/services/handlers"
)

type VirtualMachine interface {
	handlers.ContractSdkCallHandler
	RunMethod(ctx context.Context, input *RunMethodInput) (*RunMethodOutput, error)
}

type RunMethodInput struct {
	ContractName       primitives.ContractName
	MethodName         primitives.MethodName
	InputArgumentArray *protocol.ArgumentArray
	AccessScope        protocol.ExecutionAccessScope
}

type RunMethodOutput struct {
	CallResult          protocol.ExecutionResult
	OutputArgumentArray *protocol.ArgumentArray
	DiagnosticEvents    []*DiagnosticEvent
	BlockHeight         primitives.BlockHeight
}

type DiagnosticEvent struct {
	ContractName             primitives.ContractName
	InSuccessfulContractCall bool
	Topics                   []string
	Data                     string
}

type MockVirtualMachine struct {
	mock.Mock
}

func (m *MockVirtualMachine) HandleSdkCall(ctx context.Context, input *handlers.HandleSdkCallInput) (*handlers.HandleSdkCallOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*handlers.HandleSdkCallOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *MockVirtualMachine) RunMethod(ctx context.Context, input *RunMethodInput) (*RunMethodOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*RunMethodOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}
