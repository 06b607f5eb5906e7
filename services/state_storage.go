// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package services

import (
	"context"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-counter-go/crypto/hash"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

type StateStorage interface {
	ReadKeys(ctx context.Context, input *ReadKeysInput) (*ReadKeysOutput, error)
	CommitStateDiff(ctx context.Context, input *CommitStateDiffInput) (*CommitStateDiffOutput, error)
	GetBlockHeight(ctx context.Context, input *GetBlockHeightInput) (*GetBlockHeightOutput, error)
}

type ReadKeysInput struct {
	ContractName primitives.ContractName
	Keys         []hash.Ripemd160Sha256
}

// one record per requested key, in request order; absent keys carry an empty value
type ReadKeysOutput struct {
	StateRecords []*protocol.StateRecord
	BlockHeight  primitives.BlockHeight
}

type CommitStateDiffInput struct {
	ContractStateDiffs []*protocol.ContractStateDiff
}

type CommitStateDiffOutput struct {
	BlockHeight primitives.BlockHeight
}

type GetBlockHeightInput struct{}

type GetBlockHeightOutput struct {
	BlockHeight primitives.BlockHeight
}

type MockStateStorage struct {
	mock.Mock
}

func (m *MockStateStorage) ReadKeys(ctx context.Context, input *ReadKeysInput) (*ReadKeysOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*ReadKeysOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *MockStateStorage) CommitStateDiff(ctx context.Context, input *CommitStateDiffInput) (*CommitStateDiffOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*CommitStateDiffOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (m *MockStateStorage) GetBlockHeight(ctx context.Context, input *GetBlockHeightInput) (*GetBlockHeightOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*GetBlockHeightOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}
