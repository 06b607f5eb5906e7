// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-counter-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type StatePersistenceMock struct {
	mock.Mock
}

func (spm *StatePersistenceMock) Write(height primitives.BlockHeight, diff adapter.ChainState) error {
	return spm.Called(height, diff).Error(0)
}

func (spm *StatePersistenceMock) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	ret := spm.Called(contract, key)
	if value := ret.Get(0); value != nil {
		return value.([]byte), ret.Bool(1), ret.Error(2)
	}
	return nil, ret.Bool(1), ret.Error(2)
}

func (spm *StatePersistenceMock) ReadMetadata() (primitives.BlockHeight, error) {
	ret := spm.Called()
	return ret.Get(0).(primitives.BlockHeight), ret.Error(1)
}

func (spm *StatePersistenceMock) Close() error {
	return spm.Called().Error(0)
}
