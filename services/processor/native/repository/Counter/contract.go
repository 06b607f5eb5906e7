// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package counter

import (
	"fmt"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"math"
)

const COUNTER_KEY = "COUNTER"

var ErrCounterOverflow = errors.New("counter reached the maximum uint32 value")

var CONTRACT = types.ContractInfo{
	Name:       "Counter",
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		METHOD_INCREMENT.Name: METHOD_INCREMENT,
		METHOD_GET.Name:       METHOD_GET,
	},
	InitSingleton: newContract,
}

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

///////////////////////////////////////////////////////////////////////////

var METHOD_INCREMENT = types.MethodInfo{
	Name:           "increment",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).increment,
}

func (c *contract) increment(ctx types.Context) (uint32, error) {
	count, err := c.current(ctx)
	if err != nil {
		return 0, err
	}

	c.Log.Info(ctx, fmt.Sprintf("count: %d", count))

	if count == math.MaxUint32 {
		return 0, ErrCounterOverflow
	}
	count++

	if err := c.State.WriteUint32ByKey(ctx, COUNTER_KEY, count); err != nil {
		return 0, err
	}
	return count, nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET = types.MethodInfo{
	Name:           "get",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).get,
}

func (c *contract) get(ctx types.Context) (uint32, error) {
	return c.current(ctx)
}

func (c *contract) current(ctx types.Context) (uint32, error) {
	exists, err := c.State.Has(ctx, COUNTER_KEY)
	if err != nil || !exists {
		return 0, err
	}
	return c.State.ReadUint32ByKey(ctx, COUNTER_KEY)
}
