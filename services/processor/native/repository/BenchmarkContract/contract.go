// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package benchmarkcontract

import (
	"errors"
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// exercises every argument kind and failure mode the native processor supports
var CONTRACT = types.ContractInfo{
	Name:       "BenchmarkContract",
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		METHOD_INIT.Name:               METHOD_INIT,
		METHOD_ADD.Name:                METHOD_ADD,
		METHOD_SET.Name:                METHOD_SET,
		METHOD_GET.Name:                METHOD_GET,
		METHOD_ARGTYPES.Name:           METHOD_ARGTYPES,
		METHOD_THROW.Name:              METHOD_THROW,
		METHOD_PANIC.Name:              METHOD_PANIC,
		METHOD_INVALID_NOERROR.Name:    METHOD_INVALID_NOERROR,
		METHOD_INVALID_NOCONTEXT.Name:  METHOD_INVALID_NOCONTEXT,
		METHOD_SET_THEN_THROW.Name:     METHOD_SET_THEN_THROW,
		METHOD_SET_WRONG_TYPE_KEY.Name: METHOD_SET_WRONG_TYPE_KEY,
	},
	InitSingleton: newContract,
}

const EXAMPLE_KEY = "example-key"

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

///////////////////////////////////////////////////////////////////////////

var METHOD_INIT = types.MethodInfo{
	Name:           "_init",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract)._init,
}

func (c *contract) _init(ctx types.Context) error {
	return nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_ADD = types.MethodInfo{
	Name:           "add",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).add,
}

func (c *contract) add(ctx types.Context, a uint64, b uint64) (uint64, error) {
	return a + b, nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_SET = types.MethodInfo{
	Name:           "set",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).set,
}

func (c *contract) set(ctx types.Context, a uint64) error {
	return c.State.WriteUint64ByKey(ctx, EXAMPLE_KEY, a)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET = types.MethodInfo{
	Name:           "get",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).get,
}

func (c *contract) get(ctx types.Context) (uint64, error) {
	return c.State.ReadUint64ByKey(ctx, EXAMPLE_KEY)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_ARGTYPES = types.MethodInfo{
	Name:           "argTypes",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).argTypes,
}

func (c *contract) argTypes(ctx types.Context, a1 uint32, a2 uint64, a3 string, a4 []byte) (uint32, uint64, string, []byte, error) {
	return a1 + 1, a2 + 1, a3 + "1", append(a4, 0x01), nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_THROW = types.MethodInfo{
	Name:           "throw",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).throw,
}

func (c *contract) throw(ctx types.Context) error {
	return errors.New("contract returns error")
}

///////////////////////////////////////////////////////////////////////////

var METHOD_PANIC = types.MethodInfo{
	Name:           "panic",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).panic,
}

func (c *contract) panic(ctx types.Context) error {
	panic("contract panicked")
}

///////////////////////////////////////////////////////////////////////////

var METHOD_SET_THEN_THROW = types.MethodInfo{
	Name:           "setThenThrow",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).setThenThrow,
}

func (c *contract) setThenThrow(ctx types.Context, a uint64) error {
	if err := c.State.WriteUint64ByKey(ctx, EXAMPLE_KEY, a); err != nil {
		return err
	}
	c.Log.Info(ctx, "wrote a value, about to fail")
	return errors.New("contract failed after writing")
}

///////////////////////////////////////////////////////////////////////////

var METHOD_SET_WRONG_TYPE_KEY = types.MethodInfo{
	Name:           "setString",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).setString,
}

// lets tests plant a non-uint32 value under an arbitrary key of this contract
func (c *contract) setString(ctx types.Context, key string, value string) error {
	return c.State.WriteStringByKey(ctx, key, value)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_INVALID_NOERROR = types.MethodInfo{
	Name:           "invalidNoError",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).invalidNoError,
}

func (c *contract) invalidNoError(ctx types.Context) {
	return
}

///////////////////////////////////////////////////////////////////////////

var METHOD_INVALID_NOCONTEXT = types.MethodInfo{
	Name:           "invalidNoContext",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).invalidNoContext,
}

func (c *contract) invalidNoContext() error {
	return nil
}
