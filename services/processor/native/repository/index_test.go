// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package repository

import (
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
)

var contextType = reflect.TypeOf(types.Context(nil))
var errorType = reflect.TypeOf((*error)(nil)).Elem()

func TestContractsAreIndexedByTheirNames(t *testing.T) {
	for name, contract := range Contracts {
		require.Equal(t, name, contract.Name, "contract indexed under the wrong name")
		require.NotNil(t, contract.InitSingleton, "contract %s has no constructor", name)
		for methodName, method := range contract.Methods {
			require.Equal(t, methodName, method.Name, "method of %s indexed under the wrong name", name)
		}
	}
}

func TestCounterMethodsHaveContractSignature(t *testing.T) {
	for _, method := range Contracts["Counter"].Methods {
		methodType := reflect.TypeOf(method.Implementation)
		require.Equal(t, reflect.Func, methodType.Kind())
		require.True(t, methodType.NumIn() >= 2, "method %s should take receiver and context", method.Name)
		require.Equal(t, contextType, methodType.In(1), "method %s second arg should be the context", method.Name)
		require.Equal(t, errorType, methodType.Out(methodType.NumOut()-1), "method %s should return an error last", method.Name)
	}
}
