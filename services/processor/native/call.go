// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/orbs-counter-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"reflect"
)

var contextType = reflect.TypeOf(types.Context(nil))
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// implementations are method expressions: receiver, context, then the call arguments
const implicitArgs = 2

func (s *service) processMethodCall(ctx types.Context, contractInstance types.Contract, methodInfo *types.MethodInfo, args *protocol.ArgumentArray, functionNameForErrors string) (contractOutputArgs *protocol.ArgumentArray, contractOutputErr error, err error) {
	defer func() {
		if r := recover(); r != nil {
			contractOutputErr = errors.Errorf("%s", r)
			contractOutputArgs = s.createMethodOutputArgsWithString(contractOutputErr.Error())
		}
	}()

	methodValue := reflect.ValueOf(methodInfo.Implementation)
	if err := verifyMethodSignature(methodValue, contractInstance, functionNameForErrors); err != nil {
		return nil, nil, err
	}

	// verify input args
	inValues, err := s.prepareMethodInputArgsForCall(methodValue.Type(), args, functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}
	inValues = append([]reflect.Value{reflect.ValueOf(contractInstance), reflect.ValueOf(ctx)}, inValues...)

	// execute the call
	outValues := methodValue.Call(inValues)

	// the last return value is always the error
	if errValue := outValues[len(outValues)-1]; !errValue.IsNil() {
		contractOutputErr = errValue.Interface().(error)
		return s.createMethodOutputArgsWithString(contractOutputErr.Error()), contractOutputErr, nil
	}

	// create output args
	contractOutputArgs, err = s.createMethodOutputArgs(outValues[:len(outValues)-1], functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}

	return contractOutputArgs, nil, nil
}

func verifyMethodSignature(methodValue reflect.Value, contractInstance types.Contract, functionNameForErrors string) error {
	if methodValue.Kind() != reflect.Func {
		return errors.Errorf("method '%s' implementation is not a func", functionNameForErrors)
	}
	methodType := methodValue.Type()
	if methodType.NumIn() < implicitArgs || !reflect.TypeOf(contractInstance).AssignableTo(methodType.In(0)) || methodType.In(1) != contextType {
		return errors.Errorf("method '%s' does not take a context as first argument", functionNameForErrors)
	}
	if methodType.NumOut() == 0 || methodType.Out(methodType.NumOut()-1) != errorType {
		return errors.Errorf("method '%s' does not return an error as last value", functionNameForErrors)
	}
	return nil
}

func (s *service) prepareMethodInputArgsForCall(methodType reflect.Type, args *protocol.ArgumentArray, functionNameForErrors string) ([]reflect.Value, error) {
	res := []reflect.Value{}
	expectedArgs := methodType.NumIn() - implicitArgs

	var arg *protocol.Argument
	argsIterator := args.ArgumentsIterator()
	for i := 0; i < expectedArgs; i++ {

		// get the next arg from the call
		if argsIterator.HasNext() {
			arg = argsIterator.NextArguments()
		} else {
			return nil, errors.Errorf("method '%s' takes %d args but received %d", functionNameForErrors, expectedArgs, i)
		}

		// translate argument type
		switch methodType.In(i + implicitArgs).Kind() {
		case reflect.Uint32:
			if !arg.IsTypeUint32Value() {
				return nil, errors.Errorf("method '%s' expects arg %d to be uint32 but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.Uint32Value()))
		case reflect.Uint64:
			if !arg.IsTypeUint64Value() {
				return nil, errors.Errorf("method '%s' expects arg %d to be uint64 but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.Uint64Value()))
		case reflect.String:
			if !arg.IsTypeStringValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be string but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.StringValue()))
		case reflect.Slice:
			if methodType.In(i+implicitArgs).Elem().Kind() != reflect.Uint8 {
				return nil, errors.Errorf("method '%s' arg %d slice type is not byte", functionNameForErrors, i)
			}
			if !arg.IsTypeBytesValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be bytes but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.BytesValue()))
		default:
			return nil, errors.Errorf("method '%s' expects arg %d to be a known type but it has %s", functionNameForErrors, i, arg.StringType())
		}
	}

	// make sure the call doesn't have any more args left
	if argsIterator.HasNext() {
		return nil, errors.Errorf("method '%s' takes %d args but received more", functionNameForErrors, expectedArgs)
	}

	return res, nil
}

func (s *service) createMethodOutputArgs(args []reflect.Value, functionNameForErrors string) (*protocol.ArgumentArray, error) {
	res := []*protocol.ArgumentBuilder{}
	for i, arg := range args {
		switch arg.Kind() {
		case reflect.Uint32:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(arg.Uint())})
		case reflect.Uint64:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: arg.Uint()})
		case reflect.String:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.String()})
		case reflect.Slice:
			if arg.Type().Elem().Kind() != reflect.Uint8 {
				return nil, errors.Errorf("method '%s' output arg %d slice type is not byte", functionNameForErrors, i)
			}
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: arg.Bytes()})
		default:
			return nil, errors.Errorf("method '%s' output arg %d is of unsupported type", functionNameForErrors, i)
		}
	}
	return (&protocol.ArgumentArrayBuilder{
		Arguments: res,
	}).Build(), nil
}

func (s *service) createMethodOutputArgsWithString(str string) *protocol.ArgumentArray {
	return (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: str},
		},
	}).Build()
}
