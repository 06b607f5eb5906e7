// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"encoding/hex"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/orbs-network/orbs-counter-go/services"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"math"
	"strconv"
	"strings"
)

const ARGUMENT_TYPE_UINT32 string = "uint32"
const ARGUMENT_TYPE_UINT64 string = "uint64"
const ARGUMENT_TYPE_STRING string = "string"
const ARGUMENT_TYPE_BYTES string = "bytes"

// Bytes are hex and are converted to []byte after json unmarshal
type MethodArgument struct {
	Name  string
	Type  string
	Value interface{}
}

type MethodRequest struct {
	ContractName string
	MethodName   string
	Arguments    []MethodArgument
}

type DiagnosticEvent struct {
	ContractName             string
	InSuccessfulContractCall bool
	Topics                   []string
	Data                     string
}

type MethodResponse struct {
	CallResult       string
	OutputArguments  []MethodArgument
	DiagnosticEvents []DiagnosticEvent
	BlockHeight      uint64
	Error            string `json:",omitempty"`
}

// Value is nil when the key holds nothing
type StateResponse struct {
	ContractName string
	Key          string
	Value        *MethodArgument
	BlockHeight  uint64
}

func (ma *MethodArgument) String() string {
	var argumentValue string
	switch ma.Type {
	case ARGUMENT_TYPE_UINT32, ARGUMENT_TYPE_UINT64, ARGUMENT_TYPE_STRING, ARGUMENT_TYPE_BYTES:
		argumentValue = fmt.Sprintf("%v", ma.Value)
	default:
		argumentValue = "<nil>"
	}

	return ma.Name + ":" + argumentValue
}

func CallResultName(result protocol.ExecutionResult) string {
	return strings.TrimPrefix(result.String(), "EXECUTION_RESULT_")
}

func ConvertArguments(args []MethodArgument) (*protocol.ArgumentArray, error) {
	builders := make([]*protocol.ArgumentBuilder, 0, len(args))
	for i, arg := range args {
		builder, err := convertArgument(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d (%s)", i, arg.Name)
		}
		builders = append(builders, builder)
	}
	return (&protocol.ArgumentArrayBuilder{Arguments: builders}).Build(), nil
}

func convertArgument(arg MethodArgument) (*protocol.ArgumentBuilder, error) {
	switch arg.Type {
	case ARGUMENT_TYPE_UINT32:
		v, err := toUint(arg.Value, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(v)}, nil
	case ARGUMENT_TYPE_UINT64:
		v, err := toUint(arg.Value, math.MaxUint64)
		if err != nil {
			return nil, err
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: v}, nil
	case ARGUMENT_TYPE_STRING:
		s, ok := arg.Value.(string)
		if !ok {
			return nil, errors.Errorf("string value expected, got %T", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: s}, nil
	case ARGUMENT_TYPE_BYTES:
		s, ok := arg.Value.(string)
		if !ok {
			return nil, errors.Errorf("hex string value expected, got %T", arg.Value)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(err, "could not decode hex string")
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: b}, nil
	default:
		return nil, errors.Errorf("unknown argument type '%s'", arg.Type)
	}
}

func toUint(value interface{}, max uint64) (uint64, error) {
	var v uint64
	switch n := value.(type) {
	case uint32:
		v = uint64(n)
	case uint64:
		v = n
	case int:
		if n < 0 {
			return 0, errors.Errorf("negative value %d", n)
		}
		v = uint64(n)
	case float64:
		if n < 0 || n != math.Trunc(n) || n >= float64(max)+1 {
			return 0, errors.Errorf("value %v is not an unsigned integer in range", n)
		}
		v = uint64(n)
	case json.Number:
		return parseUint(n.String(), max)
	case string:
		return parseUint(n, max)
	default:
		return 0, errors.Errorf("numeric value expected, got %T", value)
	}
	if v > max {
		return 0, errors.Errorf("value %d out of range", v)
	}
	return v, nil
}

func parseUint(s string, max uint64) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "value '%s' is not an unsigned integer", s)
	}
	if v > max {
		return 0, errors.Errorf("value %d out of range", v)
	}
	return v, nil
}

func ConvertArgument(arg *protocol.Argument) MethodArgument {
	methodArg := MethodArgument{}
	switch {
	case arg.IsTypeUint32Value():
		methodArg.Type = ARGUMENT_TYPE_UINT32
		methodArg.Value = arg.Uint32Value()
	case arg.IsTypeUint64Value():
		methodArg.Type = ARGUMENT_TYPE_UINT64
		methodArg.Value = arg.Uint64Value()
	case arg.IsTypeStringValue():
		methodArg.Type = ARGUMENT_TYPE_STRING
		methodArg.Value = arg.StringValue()
	case arg.IsTypeBytesValue():
		methodArg.Type = ARGUMENT_TYPE_BYTES
		methodArg.Value = hex.EncodeToString(arg.BytesValue())
	}
	return methodArg
}

func ConvertOutputArguments(args *protocol.ArgumentArray) []MethodArgument {
	outputArguments := []MethodArgument{}
	if args == nil {
		return outputArguments
	}
	for iter := args.ArgumentsIterator(); iter.HasNext(); {
		outputArguments = append(outputArguments, ConvertArgument(iter.NextArguments()))
	}
	return outputArguments
}

func ConvertRunMethodOutput(output *services.RunMethodOutput) *MethodResponse {
	events := make([]DiagnosticEvent, 0, len(output.DiagnosticEvents))
	for _, event := range output.DiagnosticEvents {
		events = append(events, DiagnosticEvent{
			ContractName:             string(event.ContractName),
			InSuccessfulContractCall: event.InSuccessfulContractCall,
			Topics:                   event.Topics,
			Data:                     event.Data,
		})
	}

	return &MethodResponse{
		CallResult:       CallResultName(output.CallResult),
		OutputArguments:  ConvertOutputArguments(output.OutputArgumentArray),
		DiagnosticEvents: events,
		BlockHeight:      uint64(output.BlockHeight),
	}
}
