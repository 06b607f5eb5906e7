// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"context"
	"github.com/goccy/go-json"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/orbs-counter-go/test/with"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_SendPostsRequestAndDecodesResponse(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		var received MethodRequest
		var traceId string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, SEND_PATH, r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)
			traceId = r.Header.Get(trace.RequestTraceId)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"CallResult":"SUCCESS","OutputArguments":[{"Name":"","Type":"uint32","Value":4}],"DiagnosticEvents":[],"BlockHeight":4}`))
		}))
		defer server.Close()

		client := NewClient(server.URL+"/", time.Second, harness.Logger)
		res, err := client.Send(context.Background(), &MethodRequest{ContractName: "Counter", MethodName: "increment", Arguments: []MethodArgument{}})
		require.NoError(t, err)

		require.Equal(t, "Counter", received.ContractName)
		require.Equal(t, "increment", received.MethodName)
		require.NotEmpty(t, traceId, "request should carry a trace id")
		require.Equal(t, "SUCCESS", res.CallResult)
		require.EqualValues(t, 4, res.BlockHeight)
		require.Len(t, res.OutputArguments, 1)
		require.Equal(t, json.Number("4"), res.OutputArguments[0].Value)
	})
}

func TestClient_CallReturnsFailedExecutionBody(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, CALL_PATH, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"CallResult":"ERROR_INPUT","OutputArguments":[],"DiagnosticEvents":[],"BlockHeight":0,"Error":"no such method"}`))
		}))
		defer server.Close()

		res, err := NewClient(server.URL, time.Second, harness.Logger).Call(context.Background(), &MethodRequest{ContractName: "Counter", MethodName: "nope"})
		require.NoError(t, err)
		require.Equal(t, "ERROR_INPUT", res.CallResult)
		require.Equal(t, "no such method", res.Error)
	})
}

func TestClient_FailsOnUnexpectedStatusWithoutBody(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, time.Second, harness.Logger).Send(context.Background(), &MethodRequest{ContractName: "Counter", MethodName: "increment"})
		require.Error(t, err)
	})
}

func TestClient_ReadState(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, STATE_PATH+"/Counter/COUNTER", r.URL.Path)
			_, _ = w.Write([]byte(`{"ContractName":"Counter","Key":"COUNTER","Value":{"Name":"","Type":"uint32","Value":3},"BlockHeight":3}`))
		}))
		defer server.Close()

		res, err := NewClient(server.URL, time.Second, harness.Logger).ReadState(context.Background(), "Counter", "COUNTER")
		require.NoError(t, err)
		require.Equal(t, ARGUMENT_TYPE_UINT32, res.Value.Type)
		require.EqualValues(t, 3, res.BlockHeight)
	})
}
