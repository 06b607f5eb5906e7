// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package trace

import (
	"context"
	"github.com/stretchr/testify/require"
	"net/http"
	"strings"
	"testing"
)

func TestEntryPoint_DecoratesContext(t *testing.T) {
	ctx := NewContext(context.Background(), "foo")

	ep, ok := FromContext(ctx)

	require.True(t, ok)
	require.Equal(t, "foo", ep.name)
	require.NotEmpty(t, ep.requestId)
}

func TestNestedContextsRetainValue(t *testing.T) {
	ctx := NewContext(context.Background(), "foo")
	childCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ep, ok := FromContext(childCtx)

	require.True(t, ok)
	require.Equal(t, "foo", ep.name)
	require.NotEmpty(t, ep.requestId)
}

func TestPropagateContextRetainsValue(t *testing.T) {
	ctx := NewContext(context.Background(), "foo")
	ep, _ := FromContext(ctx)

	propagatedTracingContext, ok := FromContext(PropagateContext(context.Background(), ep))

	require.True(t, ok)
	require.Equal(t, "foo", propagatedTracingContext.name)
	require.Equal(t, ep.requestId, propagatedTracingContext.requestId)
}

func TestTranslateToRequestAndBack(t *testing.T) {
	ctx := NewContext(context.Background(), "foo")
	ep, _ := FromContext(ctx)

	request, _ := http.NewRequest("GET", "http://localhost/api/v1/send", nil)
	ep.WriteTraceToRequest(request)

	require.Equal(t, "foo", request.Header.Get(RequestTraceName))

	fctx := NewFromRequest(context.Background(), request)
	ep2, ok := FromContext(fctx)
	require.True(t, ok)
	require.Equal(t, ep.name, ep2.name)
	require.Equal(t, ep.requestId, ep2.requestId)
	require.True(t, ep.created.Equal(ep2.created))
}

func TestRequestWithoutTraceStartsNewOne(t *testing.T) {
	request, _ := http.NewRequest("GET", "http://localhost/api/v1/call", nil)

	ep, ok := FromContext(NewFromRequest(context.Background(), request))
	require.True(t, ok)
	require.Equal(t, "/api/v1/call", ep.name)
	require.True(t, strings.HasPrefix(ep.RequestId(), "/api/v1/call-"), "request id should start with the entry point")
}

func TestLogFieldFromContextWithoutTrace(t *testing.T) {
	field := LogFieldFrom(context.Background())
	require.Equal(t, "trace", field.Key)
	require.Equal(t, "NO-CONTEXT", field.StringVal)
}
