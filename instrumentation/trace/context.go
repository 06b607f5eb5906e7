// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package trace

import (
	"context"
	"crypto/rand"
	"github.com/oklog/ulid/v2"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type entryPointKeyType string

const entryPointKey entryPointKeyType = "ep"

const RequestId = "request-id"

const (
	RequestTraceName    = "X-COUNTER-TRACE-NAME"
	RequestTraceId      = "X-COUNTER-TRACE-ID"
	RequestTraceCreated = "X-COUNTER-TRACE-CREATED"
)

type Context struct {
	created   time.Time
	name      string
	requestId string
}

func NewContext(parent context.Context, name string) context.Context {
	now := time.Now()
	ep := &Context{
		name:      name,
		created:   now,
		requestId: name + "-" + ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
	}
	return context.WithValue(parent, entryPointKey, ep)
}

func PropagateContext(parent context.Context, tracingContext *Context) context.Context {
	return context.WithValue(parent, entryPointKey, tracingContext)
}

func FromContext(ctx context.Context) (e *Context, ok bool) {
	e, ok = ctx.Value(entryPointKey).(*Context)
	return
}

func (c *Context) RequestId() string {
	if c == nil {
		return ""
	}
	return c.requestId
}

func (c *Context) NestedFields() []*log.Field {
	if c == nil { // the tracing context was never created for this call chain
		return nil
	}

	return []*log.Field{
		log.String("entry-point", c.name),
		log.String(RequestId, c.requestId),
	}
}

func (c *Context) WriteTraceToRequest(r *http.Request) {
	r.Header.Set(RequestTraceName, c.name)
	r.Header.Set(RequestTraceId, c.requestId)
	r.Header.Set(RequestTraceCreated, c.created.Format(time.RFC3339Nano))
}

// NewFromRequest continues a trace started by a remote client, or starts a new one named after the request path
func NewFromRequest(parent context.Context, r *http.Request) context.Context {
	name := r.Header.Get(RequestTraceName)
	requestId := r.Header.Get(RequestTraceId)
	if name == "" || requestId == "" {
		return NewContext(parent, r.URL.Path)
	}

	created, err := time.Parse(time.RFC3339Nano, r.Header.Get(RequestTraceCreated))
	if err != nil {
		created = time.Now()
	}

	return PropagateContext(parent, &Context{
		name:      name,
		requestId: requestId,
		created:   created,
	})
}

func LogFieldFrom(ctx context.Context) *log.Field {
	if trace, ok := FromContext(ctx); ok {
		return &log.Field{Key: "trace", Nested: trace, Type: log.AggregateType}
	} else {
		return log.String("trace", "NO-CONTEXT")
	}
}
