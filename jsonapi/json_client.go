// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"bytes"
	"context"
	"github.com/goccy/go-json"
	"github.com/orbs-network/orbs-counter-go/instrumentation/trace"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	SEND_PATH  = "/api/v1/send"
	CALL_PATH  = "/api/v1/call"
	STATE_PATH = "/api/v1/state"
)

type Client struct {
	host       string
	httpClient *http.Client
	logger     log.Logger
}

func NewClient(host string, timeout time.Duration, logger log.Logger) *Client {
	return &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithTags(log.String("adapter", "json-client")),
	}
}

// Send runs a method that may change state
func (c *Client) Send(ctx context.Context, request *MethodRequest) (*MethodResponse, error) {
	return c.runMethod(ctx, SEND_PATH, request)
}

// Call runs a method without committing state
func (c *Client) Call(ctx context.Context, request *MethodRequest) (*MethodResponse, error) {
	return c.runMethod(ctx, CALL_PATH, request)
}

func (c *Client) ReadState(ctx context.Context, contractName string, key string) (*StateResponse, error) {
	path := STATE_PATH + "/" + url.PathEscape(contractName) + "/" + url.PathEscape(key)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	res := &StateResponse{}
	if status, err := c.do(req, res); err != nil {
		return nil, err
	} else if status != http.StatusOK {
		return nil, errors.Errorf("got unexpected http status code %d", status)
	}
	return res, nil
}

func (c *Client) runMethod(ctx context.Context, path string, request *MethodRequest) (*MethodResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.logger.Info("running method", log.String("path", path), log.String("contract", request.ContractName), log.String("method", request.MethodName), trace.LogFieldFrom(req.Context()))

	res := &MethodResponse{}
	status, err := c.do(req, res)
	if err != nil {
		return nil, err
	}

	// failed executions still carry a response body
	if status != http.StatusOK && res.CallResult == "" {
		return nil, errors.Errorf("got unexpected http status code %d", status)
	}
	return res, nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	if _, ok := trace.FromContext(ctx); !ok {
		ctx = trace.NewContext(ctx, "json-client")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create request to %s", path)
	}
	req.Header.Set("Content-Type", "application/json")

	tracingContext, _ := trace.FromContext(ctx)
	tracingContext.WriteTraceToRequest(req)
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) (int, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "request to %s failed", req.URL.Path)
	}
	defer res.Body.Close()

	decoder := json.NewDecoder(res.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return res.StatusCode, errors.Wrapf(err, "could not decode response (http status %d)", res.StatusCode)
	}
	return res.StatusCode, nil
}
