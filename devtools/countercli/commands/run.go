// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package commands

import (
	"context"
	"flag"
	"github.com/goccy/go-json"
	"github.com/orbs-network/orbs-counter-go/jsonapi"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"io/ioutil"
	"time"
)

func ShowUsage() string {
	return `
Usage:  $ countercli run send path/to/send.json [-host=http://localhost:8080]
Usage:  $ countercli run call path/to/call.json [-host=http://localhost:8080]
Usage:  $ countercli state Counter COUNTER [-host=http://localhost:8080]
`
}

type CommandRunner struct {
	Logger log.Logger
}

func (r *CommandRunner) newClient(name string, args []string) (*jsonapi.Client, error) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	hostPtr := flagSet.String("host", "http://localhost:8080", "<http://....>")
	timeoutPtr := flagSet.Duration("timeout", 10*time.Second, "request timeout")

	if err := flagSet.Parse(args); err != nil {
		return nil, errors.Wrapf(err, "flag issues")
	}

	return jsonapi.NewClient(*hostPtr, *timeoutPtr, r.Logger), nil
}

func (r *CommandRunner) HandleRunCommand(args []string) (string, error) {
	if len(args) < 2 {
		return ShowUsage(), nil
	}

	runType := args[0]
	pathToJson := args[1]

	client, err := r.newClient("run", args[2:])
	if err != nil {
		return "", err
	}

	jsonBytes, err := ioutil.ReadFile(pathToJson)
	if err != nil {
		return "", errors.Wrapf(err, "could not read %s", pathToJson)
	}

	request := &jsonapi.MethodRequest{}
	if err := json.Unmarshal(jsonBytes, request); err != nil {
		return "", errors.Wrapf(err, "%s is not a valid method request", pathToJson)
	}

	var result *jsonapi.MethodResponse
	switch runType {
	case "send":
		result, err = client.Send(context.Background(), request)
	case "call":
		result, err = client.Call(context.Background(), request)
	default:
		return ShowUsage(), nil
	}
	if err != nil {
		return "", err
	}

	return toJson(result)
}

func (r *CommandRunner) HandleStateCommand(args []string) (string, error) {
	if len(args) < 2 {
		return ShowUsage(), nil
	}

	client, err := r.newClient("state", args[2:])
	if err != nil {
		return "", err
	}

	result, err := client.ReadState(context.Background(), args[0], args[1])
	if err != nil {
		return "", err
	}

	return toJson(result)
}

func toJson(v interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
