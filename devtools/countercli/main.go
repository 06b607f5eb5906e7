// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package main

import (
	"fmt"
	"github.com/orbs-network/orbs-counter-go/devtools/countercli/commands"
	"github.com/orbs-network/scribe/log"
	"os"
)

// countercli run call|send path/to/operation.json [-host=<http://....>]
// countercli state ContractName KEY [-host=<http://....>]

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Welcome to countercli")
		fmt.Println("Example usage:")
		fmt.Println("")
		fmt.Println("$ countercli run send path/to/operation.json")
		fmt.Println("  Perform a contract method which mutates state")
		fmt.Println("")
		fmt.Println("$ countercli run call path/to/operation.json")
		fmt.Println("  Perform a contract method which reads from state")
		fmt.Println("")
		fmt.Println("$ countercli state Counter COUNTER")
		fmt.Println("  Print the value stored under a contract key")
		fmt.Println("")
		os.Exit(0)
	}

	runner := &commands.CommandRunner{
		Logger: log.GetLogger().WithOutput(log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter())),
	}

	var output string
	var err error

	switch os.Args[1] {
	case "run":
		output, err = runner.HandleRunCommand(os.Args[2:])
	case "state":
		output, err = runner.HandleStateCommand(os.Args[2:])
	default:
		output = commands.ShowUsage()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(output)
}
