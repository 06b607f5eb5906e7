// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package with

import (
	"github.com/orbs-network/scribe/log"
	"testing"
)

type LoggingHarness struct {
	Logger     log.Logger
	testOutput *log.TestOutput
	T          testing.TB
}

func (h *LoggingHarness) AllowErrorsMatching(pattern string) {
	h.testOutput.AllowErrorsMatching(pattern)
}

func (h *LoggingHarness) HasErrors() bool {
	return h.testOutput.HasErrors()
}

// every line is tagged with the test name so interleaved parallel output stays readable
func Logging(tb testing.TB, f func(harness *LoggingHarness)) {
	testOutput := log.NewTestOutput(tb, log.NewHumanReadableFormatter())
	h := &LoggingHarness{
		Logger:     log.GetLogger().WithTags(log.String("test", tb.Name())).WithOutput(testOutput),
		testOutput: testOutput,
		T:          tb,
	}
	defer testOutput.TestTerminated()
	f(h)
	RequireNoUnexpectedErrors(tb, testOutput)
}

type Fataler interface {
	Fatal(args ...interface{})
}

type ErrorTracker interface {
	HasErrors() bool
}

func RequireNoUnexpectedErrors(f Fataler, errorTracker ErrorTracker) {
	if errorTracker.HasErrors() {
		f.Fatal("Test failed; encountered unexpected errors")
	}
}
