// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func TestGetCPUUtilization_ReturnsOnCancel(t *testing.T) {
	if _, err := os.Stat("/proc"); os.IsNotExist(err) {
		t.Skip("cpu stats are read from /proc")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := getCPUUtilization(ctx)
	require.Equal(t, context.Canceled, err)
	require.True(t, time.Since(start) < 500*time.Millisecond, "sampling should not wait out the full second once cancelled")
}
