// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func TestInMemoryRegistry_ExportAll(t *testing.T) {
	registry := NewRegistry()
	gauge := registry.NewGauge("hello")
	gauge.Add(1)

	gaugeValue := registry.ExportAll()["hello"].(gaugeExport)
	require.EqualValues(t, gaugeValue.Value, 1)
}

func TestInMemoryRegistry_StringIsSortedByName(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("b")
	registry.NewGauge("a")

	s := registry.String()
	require.True(t, strings.Index(s, "metric a") < strings.Index(s, "metric b"), "metrics should be printed in name order")
}

func TestHistogram_RecordsMilliseconds(t *testing.T) {
	registry := NewRegistry()
	h := registry.NewLatency("Processor.Native.ProcessCallTime.Millis", 10*time.Second)
	h.Record(5 * time.Millisecond)
	h.Record(7 * time.Millisecond)

	export := registry.ExportAll()["Processor.Native.ProcessCallTime.Millis"].(histogramExport)
	require.EqualValues(t, 2, export.Samples)
	require.EqualValues(t, 5, export.Min)
	require.EqualValues(t, 7, export.Max)
}

func TestHistogram_EmptyHistogramIsNotReported(t *testing.T) {
	h := newHistogram("empty", time.Second)
	require.Nil(t, h.Export().LogRow())
}

func TestRate_MeasureAccumulatesWithinTick(t *testing.T) {
	r := newRate("rate")
	r.Measure(3)
	r.Measure(4)

	require.EqualValues(t, 7, r.runningSum)
	r.Reset()
	require.EqualValues(t, 0, r.runningSum)
}

func TestExportPrometheus(t *testing.T) {
	registry := NewRegistry().WithNodeName("node1")
	registry.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count").Update(3)
	registry.NewRate("VirtualMachine.RunMethod.Rate").Measure(1)

	exported := registry.ExportPrometheus()
	require.Equal(t, "# TYPE StateStoragePersistence_TotalNumberOfKeys_Count gauge\n"+
		"StateStoragePersistence_TotalNumberOfKeys_Count{node=\"node1\"} 3\n", exported)
}

func TestExportPrometheusHistogram(t *testing.T) {
	registry := NewRegistry()
	registry.NewLatency("Call.Millis", time.Second).Record(2 * time.Millisecond)

	exported := registry.ExportPrometheus()
	require.Contains(t, exported, "# TYPE Call_Millis summary\n")
	require.Contains(t, exported, "Call_Millis{quantile=\"0.5\"} 2\n")
	require.Contains(t, exported, "Call_Millis_count 1\n")
}
