// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"fmt"
	"strconv"
	"strings"
)

/**
Format reference: https://prometheus.io/docs/instrumenting/exposition_formats/
*/
func (r *inMemoryRegistry) ExportPrometheus() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labelsString := r.labelsString()

	var rows []string
	for _, metric := range r.sorted() {
		rows = append(rows, metric.exportPrometheus(labelsString))
	}

	return strings.Join(rows, "")
}

func (r *inMemoryRegistry) labelsString() string {
	if r.nodeName == "" {
		return ""
	}
	return fmt.Sprintf("node=\"%s\"", r.nodeName)
}

func (g *Gauge) exportPrometheus(labelString string) string {
	return prometheusType(g.pName, "gauge") + prometheusRow(g.pName, labelString, strconv.FormatInt(g.Value(), 10))
}

func (h *Histogram) exportPrometheus(labelString string) string {
	e := h.export()
	var rows strings.Builder
	rows.WriteString(prometheusType(h.pName, "summary"))
	for _, q := range []struct {
		label string
		value int64
	}{{"0.5", e.P50}, {"0.95", e.P95}, {"0.99", e.P99}} {
		rows.WriteString(prometheusRow(h.pName, joinLabels(labelString, fmt.Sprintf("quantile=\"%s\"", q.label)), strconv.FormatInt(q.value, 10)))
	}
	rows.WriteString(prometheusRow(h.pName+"_count", labelString, strconv.FormatInt(e.Samples, 10)))
	return rows.String()
}

// rate is not exported, prometheus derives rates on its own
func (r *Rate) exportPrometheus(labelString string) string {
	return ""
}

func joinLabels(labels ...string) string {
	var nonEmpty []string
	for _, l := range labels {
		if l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	return strings.Join(nonEmpty, ",")
}

func prometheusRow(name string, labelString string, value string) string {
	if len(labelString) > 0 {
		return fmt.Sprintf("%s{%s} %s\n", name, labelString, value)
	}
	return fmt.Sprintf("%s %s\n", name, value)
}

func prometheusName(name string) string {
	return strings.Replace(name, ".", "_", -1)
}

func prometheusType(name string, typeString string) string {
	return fmt.Sprintf("# TYPE %s %s\n", name, typeString)
}
