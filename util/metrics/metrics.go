// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-gifportal
//
// go-gifportal is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-gifportal is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-gifportal.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics keeps per-component prometheus registries and exposes
// their values as plain snapshots.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// MetricName describes the name and description of a single metric
type MetricName struct {
	// Name is the name of the metric
	Name string
	// Description is the description of the metric
	Description string
}

// Registry is a set of metrics owned by one component
type Registry struct {
	reg *prometheus.Registry
}

// MakeRegistry creates an empty registry
func MakeRegistry() *Registry {
	return &Registry{reg: prometheus.NewRegistry()}
}

// Gatherer exposes the underlying prometheus gatherer, e.g. for promhttp
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Snapshot returns every sample in the registry keyed by name{label=value,...}.
func (r *Registry) Snapshot() (map[string]float64, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			out[sampleKey(mf.GetName(), m.GetLabel())] = sampleValue(mf.GetType(), m)
		}
	}
	return out, nil
}

func sampleKey(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, l.GetName()+"="+l.GetValue())
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}

func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return 0
	}
}
