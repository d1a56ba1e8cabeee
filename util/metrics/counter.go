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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter represent a single counter variable, optionally split by labels.
type Counter struct {
	vec *prometheus.CounterVec
}

// MakeCounter creates a counter with the provided name and label names and
// registers it with reg.
func MakeCounter(reg *Registry, metric MetricName, labelNames ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metric.Name,
		Help: metric.Description,
	}, labelNames)
	reg.reg.MustRegister(vec)
	return &Counter{vec: vec}
}

// Inc increases counter by 1
func (counter *Counter) Inc(labels map[string]string) {
	counter.vec.With(labels).Inc()
}

// AddUint64 increases counter by x
func (counter *Counter) AddUint64(x uint64, labels map[string]string) {
	counter.vec.With(labels).Add(float64(x))
}

// Gauge represent a single gauge variable.
type Gauge struct {
	g prometheus.Gauge
}

// MakeGauge creates a gauge registered with reg.
func MakeGauge(reg *Registry, metric MetricName) *Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: metric.Name,
		Help: metric.Description,
	})
	reg.reg.MustRegister(g)
	return &Gauge{g: g}
}

// Set sets the gauge to x
func (gauge *Gauge) Set(x uint64) {
	gauge.g.Set(float64(x))
}
