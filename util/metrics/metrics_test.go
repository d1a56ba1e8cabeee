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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/test/partitiontest"
)

func TestCounterSnapshot(t *testing.T) {
	partitiontest.PartitionTest(t)

	reg := MakeRegistry()
	plain := MakeCounter(reg, MetricName{Name: "test_plain_total", Description: "plain"})
	labeled := MakeCounter(reg, MetricName{Name: "test_labeled_total", Description: "labeled"}, "result")
	gauge := MakeGauge(reg, MetricName{Name: "test_round", Description: "round"})

	plain.Inc(nil)
	plain.AddUint64(4, nil)
	labeled.Inc(map[string]string{"result": "ok"})
	labeled.Inc(map[string]string{"result": "ok"})
	labeled.Inc(map[string]string{"result": "rejected"})
	gauge.Set(17)

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	require.Equal(t, map[string]float64{
		"test_plain_total":                    5,
		"test_labeled_total{result=ok}":       2,
		"test_labeled_total{result=rejected}": 1,
		"test_round":                          17,
	}, snap)
}

func TestRegistriesAreIndependent(t *testing.T) {
	partitiontest.PartitionTest(t)

	name := MetricName{Name: "test_dup_total", Description: "dup"}
	a := MakeCounter(MakeRegistry(), name)
	b := MakeCounter(MakeRegistry(), name)
	a.Inc(nil)
	b.Inc(nil)

	require.Panics(t, func() {
		reg := MakeRegistry()
		MakeCounter(reg, name)
		MakeCounter(reg, name)
	})
}
