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

package ledger

import (
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/util/metrics"
)

type ledgerMetrics struct {
	registry     *metrics.Registry
	txns         *metrics.Counter
	instructions *metrics.Counter
	round        *metrics.Gauge
}

func makeLedgerMetrics() *ledgerMetrics {
	reg := metrics.MakeRegistry()
	return &ledgerMetrics{
		registry:     reg,
		txns:         metrics.MakeCounter(reg, metrics.MetricName{Name: "gifportal_ledger_txns_total", Description: "Transactions submitted to the ledger, by result"}, "result"),
		instructions: metrics.MakeCounter(reg, metrics.MetricName{Name: "gifportal_ledger_instructions_total", Description: "Top-level instructions committed, by program"}, "program"),
		round:        metrics.MakeGauge(reg, metrics.MetricName{Name: "gifportal_ledger_round", Description: "Latest committed round"}),
	}
}

func (m *ledgerMetrics) committed(programs []basics.Address, rnd basics.Round) {
	m.txns.Inc(map[string]string{"result": "committed"})
	for _, p := range programs {
		m.instructions.Inc(map[string]string{"program": p.String()})
	}
	m.round.Set(uint64(rnd))
}

func (m *ledgerMetrics) rejected() {
	m.txns.Inc(map[string]string{"result": "rejected"})
}
