// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes the Prometheus collectors used by nodeview and
// selection. Exporting them is left to cmd/ entrypoints (promhttp.Handler).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// NodeViewCallsTotal counts Node View operations by name and outcome.
	NodeViewCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meshledger",
			Subsystem: "nodeview",
			Name:      "calls_total",
			Help:      "Count of Node View operations by name and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// NodeViewCallDuration observes Node View call latency by name.
	NodeViewCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meshledger",
			Subsystem: "nodeview",
			Name:      "call_duration_seconds",
			Help:      "Node View operation latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// SelectionDiscoveryWindows counts the number of GAP-sized address
	// windows the Selection discovery loop walked, by outcome.
	SelectionDiscoveryWindows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meshledger",
			Subsystem: "selection",
			Name:      "discovery_windows_total",
			Help:      "Count of address-derivation windows scanned during input discovery.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		NodeViewCallsTotal,
		NodeViewCallDuration,
		SelectionDiscoveryWindows,
	)
}
