// Copyright 2025 The trino-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics of the execution engine.
var (
	// ExecutorCounter records the number of operators opened, per operator kind.
	ExecutorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trino",
			Subsystem: "executor",
			Name:      "operator_total",
			Help:      "Counter of operators opened.",
		}, []string{LblOperator},
	)

	// OperatorRowsCounter records the rows flowing in and out of operators.
	OperatorRowsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trino",
			Subsystem: "executor",
			Name:      "operator_rows_total",
			Help:      "Counter of rows flowing in and out of operators.",
		}, []string{LblOperator, LblDirection},
	)

	// OperatorMemoryGauge records the reported memory footprint of operators.
	OperatorMemoryGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "trino",
			Subsystem: "executor",
			Name:      "operator_memory_bytes",
			Help:      "Reported memory footprint of operators.",
		}, []string{LblOperator},
	)
)
