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

// Label constants.
const (
	LblOperator  = "operator"
	LblDirection = "direction"

	// Values of LblDirection.
	DirIn  = "in"
	DirOut = "out"
)

// RegisterMetrics registers the metrics which are ONLY used in the execution
// engine.
func RegisterMetrics() {
	prometheus.MustRegister(ExecutorCounter)
	prometheus.MustRegister(OperatorRowsCounter)
	prometheus.MustRegister(OperatorMemoryGauge)
}
