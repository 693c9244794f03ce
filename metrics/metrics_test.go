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
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestOperatorMetrics(t *testing.T) {
	ExecutorCounter.Reset()
	OperatorRowsCounter.Reset()
	OperatorMemoryGauge.Reset()

	ExecutorCounter.WithLabelValues("RowNumberExec").Inc()
	OperatorRowsCounter.WithLabelValues("RowNumberExec", DirIn).Add(1024)
	OperatorRowsCounter.WithLabelValues("RowNumberExec", DirOut).Add(512)
	OperatorMemoryGauge.WithLabelValues("RowNumberExec").Set(4096)

	require.Equal(t, 1.0, testutil.ToFloat64(ExecutorCounter.WithLabelValues("RowNumberExec")))
	require.Equal(t, 1024.0, testutil.ToFloat64(OperatorRowsCounter.WithLabelValues("RowNumberExec", DirIn)))
	require.Equal(t, 512.0, testutil.ToFloat64(OperatorRowsCounter.WithLabelValues("RowNumberExec", DirOut)))
	require.Equal(t, 4096.0, testutil.ToFloat64(OperatorMemoryGauge.WithLabelValues("RowNumberExec")))
}

func TestRegisterMetrics(t *testing.T) {
	// Registration must not panic on a fresh registry state.
	require.NotPanics(t, RegisterMetrics)
}
