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

package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "engine.log")
	cfg := NewLogConfig("warn", DefaultLogFormat, logFile)
	require.NoError(t, InitLogger(cfg))

	BgLogger().Info("filtered by level")
	BgLogger().Warn("written to file", zap.String("key", "value"))
	require.NoError(t, BgLogger().Sync())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "written to file")
	require.Contains(t, string(content), "value")
	require.NotContains(t, string(content), "filtered by level")
}

func TestInitLoggerBadLevel(t *testing.T) {
	cfg := NewLogConfig("no-such-level", DefaultLogFormat, "")
	require.Error(t, InitLogger(cfg))
}

func TestBgLoggerNotNil(t *testing.T) {
	require.NotNil(t, BgLogger())
}
