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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, DefMaxChunkSize, conf.Performance.MaxChunkSize)
	require.Equal(t, DefExpectedGroups, conf.Performance.ExpectedGroups)
	require.Equal(t, DefMemQuotaQuery, conf.Performance.MemQuotaQuery)
	require.NoError(t, conf.Valid())

	quota, err := conf.MemQuotaBytes()
	require.NoError(t, err)
	require.Equal(t, int64(1<<30), quota)
}

func TestLoadConfig(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(confFile, []byte(`
[log]
level = "warn"
format = "json"

[performance]
max-chunk-size = 512
expected-groups = 128
mem-quota-query = "512MB"
`), 0o644))

	conf := NewConfig()
	require.NoError(t, conf.Load(confFile))
	require.Equal(t, "warn", conf.Log.Level)
	require.Equal(t, "json", conf.Log.Format)
	require.Equal(t, 512, conf.Performance.MaxChunkSize)
	require.Equal(t, 128, conf.Performance.ExpectedGroups)

	quota, err := conf.MemQuotaBytes()
	require.NoError(t, err)
	require.Equal(t, int64(512<<20), quota)

	require.Error(t, conf.Load(filepath.Join(t.TempDir(), "absent.toml")))
}

func TestValid(t *testing.T) {
	conf := NewConfig()
	conf.Performance.MaxChunkSize = 0
	require.Error(t, conf.Valid())

	conf = NewConfig()
	conf.Performance.ExpectedGroups = -1
	require.Error(t, conf.Valid())

	conf = NewConfig()
	conf.Performance.MemQuotaQuery = "lots"
	require.Error(t, conf.Valid())
}

func TestMemQuotaDisabled(t *testing.T) {
	conf := NewConfig()
	for _, v := range []string{"", "0"} {
		conf.Performance.MemQuotaQuery = v
		quota, err := conf.MemQuotaBytes()
		require.NoError(t, err)
		require.Equal(t, int64(0), quota)
	}
}

func TestGlobalConfig(t *testing.T) {
	orig := GetGlobalConfig()
	defer StoreGlobalConfig(orig)

	require.Equal(t, DefMaxChunkSize, GetGlobalConfig().Performance.MaxChunkSize)

	conf := NewConfig()
	conf.Performance.MaxChunkSize = 64
	StoreGlobalConfig(conf)
	require.Equal(t, 64, GetGlobalConfig().Performance.MaxChunkSize)
}
