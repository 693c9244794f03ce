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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldTypeIsFixed(t *testing.T) {
	require.True(t, NewFieldType(TypeLonglong).IsFixed())
	require.True(t, NewFieldType(TypeDouble).IsFixed())
	require.False(t, NewFieldType(TypeVarchar).IsFixed())
	require.False(t, NewFieldType(TypeBlob).IsFixed())
}

func TestFieldTypeString(t *testing.T) {
	require.Equal(t, "bigint", NewFieldType(TypeLonglong).String())
	require.Equal(t, "double", NewFieldType(TypeDouble).String())
	require.Equal(t, "varchar", NewFieldType(TypeVarchar).String())
	require.Equal(t, "blob", NewFieldType(TypeBlob).String())
}
