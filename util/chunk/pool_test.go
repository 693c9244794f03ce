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

package chunk

import (
	"testing"

	"github.com/kokizzu/trino/types"
	"github.com/stretchr/testify/require"
)

func TestPoolGetChunk(t *testing.T) {
	fields := allFieldTypes()
	pool := NewPool(128)

	chk := pool.GetChunk(fields)
	require.Equal(t, len(fields), chk.NumCols())
	require.Equal(t, 0, chk.NumRows())

	chk.AppendInt64(0, 1)
	chk.AppendFloat64(1, 2.5)
	chk.AppendString(2, "a")
	chk.AppendBytes(3, []byte("b"))
	require.Equal(t, 1, chk.NumRows())
}

func TestPoolPutAndReuse(t *testing.T) {
	fields := []*types.FieldType{types.NewFieldType(types.TypeVarchar)}
	pool := NewPool(16)

	chk := pool.GetChunk(fields)
	chk.AppendString(0, "payload")
	pool.PutChunk(fields, chk)
	require.Nil(t, chk.columns)

	// A chunk built from recycled columns starts empty.
	reused := pool.GetChunk(fields)
	require.Equal(t, 0, reused.NumRows())
	reused.AppendString(0, "fresh")
	require.Equal(t, "fresh", reused.GetRow(0).GetString(0))
}
