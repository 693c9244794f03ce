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

func TestIterator4Chunk(t *testing.T) {
	fields := []*types.FieldType{types.NewFieldType(types.TypeLonglong)}
	chk := NewChunkWithCapacity(fields, 8)
	var expected []int64
	for i := 0; i < 8; i++ {
		chk.AppendInt64(0, int64(i))
		expected = append(expected, int64(i))
	}

	it := NewIterator4Chunk(chk)
	require.Equal(t, 8, it.Len())

	var got []int64
	for row := it.Begin(); row != it.End(); row = it.Next() {
		got = append(got, row.GetInt64(0))
	}
	require.Equal(t, expected, got)

	require.Equal(t, it.End(), it.Current())
	it.ReachEnd()
	require.Equal(t, it.End(), it.Current())

	// An empty chunk iterates zero rows.
	empty := NewIterator4Chunk(NewChunkWithCapacity(fields, 1))
	require.Equal(t, empty.End(), empty.Begin())
}
