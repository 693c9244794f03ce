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

package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/kokizzu/trino/types"
	"github.com/kokizzu/trino/util/chunk"
	"github.com/kokizzu/trino/util/memory"
)

func buildBenchChunk(numRows, numPartitions int) *chunk.Chunk {
	fields := []*types.FieldType{
		types.NewFieldType(types.TypeLonglong),
		types.NewFieldType(types.TypeVarchar),
	}
	chk := chunk.NewChunkWithCapacity(fields, numRows)
	for i := 0; i < numRows; i++ {
		chk.AppendInt64(0, int64(i))
		chk.AppendString(1, fmt.Sprintf("part-%d", i%numPartitions))
	}
	return chk
}

func benchmarkRowNumber(b *testing.B, partitionCols []int, limit int64, numPartitions int) {
	ctx := context.Background()
	chk := buildBenchChunk(1024, numPartitions)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opCtx := NewOperatorContext(memory.LabelForRowNumberExec, nil)
		e, err := NewRowNumberExec(opCtx, valueKeyTypes(), nil, partitionCols, limit, numPartitions)
		if err != nil {
			b.Fatal(err)
		}
		if err := e.Open(ctx); err != nil {
			b.Fatal(err)
		}
		e.AddInput(chk)
		if out := e.GetOutput(); out == nil {
			b.Fatal("expected output")
		}
		if err := e.Close(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRowNumberSinglePartition(b *testing.B) {
	benchmarkRowNumber(b, nil, 0, 1)
}

func BenchmarkRowNumberPartitioned(b *testing.B) {
	benchmarkRowNumber(b, []int{1}, 0, 64)
}

func BenchmarkRowNumberPartitionedLimit(b *testing.B) {
	benchmarkRowNumber(b, []int{1}, 4, 64)
}
