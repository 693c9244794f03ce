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
	"testing"

	"github.com/kokizzu/trino/util/chunk"
	"github.com/kokizzu/trino/util/tracing"
	"github.com/opentracing/basictracer-go"
	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/require"
)

func TestDriverRunPartitionedLimit(t *testing.T) {
	e, err := NewRowNumberExec(newTestOpCtx(), valueKeyTypes(), nil, []int{1}, 2, 16)
	require.NoError(t, err)

	src := NewSliceSource([]*chunk.Chunk{
		buildValueKeyChunk(t, []int64{1, 2, 3}, []string{"a", "b", "a"}),
		chunk.NewChunkWithCapacity(valueKeyTypes(), 4), // empty chunks are skipped
		buildValueKeyChunk(t, []int64{4, 5}, []string{"a", "b"}),
		buildValueKeyChunk(t, []int64{6}, []string{"a"}),
	})

	output, err := NewDriver(e, src).Run(context.Background())
	require.NoError(t, err)

	var vals, nums []int64
	for _, chk := range output {
		vals = append(vals, collectInt64Col(chk, 0)...)
		nums = append(nums, collectInt64Col(chk, 2)...)
	}
	// Row 4 is the third "a" and row 6 the fourth, both over the limit.
	require.Equal(t, []int64{1, 2, 3, 5}, vals)
	require.Equal(t, []int64{1, 1, 2, 2}, nums)
}

func TestDriverRunSinglePartitionLimitStopsSource(t *testing.T) {
	e, err := NewRowNumberExec(newTestOpCtx(), valueKeyTypes(), nil, nil, 3, 0)
	require.NoError(t, err)

	src := NewSliceSource([]*chunk.Chunk{
		buildValueKeyChunk(t, []int64{1, 2}, []string{"a", "b"}),
		buildValueKeyChunk(t, []int64{3, 4}, []string{"c", "d"}),
		buildValueKeyChunk(t, []int64{5}, []string{"e"}),
	})

	output, err := NewDriver(e, src).Run(context.Background())
	require.NoError(t, err)

	var nums []int64
	for _, chk := range output {
		nums = append(nums, collectInt64Col(chk, 2)...)
	}
	require.Equal(t, []int64{1, 2, 3}, nums)
	// The third source chunk is never pulled.
	require.Equal(t, 2, src.cursor)
}

func TestDriverRunCanceled(t *testing.T) {
	e, err := NewRowNumberExec(newTestOpCtx(), valueKeyTypes(), nil, nil, 0, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewDriver(e, NewSliceSource(nil)).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDriverRunTraced(t *testing.T) {
	e, err := NewRowNumberExec(newTestOpCtx(), valueKeyTypes(), nil, nil, 0, 0)
	require.NoError(t, err)

	var recorded []basictracer.RawSpan
	root := tracing.NewRecordingSpan("query", func(sp basictracer.RawSpan) {
		recorded = append(recorded, sp)
	})
	ctx := opentracing.ContextWithSpan(context.Background(), root)

	src := NewSliceSource([]*chunk.Chunk{
		buildValueKeyChunk(t, []int64{1}, []string{"a"}),
	})
	_, err = NewDriver(e, src).Run(ctx)
	require.NoError(t, err)
	root.Finish()

	require.Len(t, recorded, 2)
	require.Equal(t, "driver.Run", recorded[0].Operation)
	require.Equal(t, "query", recorded[1].Operation)
}

func TestSliceSourceExhaustion(t *testing.T) {
	src := NewSliceSource([]*chunk.Chunk{
		buildValueKeyChunk(t, []int64{1}, []string{"a"}),
	})
	chk, err := src.NextChunk(context.Background())
	require.NoError(t, err)
	require.NotNil(t, chk)
	chk, err = src.NextChunk(context.Background())
	require.NoError(t, err)
	require.Nil(t, chk)
	chk, err = src.NextChunk(context.Background())
	require.NoError(t, err)
	require.Nil(t, chk)
}
