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

	"github.com/kokizzu/trino/util/chunk"
	"github.com/kokizzu/trino/util/tracing"
	"github.com/pingcap/errors"
)

// ChunkSource produces the input chunks of a Driver. A nil chunk with a nil
// error marks exhaustion.
type ChunkSource interface {
	NextChunk(ctx context.Context) (*chunk.Chunk, error)
}

// SliceSource is a ChunkSource backed by a fixed slice of chunks.
type SliceSource struct {
	chunks []*chunk.Chunk
	cursor int
}

// NewSliceSource creates a SliceSource over chks.
func NewSliceSource(chks []*chunk.Chunk) *SliceSource {
	return &SliceSource{chunks: chks}
}

// NextChunk implements the ChunkSource interface.
func (s *SliceSource) NextChunk(context.Context) (*chunk.Chunk, error) {
	if s.cursor >= len(s.chunks) {
		return nil, nil
	}
	chk := s.chunks[s.cursor]
	s.cursor++
	return chk, nil
}

// Driver runs one Operator over one ChunkSource to completion. It owns the
// control loop the push contract of Operator assumes: feed input while the
// operator asks for it, collect output whenever some is available, signal
// Finish when the source is drained and keep collecting until IsFinished.
type Driver struct {
	op  Operator
	src ChunkSource
}

// NewDriver creates a Driver running op over src.
func NewDriver(op Operator, src ChunkSource) *Driver {
	return &Driver{op: op, src: src}
}

// Run drives the operator until it is finished or ctx is canceled, and
// returns the collected output chunks. The operator is closed on return.
func (d *Driver) Run(ctx context.Context) (output []*chunk.Chunk, err error) {
	span := tracing.ChildSpanFromContext(ctx, "driver.Run")
	defer span.Finish()

	if err := d.op.Open(ctx); err != nil {
		return nil, errors.Trace(err)
	}
	defer func() {
		if closeErr := d.op.Close(); err == nil {
			err = errors.Trace(closeErr)
		}
	}()

	for !d.op.IsFinished() {
		if err := ctx.Err(); err != nil {
			return output, errors.Trace(err)
		}
		if chk := d.op.GetOutput(); chk != nil {
			output = append(output, chk)
			continue
		}
		if !d.op.NeedsInput() {
			continue
		}
		chk, err := d.src.NextChunk(ctx)
		if err != nil {
			return output, errors.Trace(err)
		}
		if chk == nil {
			d.op.Finish()
			continue
		}
		if chk.NumRows() == 0 {
			continue
		}
		d.op.AddInput(chk)
	}
	return output, nil
}
