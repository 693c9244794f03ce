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

	"github.com/kokizzu/trino/util/chunk"
	"github.com/kokizzu/trino/util/memory"
	"go.uber.org/atomic"
)

// Operator is a push-based execution operator driven by one external control
// loop, usually a Driver. All methods are non-blocking: an operator that
// cannot make progress (pending classification work, memory backpressure)
// simply returns nothing from GetOutput and waits to be invoked again.
//
// The life cycle of an Operator is:
//  1. Open() is called once before any other method.
//  2. The loop alternates NeedsInput/AddInput and GetOutput until the source
//     is exhausted, then calls Finish() and drains the remaining output.
//  3. IsFinished() reports true, the loop calls Close() and discards the
//     operator.
//
// Calling AddInput while a chunk is still in flight, or after Finish, is a
// contract violation and panics. None of the methods is thread-safe.
type Operator interface {
	// Open initializes the operator. It must be called before any other method.
	Open(ctx context.Context) error
	// NeedsInput reports whether the operator can accept a chunk right now.
	NeedsInput() bool
	// AddInput pushes one chunk into the operator. The chunk must not be
	// modified by the caller until the corresponding output is produced.
	AddInput(chk *chunk.Chunk)
	// GetOutput returns the next output chunk, or nil if there is nothing to
	// deliver now. nil does not mean completion, check IsFinished.
	GetOutput() *chunk.Chunk
	// Finish signals that no more input will arrive. It is idempotent.
	Finish()
	// IsFinished reports whether the operator will never produce output again.
	IsFinished() bool
	// Close releases the resources held by the operator. No other method may
	// be called afterwards.
	Close() error
}

// BasicRuntimeStats records the amount of data an operator has produced.
// Reads are safe from a concurrent stats collector.
type BasicRuntimeStats struct {
	loops atomic.Int32
	rows  atomic.Int64
}

// Record records executed loops and produced rows.
func (e *BasicRuntimeStats) Record(rows int) {
	e.loops.Inc()
	e.rows.Add(int64(rows))
}

// Rows returns the total number of produced rows.
func (e *BasicRuntimeStats) Rows() int64 {
	return e.rows.Load()
}

// Loops returns the number of output chunks produced.
func (e *BasicRuntimeStats) Loops() int32 {
	return e.loops.Load()
}

// String implements fmt.Stringer.
func (e *BasicRuntimeStats) String() string {
	return fmt.Sprintf("loops:%d, rows:%d", e.Loops(), e.Rows())
}

// OperatorContext carries the per-operator state shared with the owning
// engine: the memory tracker the operator reports through and the runtime
// statistics the engine collects.
type OperatorContext struct {
	quotaTracker *memory.Tracker
	memTracker   *memory.Tracker
	stats        *BasicRuntimeStats
}

// NewOperatorContext creates an OperatorContext whose tracker is attached to
// the given quota tracker. quotaTracker can be nil for standalone use.
func NewOperatorContext(label int, quotaTracker *memory.Tracker) *OperatorContext {
	opCtx := &OperatorContext{
		quotaTracker: quotaTracker,
		memTracker:   memory.NewTracker(label, -1),
		stats:        &BasicRuntimeStats{},
	}
	if quotaTracker != nil {
		opCtx.memTracker.AttachTo(quotaTracker)
	}
	return opCtx
}

// AttachTracker attaches the tracker of an operator-owned structure to the
// engine quota. Such structures report through their own tracker because the
// operator replaces the consumption of its own tracker wholesale, which would
// erase any child contribution.
func (opCtx *OperatorContext) AttachTracker(t *memory.Tracker) {
	if opCtx.quotaTracker != nil {
		t.AttachTo(opCtx.quotaTracker)
	}
}

// MemTracker returns the memory tracker of the operator.
func (opCtx *OperatorContext) MemTracker() *memory.Tracker {
	return opCtx.memTracker
}

// RuntimeStats returns the runtime statistics of the operator.
func (opCtx *OperatorContext) RuntimeStats() *BasicRuntimeStats {
	return opCtx.stats
}

// UpdateMemoryUsage replaces the operator's reported footprint and returns
// true if the memory quota still has headroom. Once this returns false the
// engine is expected to stop driving the operator until memory is freed; the
// operator itself never blocks.
func (opCtx *OperatorContext) UpdateMemoryUsage(bs int64) bool {
	opCtx.memTracker.ReplaceBytesUsed(bs)
	return !opCtx.memTracker.AnyExceed()
}

// WaitingForMemory reports whether the last reported footprint pushed the
// quota over its limit.
func (opCtx *OperatorContext) WaitingForMemory() bool {
	return opCtx.memTracker.AnyExceed()
}
