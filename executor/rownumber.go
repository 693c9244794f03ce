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

	"github.com/kokizzu/trino/config"
	"github.com/kokizzu/trino/metrics"
	"github.com/kokizzu/trino/types"
	"github.com/kokizzu/trino/util/chunk"
	"github.com/kokizzu/trino/util/memory"
	"github.com/pingcap/errors"
)

var _ Operator = (*RowNumberExec)(nil)

const lblRowNumber = "RowNumberExec"

// RowNumberExec assigns a per-partition, 1-based, gap-free sequence number to
// every row flowing through it and appends the number as a trailing bigint
// column. Rows are mapped to partitions by a GroupByHash over the partition
// key columns; without partition keys every row belongs to partition 0.
//
// When maxRowsPerPartition is configured, rows of a partition that already
// reached the limit are dropped instead of numbered, so no emitted sequence
// value ever exceeds the limit.
//
// Partition classification is a resumable work item: one AddInput may need
// several GetOutput calls before a chunk is fully classified, each advancing
// the work by a bounded quantum and re-reporting memory usage so the engine
// can apply backpressure between quanta.
type RowNumberExec struct {
	opCtx *OperatorContext

	outputCols []int
	// retTypes is the projected source schema plus the trailing row-number
	// column.
	retTypes []*types.FieldType

	// groupByHash is nil when no partition keys are configured, in which case
	// the whole input is partition 0. The group table reports through its own
	// tracker, a sibling of the operator tracker under the engine quota.
	groupByHash    *GroupByHash
	groupTracker   *memory.Tracker
	partitionIDs   []int
	unfinishedWork *GroupIDsWork

	inputChk          *chunk.Chunk
	partitionRowCount *int64Buffer

	// maxRowsPerPartition <= 0 means no limit.
	maxRowsPerPartition int64
	policy              rowNumberPolicy

	maxChunkSize int
	finishing    bool
	opened       bool
	closed       bool
}

// NewRowNumberExec creates a RowNumberExec.
//
// outputCols selects and orders the source columns that survive into the
// output; nil keeps all of them. partitionCols names the partition key
// columns; empty means a single global partition. maxRowsPerPartition <= 0
// disables the per-partition limit. expectedGroups sizes the group table.
func NewRowNumberExec(
	opCtx *OperatorContext,
	srcTypes []*types.FieldType,
	outputCols []int,
	partitionCols []int,
	maxRowsPerPartition int64,
	expectedGroups int,
) (*RowNumberExec, error) {
	if len(srcTypes) == 0 {
		return nil, errors.New("rownumber: source schema is empty")
	}
	if outputCols == nil {
		outputCols = make([]int, 0, len(srcTypes))
		for i := range srcTypes {
			outputCols = append(outputCols, i)
		}
	}
	for _, col := range outputCols {
		if col < 0 || col >= len(srcTypes) {
			return nil, errors.Errorf("rownumber: output column %d out of range [0, %d)", col, len(srcTypes))
		}
	}
	for _, col := range partitionCols {
		if col < 0 || col >= len(srcTypes) {
			return nil, errors.Errorf("rownumber: partition column %d out of range [0, %d)", col, len(srcTypes))
		}
	}
	if len(partitionCols) > 0 && expectedGroups <= 0 {
		return nil, errors.Errorf("rownumber: expectedGroups should be greater than 0, got %d", expectedGroups)
	}

	retTypes := make([]*types.FieldType, 0, len(outputCols)+1)
	for _, col := range outputCols {
		retTypes = append(retTypes, srcTypes[col])
	}
	retTypes = append(retTypes, types.NewFieldType(types.TypeLonglong))

	e := &RowNumberExec{
		opCtx:               opCtx,
		outputCols:          outputCols,
		retTypes:            retTypes,
		partitionRowCount:   newInt64Buffer(),
		maxRowsPerPartition: maxRowsPerPartition,
		maxChunkSize:        config.GetGlobalConfig().Performance.MaxChunkSize,
	}
	if len(partitionCols) > 0 {
		e.groupByHash = NewGroupByHash(srcTypes, partitionCols, expectedGroups)
		e.groupTracker = memory.NewTracker(memory.LabelForGroupByHash, -1)
		opCtx.AttachTracker(e.groupTracker)
	} else {
		// Partition 0 always exists.
		e.partitionRowCount.ensureCapacity(1)
	}
	if maxRowsPerPartition > 0 {
		pool := chunk.NewPool(e.maxChunkSize)
		e.policy = &limitPolicy{
			limit:   maxRowsPerPartition,
			pool:    pool,
			builder: pool.GetChunk(retTypes),
		}
	} else {
		e.policy = passThroughPolicy{}
	}
	return e, nil
}

// Open implements the Operator Open interface.
func (e *RowNumberExec) Open(context.Context) error {
	if e.opened {
		return errors.New("rownumber: operator is already opened")
	}
	e.opened = true
	metrics.ExecutorCounter.WithLabelValues(lblRowNumber).Inc()
	e.updateMemoryUsage()
	return nil
}

// Finish implements the Operator Finish interface.
func (e *RowNumberExec) Finish() {
	e.finishing = true
}

// IsFinished implements the Operator IsFinished interface.
func (e *RowNumberExec) IsFinished() bool {
	if e.isSinglePartition() && e.maxRowsPerPartition > 0 {
		if e.finishing && !e.hasUnfinishedInput() {
			return true
		}
		// The sole partition hitting the limit is terminal even without the
		// finishing signal.
		return e.partitionRowCount.get(0) == e.maxRowsPerPartition
	}
	return e.finishing && !e.hasUnfinishedInput()
}

// NeedsInput implements the Operator NeedsInput interface.
func (e *RowNumberExec) NeedsInput() bool {
	if e.isSinglePartition() && e.maxRowsPerPartition > 0 {
		// Check if the single partition is done.
		return e.partitionRowCount.get(0) < e.maxRowsPerPartition && !e.finishing && !e.hasUnfinishedInput()
	}
	return !e.finishing && !e.hasUnfinishedInput()
}

// AddInput implements the Operator AddInput interface.
func (e *RowNumberExec) AddInput(chk *chunk.Chunk) {
	if e.finishing {
		panic("rownumber: AddInput called on a finishing operator")
	}
	if chk == nil {
		panic("rownumber: input chunk is nil")
	}
	if e.hasUnfinishedInput() {
		panic("rownumber: an input chunk is already in flight")
	}
	e.inputChk = chk
	metrics.OperatorRowsCounter.WithLabelValues(lblRowNumber, metrics.DirIn).Add(float64(chk.NumRows()))
	if e.groupByHash != nil {
		e.unfinishedWork = e.groupByHash.ResolveGroupIDs(chk)
		e.processUnfinishedWork()
	}
	e.updateMemoryUsage()
}

// GetOutput implements the Operator GetOutput interface.
func (e *RowNumberExec) GetOutput() *chunk.Chunk {
	if e.unfinishedWork != nil && !e.processUnfinishedWork() {
		return nil
	}
	if e.inputChk == nil {
		return nil
	}

	output := e.policy.emit(e)

	e.inputChk = nil
	e.partitionIDs = nil
	e.updateMemoryUsage()
	if output != nil {
		e.opCtx.RuntimeStats().Record(output.NumRows())
		metrics.OperatorRowsCounter.WithLabelValues(lblRowNumber, metrics.DirOut).Add(float64(output.NumRows()))
	}
	return output
}

// Close implements the Operator Close interface.
func (e *RowNumberExec) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.policy.release(e)
	e.inputChk = nil
	e.unfinishedWork = nil
	e.partitionIDs = nil
	e.groupByHash = nil
	if e.groupTracker != nil {
		e.groupTracker.ReplaceBytesUsed(0)
		e.groupTracker.Detach()
	}
	e.opCtx.MemTracker().ReplaceBytesUsed(0)
	e.opCtx.MemTracker().Detach()
	return nil
}

// RetTypes returns the schema of the output chunks.
func (e *RowNumberExec) RetTypes() []*types.FieldType {
	return e.retTypes
}

func (e *RowNumberExec) hasUnfinishedInput() bool {
	return e.inputChk != nil || e.unfinishedWork != nil
}

func (e *RowNumberExec) isSinglePartition() bool {
	return e.groupByHash == nil
}

func (e *RowNumberExec) partitionID(pos int) int {
	if e.isSinglePartition() {
		return 0
	}
	return e.partitionIDs[pos]
}

// processUnfinishedWork drives the pending classification work, yielding when
// the memory quota is exhausted. It returns true once the work is complete.
func (e *RowNumberExec) processUnfinishedWork() bool {
	work := e.unfinishedWork
	for !work.Process() {
		if !e.updateMemoryUsage() {
			// Memory is not available, resume on the next call.
			return false
		}
	}
	e.partitionIDs = work.Result()
	e.partitionRowCount.ensureCapacity(e.groupByHash.GroupCount())
	e.unfinishedWork = nil
	e.updateMemoryUsage()
	return true
}

// updateMemoryUsage reports the operator's current footprint and returns true
// if the memory quota still has headroom. The group table is reported through
// its own tracker so it stays visible under the quota; the headroom check on
// the operator tracker still sees it, the quota is a shared ancestor.
func (e *RowNumberExec) updateMemoryUsage() bool {
	bs := e.partitionRowCount.sizeOf() + e.policy.memoryUsage()
	hashBytes := int64(0)
	if e.groupByHash != nil {
		hashBytes = e.groupByHash.EstimatedSize()
		e.groupTracker.ReplaceBytesUsed(hashBytes)
	}
	metrics.OperatorMemoryGauge.WithLabelValues(lblRowNumber).Set(float64(bs + hashBytes))
	return e.opCtx.UpdateMemoryUsage(bs)
}

// rowNumberPolicy materializes one output chunk from the in-flight input.
// The unbounded and bounded variants are separate implementations so the
// invariants of each stay local.
type rowNumberPolicy interface {
	emit(e *RowNumberExec) *chunk.Chunk
	memoryUsage() int64
	release(e *RowNumberExec)
}

// passThroughPolicy retains every input row and appends the row-number column.
type passThroughPolicy struct{}

func (passThroughPolicy) emit(e *RowNumberExec) *chunk.Chunk {
	numRows := e.inputChk.NumRows()
	output := chunk.NewChunkWithCapacity(e.retTypes, numRows)
	for i, col := range e.outputCols {
		output.MakeRefTo(i, e.inputChk, col)
	}
	rowNumberCol := len(e.retTypes) - 1
	for pos := 0; pos < numRows; pos++ {
		id := e.partitionID(pos)
		next := e.partitionRowCount.get(id) + 1
		output.AppendInt64(rowNumberCol, next)
		e.partitionRowCount.set(id, next)
	}
	return output
}

func (passThroughPolicy) memoryUsage() int64 {
	return 0
}

func (passThroughPolicy) release(*RowNumberExec) {}

// limitPolicy drops the rows of partitions that reached the limit and copies
// the surviving rows into a builder chunk.
type limitPolicy struct {
	limit   int64
	pool    *chunk.Pool
	builder *chunk.Chunk
}

func (p *limitPolicy) emit(e *RowNumberExec) *chunk.Chunk {
	if p.builder.NumRows() != 0 {
		panic("rownumber: output builder is not empty")
	}
	rowNumberCol := len(e.retTypes) - 1
	numRows := e.inputChk.NumRows()
	for pos := 0; pos < numRows; pos++ {
		id := e.partitionID(pos)
		count := e.partitionRowCount.get(id)
		if count == p.limit {
			continue
		}
		p.builder.AppendRowByColIdxs(e.inputChk.GetRow(pos), e.outputCols)
		p.builder.AppendInt64(rowNumberCol, count+1)
		e.partitionRowCount.set(id, count+1)
	}
	if p.builder.NumRows() == 0 {
		// Distinguish "all rows dropped" from "no input": the in-flight chunk
		// is consumed, but no output chunk is produced for this call.
		return nil
	}
	output := p.builder
	p.builder = p.pool.GetChunk(e.retTypes)
	return output
}

func (p *limitPolicy) memoryUsage() int64 {
	return p.builder.MemoryUsage()
}

// release recycles the in-progress builder. Emitted chunks are owned by the
// consumer and never returned to the pool.
func (p *limitPolicy) release(e *RowNumberExec) {
	if p.builder != nil {
		p.pool.PutChunk(e.retTypes, p.builder)
		p.builder = nil
	}
}

// int64Buffer is a dense growable counter array indexed by partition id.
// Capacity doubles on overflow; ids are dense and sequential, so a contiguous
// buffer beats a map.
type int64Buffer struct {
	buf []int64
}

func newInt64Buffer() *int64Buffer {
	return &int64Buffer{}
}

// ensureCapacity grows the buffer so indexes [0, n) are addressable.
// New slots start at zero.
func (b *int64Buffer) ensureCapacity(n int) {
	if n <= len(b.buf) {
		return
	}
	if n <= cap(b.buf) {
		b.buf = b.buf[:n]
		return
	}
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = 8
	}
	for newCap < n {
		newCap *= 2
	}
	newBuf := make([]int64, n, newCap)
	copy(newBuf, b.buf)
	b.buf = newBuf
}

func (b *int64Buffer) get(i int) int64 {
	return b.buf[i]
}

func (b *int64Buffer) set(i int, v int64) {
	b.buf[i] = v
}

// sizeOf returns the heap size of the buffer in bytes.
func (b *int64Buffer) sizeOf() int64 {
	return int64(cap(b.buf)) * 8
}
