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
	"bytes"

	"github.com/dgryski/go-farm"
	"github.com/dolthub/swiss"
	"github.com/kokizzu/trino/types"
	"github.com/kokizzu/trino/util/chunk"
	"github.com/kokizzu/trino/util/codec"
	"github.com/pingcap/failpoint"
	"modernc.org/mathutil"
)

// defGroupResolveQuantum is the max number of rows one Process call resolves,
// so the driving loop can observe memory pressure between quanta.
const defGroupResolveQuantum = 1024

// fpGroupResolveQuantum overrides the quantum in tests.
const fpGroupResolveQuantum = "github.com/kokizzu/trino/executor/groupResolveQuantum"

// Estimated per-entry overheads of the group table, used for memory reporting.
const (
	sizeofGroupKeyHeader = 24 // slice header of one stored key
	sizeofGroupBucket    = 8 + 24 + 8/8
)

// GroupByHash maps the partition key values of rows to dense group ids.
// Ids are assigned in first-seen order starting at 0 and are never reused or
// renumbered. Keys are codec-encoded and bucketed by their farm hash; the
// candidate list per bucket resolves hash collisions with a byte compare.
type GroupByHash struct {
	keyTypes []*types.FieldType
	keyCols  []int

	// groups buckets the farm hash of an encoded key to candidate group ids.
	groups *swiss.Map[uint64, []int]
	// keys stores the encoded key of every group, indexed by group id.
	keys    [][]byte
	keysMem int64

	keyBuf []byte
}

// NewGroupByHash creates a GroupByHash over the key columns "keyCols" of
// chunks typed by "srcTypes". expectedGroups sizes the initial table.
func NewGroupByHash(srcTypes []*types.FieldType, keyCols []int, expectedGroups int) *GroupByHash {
	keyTypes := make([]*types.FieldType, 0, len(keyCols))
	for _, col := range keyCols {
		keyTypes = append(keyTypes, srcTypes[col])
	}
	return &GroupByHash{
		keyTypes: keyTypes,
		keyCols:  keyCols,
		groups:   swiss.NewMap[uint64, []int](uint32(expectedGroups)),
		keys:     make([][]byte, 0, expectedGroups),
	}
}

// ResolveGroupIDs starts resolving the group id of every row in chk.
// The returned work item must be driven to completion with Process before
// another chunk can be resolved.
func (h *GroupByHash) ResolveGroupIDs(chk *chunk.Chunk) *GroupIDsWork {
	return &GroupIDsWork{hash: h, input: chk}
}

func (h *GroupByHash) resolveRow(row chunk.Row) int {
	keyBuf, err := codec.EncodeChunkRow(h.keyBuf[:0], row, h.keyTypes, h.keyCols)
	if err != nil {
		// Key column types are validated at operator construction, so an
		// encoding failure here is an upstream contract violation.
		panic(err)
	}
	h.keyBuf = keyBuf

	hashVal := farm.Hash64(keyBuf)
	candidates, _ := h.groups.Get(hashVal)
	for _, id := range candidates {
		if bytes.Equal(h.keys[id], keyBuf) {
			return id
		}
	}

	id := len(h.keys)
	key := make([]byte, len(keyBuf))
	copy(key, keyBuf)
	h.keys = append(h.keys, key)
	h.keysMem += int64(len(key)) + sizeofGroupKeyHeader
	h.groups.Put(hashVal, append(candidates, id))
	return id
}

// GroupCount returns the number of distinct groups seen so far.
func (h *GroupByHash) GroupCount() int {
	return len(h.keys)
}

// Capacity returns the number of entries the group table can hold before the
// next resize. Exported for tests.
func (h *GroupByHash) Capacity() int {
	return h.groups.Count() + h.groups.Capacity()
}

// EstimatedSize returns the estimated heap footprint of the table in bytes.
// It grows monotonically with the number of distinct keys.
func (h *GroupByHash) EstimatedSize() int64 {
	return h.keysMem +
		int64(h.Capacity())*sizeofGroupBucket +
		int64(h.groups.Count())*8 + // candidate entries
		int64(cap(h.keyBuf))
}

// Resolve states of a GroupIDsWork.
type workState int

const (
	workNotStarted workState = iota
	workInProgress
	workDone
)

// GroupIDsWork incrementally resolves the dense group id of every row of one
// chunk. Each Process call advances at most defGroupResolveQuantum rows and
// reports whether the work is complete, so a driving loop can yield between
// quanta. At most one GroupIDsWork may exist per GroupByHash at a time.
type GroupIDsWork struct {
	state    workState
	hash     *GroupByHash
	input    *chunk.Chunk
	result   []int
	doneRows int
}

// Process advances the resolution by one quantum. It returns true once all
// rows of the chunk are resolved.
func (w *GroupIDsWork) Process() bool {
	quantum := defGroupResolveQuantum
	if val, err := failpoint.Eval(fpGroupResolveQuantum); err == nil {
		quantum = val.(int)
	}

	switch w.state {
	case workDone:
		return true
	case workNotStarted:
		w.state = workInProgress
		w.result = make([]int, w.input.NumRows())
	}

	end := mathutil.Min(w.doneRows+quantum, w.input.NumRows())
	for ; w.doneRows < end; w.doneRows++ {
		w.result[w.doneRows] = w.hash.resolveRow(w.input.GetRow(w.doneRows))
	}
	if w.doneRows < w.input.NumRows() {
		return false
	}
	w.state = workDone
	return true
}

// Result returns the group id of every input row, indexed by row position.
// It must only be called after Process has returned true.
func (w *GroupIDsWork) Result() []int {
	if w.state != workDone {
		panic("groupbyhash: Result called on unfinished work")
	}
	return w.result
}
