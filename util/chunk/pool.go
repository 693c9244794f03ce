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
	"sync"

	"github.com/kokizzu/trino/types"
)

// Pool is the column pool.
// NOTE: Pool is non-copyable.
type Pool struct {
	initCap int

	varLenColPool  *sync.Pool
	fixLenColPool8 *sync.Pool
}

// NewPool creates a new Pool.
func NewPool(initCap int) *Pool {
	return &Pool{
		initCap:        initCap,
		varLenColPool:  &sync.Pool{New: func() any { return newVarLenColumn(initCap) }},
		fixLenColPool8: &sync.Pool{New: func() any { return newFixedLenColumn(8, initCap) }},
	}
}

// GetChunk gets a Chunk of the given field types. The columns come from the
// pool and are reset, so the chunk is empty and ready for appends.
func (p *Pool) GetChunk(fields []*types.FieldType) *Chunk {
	chk := &Chunk{
		columns:  make([]*column, 0, len(fields)),
		capacity: p.initCap,
	}
	for _, f := range fields {
		var col *column
		if f.IsFixed() {
			col = p.fixLenColPool8.Get().(*column)
		} else {
			col = p.varLenColPool.Get().(*column)
		}
		col.reset()
		chk.columns = append(chk.columns, col)
	}
	return chk
}

// PutChunk puts the columns of a Chunk back to the pool. The chunk must not
// be used afterwards.
func (p *Pool) PutChunk(fields []*types.FieldType, chk *Chunk) {
	for i, f := range fields {
		if f.IsFixed() {
			p.fixLenColPool8.Put(chk.columns[i])
		} else {
			p.varLenColPool.Put(chk.columns[i])
		}
	}
	chk.columns = nil
}
