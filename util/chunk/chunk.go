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
	"github.com/kokizzu/trino/types"
)

// Chunk stores multiple rows of data in Apache Arrow format.
// Values are appended in compact format and can be directly accessed without
// decoding. When the chunk is done processing, we can reuse the allocated
// memory by resetting it.
type Chunk struct {
	columns []*column
	// numVirtualRows indicates the number of virtual rows, which have zero
	// column. It is used only when this Chunk doesn't hold any data, i.e.
	// "len(columns)==0".
	numVirtualRows int
	capacity       int
}

// NewChunkWithCapacity creates a new chunk with field types and capacity.
func NewChunkWithCapacity(fields []*types.FieldType, capacity int) *Chunk {
	chk := &Chunk{
		columns:  make([]*column, 0, len(fields)),
		capacity: capacity,
	}
	for _, f := range fields {
		chk.addColumnByFieldType(f)
	}
	return chk
}

// Renew creates a new empty Chunk based on an existing Chunk's schema.
func Renew(chk *Chunk, capacity int) *Chunk {
	newChk := &Chunk{
		columns:  make([]*column, 0, len(chk.columns)),
		capacity: capacity,
	}
	for _, col := range chk.columns {
		if col.isFixed() {
			newChk.columns = append(newChk.columns, newFixedLenColumn(len(col.elemBuf), capacity))
		} else {
			newChk.columns = append(newChk.columns, newVarLenColumn(capacity))
		}
	}
	return newChk
}

func (c *Chunk) addColumnByFieldType(ft *types.FieldType) {
	switch elemLen := getFixedLen(ft); elemLen {
	case varElemLen:
		c.columns = append(c.columns, newVarLenColumn(c.capacity))
	default:
		c.columns = append(c.columns, newFixedLenColumn(elemLen, c.capacity))
	}
}

// MakeRefTo makes column in "dstColIdx" reference to column in "srcColIdx" of "src".
func (c *Chunk) MakeRefTo(dstColIdx int, src *Chunk, srcColIdx int) {
	c.columns[dstColIdx] = src.columns[srcColIdx]
}

// SetNumVirtualRows sets the virtual row number for a Chunk. It should only be
// used when there exists no column in the Chunk.
func (c *Chunk) SetNumVirtualRows(numVirtualRows int) {
	c.numVirtualRows = numVirtualRows
}

// Reset resets the chunk, so the memory it allocated can be reused.
// Make sure all the data in the chunk is not used anymore before you reuse
// this chunk.
func (c *Chunk) Reset() {
	for _, col := range c.columns {
		col.reset()
	}
	c.numVirtualRows = 0
}

// CopyConstruct creates a new chunk and copies this chunk's data into it.
func (c *Chunk) CopyConstruct() *Chunk {
	newChk := &Chunk{numVirtualRows: c.numVirtualRows, capacity: c.capacity, columns: make([]*column, len(c.columns))}
	for i := range c.columns {
		src := c.columns[i]
		newCol := &column{length: src.length, nullCount: src.nullCount}
		newCol.data = append([]byte(nil), src.data...)
		newCol.nullBitmap = append([]byte(nil), src.nullBitmap...)
		newCol.offsets = append([]int32(nil), src.offsets...)
		newCol.elemBuf = append([]byte(nil), src.elemBuf...)
		if len(newCol.elemBuf) == 0 {
			newCol.elemBuf = nil
		}
		newChk.columns[i] = newCol
	}
	return newChk
}

// MemoryUsage returns the total memory usage of a Chunk in bytes.
// We ignore the size of column.length and column.nullCount since they have
// little effect on the total memory usage.
func (c *Chunk) MemoryUsage() (sum int64) {
	for _, col := range c.columns {
		sum += col.memoryUsage()
	}
	return
}

// NumCols returns the number of columns in the chunk.
func (c *Chunk) NumCols() int {
	return len(c.columns)
}

// NumRows returns the number of rows in the chunk.
func (c *Chunk) NumRows() int {
	if c.NumCols() == 0 {
		return c.numVirtualRows
	}
	return c.columns[0].length
}

// GetRow gets the Row in the chunk with the row index.
func (c *Chunk) GetRow(idx int) Row {
	return Row{c: c, idx: idx}
}

// AppendRow appends a row to the chunk.
func (c *Chunk) AppendRow(row Row) {
	c.AppendPartialRow(0, row)
	c.numVirtualRows++
}

// AppendPartialRow appends a row to the chunk, starting from colIdx.
func (c *Chunk) AppendPartialRow(colIdx int, row Row) {
	for i, rowCol := range row.c.columns {
		chkCol := c.columns[colIdx+i]
		appendCellByCell(chkCol, rowCol, row.idx)
	}
}

// AppendRowByColIdxs appends the projection of a row to the chunk, using the
// columns of "row" selected by "colIdxs".
func (c *Chunk) AppendRowByColIdxs(row Row, colIdxs []int) {
	for i, srcIdx := range colIdxs {
		appendCellByCell(c.columns[i], row.c.columns[srcIdx], row.idx)
	}
	c.numVirtualRows++
}

func appendCellByCell(dst, src *column, rowIdx int) {
	dst.appendNullBitmap(!src.isNull(rowIdx))
	if src.isFixed() {
		elemLen := len(src.elemBuf)
		offset := rowIdx * elemLen
		dst.data = append(dst.data, src.data[offset:offset+elemLen]...)
	} else {
		start, end := src.offsets[rowIdx], src.offsets[rowIdx+1]
		dst.data = append(dst.data, src.data[start:end]...)
		dst.offsets = append(dst.offsets, int32(len(dst.data)))
	}
	dst.length++
}

// Append appends rows in [begin, end) in another Chunk to a Chunk.
func (c *Chunk) Append(other *Chunk, begin, end int) {
	for colID, src := range other.columns {
		dst := c.columns[colID]
		if src.isFixed() {
			elemLen := len(src.elemBuf)
			dst.data = append(dst.data, src.data[begin*elemLen:end*elemLen]...)
		} else {
			beginOffset, endOffset := src.offsets[begin], src.offsets[end]
			dst.data = append(dst.data, src.data[beginOffset:endOffset]...)
			for i := begin; i < end; i++ {
				dst.offsets = append(dst.offsets, dst.offsets[len(dst.offsets)-1]+src.offsets[i+1]-src.offsets[i])
			}
		}
		for i := begin; i < end; i++ {
			dst.appendNullBitmap(!src.isNull(i))
			dst.length++
		}
	}
	c.numVirtualRows += end - begin
}

// AppendNull appends a null value to the chunk.
func (c *Chunk) AppendNull(colIdx int) {
	c.columns[colIdx].appendNull()
}

// AppendInt64 appends an int64 value to the chunk.
func (c *Chunk) AppendInt64(colIdx int, i int64) {
	c.columns[colIdx].appendInt64(i)
}

// AppendFloat64 appends a float64 value to the chunk.
func (c *Chunk) AppendFloat64(colIdx int, f float64) {
	c.columns[colIdx].appendFloat64(f)
}

// AppendString appends a string value to the chunk.
func (c *Chunk) AppendString(colIdx int, str string) {
	c.columns[colIdx].appendString(str)
}

// AppendBytes appends a bytes value to the chunk.
func (c *Chunk) AppendBytes(colIdx int, b []byte) {
	c.columns[colIdx].appendBytes(b)
}
