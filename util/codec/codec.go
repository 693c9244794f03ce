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

package codec

import (
	"encoding/binary"
	"math"

	"github.com/kokizzu/trino/types"
	"github.com/kokizzu/trino/util/chunk"
	"github.com/pingcap/errors"
)

// First byte in the encoded value which specifies the encoding type.
const (
	NilFlag          byte = 0
	compactBytesFlag byte = 2
	intFlag          byte = 3
	floatFlag        byte = 5
)

const signMask uint64 = 0x8000000000000000

// EncodeIntToCmpUint makes int v to comparable uint type.
func EncodeIntToCmpUint(v int64) uint64 {
	return uint64(v) ^ signMask
}

// DecodeCmpUintToInt decodes the u that encoded by EncodeIntToCmpUint.
func DecodeCmpUintToInt(u uint64) int64 {
	return int64(u ^ signMask)
}

// EncodeInt appends the encoded value to slice b and returns the appended
// slice. EncodeInt guarantees that the encoded value is in ascending order
// for comparison.
func EncodeInt(b []byte, v int64) []byte {
	var data [8]byte
	u := EncodeIntToCmpUint(v)
	binary.BigEndian.PutUint64(data[:], u)
	return append(b, data[:]...)
}

// DecodeInt decodes value encoded by EncodeInt before.
// It returns the leftover un-decoded slice, decoded value if no error.
func DecodeInt(b []byte) ([]byte, int64, error) {
	if len(b) < 8 {
		return nil, 0, errors.New("insufficient bytes to decode value")
	}
	u := binary.BigEndian.Uint64(b[:8])
	return b[8:], DecodeCmpUintToInt(u), nil
}

func encodeFloatToCmpUint64(f float64) uint64 {
	u := math.Float64bits(f)
	if f >= 0 {
		u |= signMask
	} else {
		u = ^u
	}
	return u
}

// EncodeFloat encodes a float v into a byte slice which can be sorted
// lexicographically later.
func EncodeFloat(b []byte, v float64) []byte {
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], encodeFloatToCmpUint64(v))
	return append(b, data[:]...)
}

// EncodeCompactBytes joins bytes with its length into a byte slice. It is more
// efficient in both space and time compared to EncodeBytes. Note that the
// encoded result is not memcomparable.
func EncodeCompactBytes(b []byte, data []byte) []byte {
	b = appendLength(b, int64(len(data)))
	return append(b, data...)
}

// DecodeCompactBytes decodes bytes which is encoded by EncodeCompactBytes
// before.
func DecodeCompactBytes(b []byte) ([]byte, []byte, error) {
	n, nb := binary.Varint(b)
	if nb <= 0 {
		return nil, nil, errors.New("insufficient bytes to decode value length")
	}
	b = b[nb:]
	if int64(len(b)) < n {
		return nil, nil, errors.Errorf("insufficient bytes to decode value, expected length: %v", n)
	}
	return b[n:], b[:n], nil
}

func appendLength(b []byte, length int64) []byte {
	var data [binary.MaxVarintLen64]byte
	n := binary.PutVarint(data[:], length)
	return append(b, data[:n]...)
}

// EncodeChunkRow appends the encoding of the chunk row columns selected by
// colIdxs to b and returns the appended slice. The encoding is unambiguous:
// two rows encode to equal bytes iff their selected column values are equal.
func EncodeChunkRow(b []byte, row chunk.Row, fts []*types.FieldType, colIdxs []int) ([]byte, error) {
	for i, colIdx := range colIdxs {
		if row.IsNull(colIdx) {
			b = append(b, NilFlag)
			continue
		}
		switch fts[i].Tp {
		case types.TypeLonglong:
			b = append(b, intFlag)
			b = EncodeInt(b, row.GetInt64(colIdx))
		case types.TypeDouble:
			b = append(b, floatFlag)
			b = EncodeFloat(b, row.GetFloat64(colIdx))
		case types.TypeVarchar, types.TypeBlob:
			b = append(b, compactBytesFlag)
			b = EncodeCompactBytes(b, row.GetBytes(colIdx))
		default:
			return nil, errors.Errorf("unsupported encode type %d", fts[i].Tp)
		}
	}
	return b, nil
}
