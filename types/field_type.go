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

package types

// Type codes of the column values an operator can carry.
const (
	TypeLonglong byte = 1 + iota
	TypeDouble
	TypeVarchar
	TypeBlob
)

// FieldType describes the value type of a column.
type FieldType struct {
	Tp byte
}

// NewFieldType builds a FieldType from a type code.
func NewFieldType(tp byte) *FieldType {
	return &FieldType{Tp: tp}
}

// IsFixed reports whether values of this type occupy a fixed number of bytes.
func (ft *FieldType) IsFixed() bool {
	return ft.Tp == TypeLonglong || ft.Tp == TypeDouble
}

// String implements fmt.Stringer.
func (ft *FieldType) String() string {
	switch ft.Tp {
	case TypeLonglong:
		return "bigint"
	case TypeDouble:
		return "double"
	case TypeVarchar:
		return "varchar"
	case TypeBlob:
		return "blob"
	}
	return "unknown"
}
