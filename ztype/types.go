// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package ztype implements the Zarr data model: the dtype
// enumeration, endian and array-order tags, the scalar and
// typed-vector sum types, fill-value handling, and the raw-bytes to
// typed-vector decoder.
package ztype

import "fmt"

// DataType is the closed set of element types a Zarr array can hold.
type DataType int

const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float16
	Float32
	Float64
	Complex64
	Complex128
	String
	Bytes
)

func (d DataType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("DataType(%d)", int(d))
	}
}

// IsFloat reports whether d is Float16, Float32, or Float64.
func (d DataType) IsFloat() bool {
	return d == Float16 || d == Float32 || d == Float64
}

// IsComplex reports whether d is Complex64 or Complex128.
func (d DataType) IsComplex() bool {
	return d == Complex64 || d == Complex128
}

// IsInteger reports whether d is a signed or unsigned fixed-width
// integer type.
func (d DataType) IsInteger() bool {
	switch d {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

// HasFixedSize reports whether d has a well-defined ByteSize; String
// and Bytes do not.
func (d DataType) HasFixedSize() bool {
	switch d {
	case String, Bytes:
		return false
	default:
		return true
	}
}

// ByteSize returns the packed byte width of one element of d, or 0
// for String/Bytes, which carry no fixed size.
func (d DataType) ByteSize() int {
	switch d {
	case Bool, Int8, UInt8:
		return 1
	case Int16, UInt16, Float16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// Endian is the byte order of a fixed-size dtype.
type Endian int

const (
	Little Endian = iota
	Big
	NotApplicable
)

func (e Endian) String() string {
	switch e {
	case Little:
		return "little"
	case Big:
		return "big"
	case NotApplicable:
		return "n/a"
	default:
		return fmt.Sprintf("Endian(%d)", int(e))
	}
}

// Effective returns the endianness to use when actually decoding
// bytes: NotApplicable is treated as Little, per spec.
func (e Endian) Effective() Endian {
	if e == NotApplicable {
		return Little
	}
	return e
}

// ArrayOrder is the memory layout of a flattened array.
type ArrayOrder int

const (
	// C is row-major: the last dimension is fastest-varying.
	C ArrayOrder = iota
	// F is column-major: the first dimension is fastest-varying.
	F
)

func (o ArrayOrder) String() string {
	if o == F {
		return "F"
	}
	return "C"
}
