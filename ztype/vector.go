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

package ztype

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Vector is a dense, typed vector of Zarr elements: the
// ZarrVectorValue sum type. Exactly one of the per-dtype slices below
// is populated, selected by Type, unless Nullable is set, in which
// case Values holds one Value per element (each either a concrete
// scalar of Type or Null(Type)).
type Vector struct {
	Type     DataType
	Nullable bool

	Values []Value // populated only when Nullable

	Bools       []bool
	Int8s       []int8
	Int16s      []int16
	Int32s      []int32
	Int64s      []int64
	Uint8s      []uint8
	Uint16s     []uint16
	Uint32s     []uint32
	Uint64s     []uint64
	Float16s    []uint16 // raw bit patterns; use Float16At to read
	Float32s    []float32
	Float64s    []float64
	Complex64s  []complex64
	Complex128s []complex128
	Strings     []string
	ByteSlices  [][]byte
}

// Len returns the number of elements in v.
func (v *Vector) Len() int {
	if v.Nullable {
		return len(v.Values)
	}
	switch v.Type {
	case Bool:
		return len(v.Bools)
	case Int8:
		return len(v.Int8s)
	case Int16:
		return len(v.Int16s)
	case Int32:
		return len(v.Int32s)
	case Int64:
		return len(v.Int64s)
	case UInt8:
		return len(v.Uint8s)
	case UInt16:
		return len(v.Uint16s)
	case UInt32:
		return len(v.Uint32s)
	case UInt64:
		return len(v.Uint64s)
	case Float16:
		return len(v.Float16s)
	case Float32:
		return len(v.Float32s)
	case Float64:
		return len(v.Float64s)
	case Complex64:
		return len(v.Complex64s)
	case Complex128:
		return len(v.Complex128s)
	case String:
		return len(v.Strings)
	case Bytes:
		return len(v.ByteSlices)
	default:
		return 0
	}
}

// Float16At returns element i of a Float16 vector as a float32.
func (v *Vector) Float16At(i int) float32 { return halfToFloat32(v.Float16s[i]) }

// At returns element i as a Value, regardless of whether v is
// Nullable.
func (v *Vector) At(i int) Value {
	if v.Nullable {
		return v.Values[i]
	}
	switch v.Type {
	case Bool:
		return BoolValue(v.Bools[i])
	case Int8:
		return IntValue(Int8, int64(v.Int8s[i]))
	case Int16:
		return IntValue(Int16, int64(v.Int16s[i]))
	case Int32:
		return IntValue(Int32, int64(v.Int32s[i]))
	case Int64:
		return IntValue(Int64, v.Int64s[i])
	case UInt8:
		return UintValue(UInt8, uint64(v.Uint8s[i]))
	case UInt16:
		return UintValue(UInt16, uint64(v.Uint16s[i]))
	case UInt32:
		return UintValue(UInt32, uint64(v.Uint32s[i]))
	case UInt64:
		return UintValue(UInt64, v.Uint64s[i])
	case Float16:
		return FloatValue(Float16, float64(v.Float16At(i)))
	case Float32:
		return FloatValue(Float32, float64(v.Float32s[i]))
	case Float64:
		return FloatValue(Float64, v.Float64s[i])
	case Complex64:
		return ComplexValue(Complex64, complex128(v.Complex64s[i]))
	case Complex128:
		return ComplexValue(Complex128, v.Complex128s[i])
	case String:
		return StringValue(v.Strings[i])
	case Bytes:
		return BytesValue(v.ByteSlices[i])
	default:
		return Value{}
	}
}

// Decode interprets raw as a packed sequence of DataType dt elements
// in the given byte order and returns the resulting Vector. A
// trailing partial element (len(raw) not a multiple of the element
// byte size) is silently dropped, matching observed behavior; use
// DecodeStrict to fail instead.
//
// String and Bytes cannot be decoded from a raw byte blob without
// length framing and always fail with a Decode error.
func Decode(endian Endian, dt DataType, raw []byte) (Vector, error) {
	return decode(endian, dt, raw, false)
}

// DecodeStrict is Decode, but fails with a Decode error if len(raw)
// is not an exact multiple of the dtype's byte size instead of
// silently dropping the trailing partial element.
func DecodeStrict(endian Endian, dt DataType, raw []byte) (Vector, error) {
	return decode(endian, dt, raw, true)
}

func decode(endian Endian, dt DataType, raw []byte, strict bool) (Vector, error) {
	const op = "ztype.Decode"
	if !dt.HasFixedSize() {
		return Vector{}, zarrerr.New(zarrerr.Decode, op,
			fmt.Errorf("%s has no fixed byte size and cannot be decoded from a raw blob", dt))
	}
	size := dt.ByteSize()
	n := len(raw) / size
	if strict && len(raw)%size != 0 {
		return Vector{}, zarrerr.New(zarrerr.Decode, op,
			fmt.Errorf("raw buffer of %d bytes is not a multiple of element size %d for %s", len(raw), size, dt))
	}
	var bo binary.ByteOrder = binary.LittleEndian
	if endian.Effective() == Big {
		bo = binary.BigEndian
	}
	out := Vector{Type: dt}
	switch dt {
	case Bool:
		s := make([]bool, n)
		for i := 0; i < n; i++ {
			s[i] = raw[i] != 0
		}
		out.Bools = s
	case Int8:
		s := make([]int8, n)
		for i := 0; i < n; i++ {
			s[i] = int8(raw[i])
		}
		out.Int8s = s
	case UInt8:
		s := make([]uint8, n)
		copy(s, raw[:n])
		out.Uint8s = s
	case Int16:
		s := make([]int16, n)
		for i := 0; i < n; i++ {
			s[i] = int16(bo.Uint16(raw[i*2:]))
		}
		out.Int16s = s
	case UInt16:
		s := make([]uint16, n)
		for i := 0; i < n; i++ {
			s[i] = bo.Uint16(raw[i*2:])
		}
		out.Uint16s = s
	case Float16:
		s := make([]uint16, n)
		for i := 0; i < n; i++ {
			s[i] = bo.Uint16(raw[i*2:])
		}
		out.Float16s = s
	case Int32:
		s := make([]int32, n)
		for i := 0; i < n; i++ {
			s[i] = int32(bo.Uint32(raw[i*4:]))
		}
		out.Int32s = s
	case UInt32:
		s := make([]uint32, n)
		for i := 0; i < n; i++ {
			s[i] = bo.Uint32(raw[i*4:])
		}
		out.Uint32s = s
	case Float32:
		s := make([]float32, n)
		for i := 0; i < n; i++ {
			s[i] = math.Float32frombits(bo.Uint32(raw[i*4:]))
		}
		out.Float32s = s
	case Int64:
		s := make([]int64, n)
		for i := 0; i < n; i++ {
			s[i] = int64(bo.Uint64(raw[i*8:]))
		}
		out.Int64s = s
	case UInt64:
		s := make([]uint64, n)
		for i := 0; i < n; i++ {
			s[i] = bo.Uint64(raw[i*8:])
		}
		out.Uint64s = s
	case Float64:
		s := make([]float64, n)
		for i := 0; i < n; i++ {
			s[i] = math.Float64frombits(bo.Uint64(raw[i*8:]))
		}
		out.Float64s = s
	case Complex64:
		s := make([]complex64, n)
		for i := 0; i < n; i++ {
			re := math.Float32frombits(bo.Uint32(raw[i*8:]))
			im := math.Float32frombits(bo.Uint32(raw[i*8+4:]))
			s[i] = complex(re, im)
		}
		out.Complex64s = s
	case Complex128:
		s := make([]complex128, n)
		for i := 0; i < n; i++ {
			re := math.Float64frombits(bo.Uint64(raw[i*16:]))
			im := math.Float64frombits(bo.Uint64(raw[i*16+8:]))
			s[i] = complex(re, im)
		}
		out.Complex128s = s
	default:
		return Vector{}, zarrerr.New(zarrerr.Decode, op, fmt.Errorf("unhandled dtype %s", dt))
	}
	return out, nil
}

// Fill produces a dense vector of length n filled with scalar,
// implementing fill_chunk. If scalar is the Null marker, a Nullable
// vector of n nulls is returned instead.
func Fill(scalar Value, n int) (Vector, error) {
	if scalar.IsNull() {
		vals := make([]Value, n)
		for i := range vals {
			vals[i] = scalar
		}
		return Vector{Type: scalar.Type, Nullable: true, Values: vals}, nil
	}
	dt := scalar.Type
	out := Vector{Type: dt}
	switch dt {
	case Bool:
		b, _ := scalar.Bool()
		s := make([]bool, n)
		for i := range s {
			s[i] = b
		}
		out.Bools = s
	case Int8, Int16, Int32, Int64:
		i64, _ := scalar.Int()
		switch dt {
		case Int8:
			s := make([]int8, n)
			for i := range s {
				s[i] = int8(i64)
			}
			out.Int8s = s
		case Int16:
			s := make([]int16, n)
			for i := range s {
				s[i] = int16(i64)
			}
			out.Int16s = s
		case Int32:
			s := make([]int32, n)
			for i := range s {
				s[i] = int32(i64)
			}
			out.Int32s = s
		case Int64:
			s := make([]int64, n)
			for i := range s {
				s[i] = i64
			}
			out.Int64s = s
		}
	case UInt8, UInt16, UInt32, UInt64:
		u64, _ := scalar.Uint()
		switch dt {
		case UInt8:
			s := make([]uint8, n)
			for i := range s {
				s[i] = uint8(u64)
			}
			out.Uint8s = s
		case UInt16:
			s := make([]uint16, n)
			for i := range s {
				s[i] = uint16(u64)
			}
			out.Uint16s = s
		case UInt32:
			s := make([]uint32, n)
			for i := range s {
				s[i] = uint32(u64)
			}
			out.Uint32s = s
		case UInt64:
			s := make([]uint64, n)
			for i := range s {
				s[i] = u64
			}
			out.Uint64s = s
		}
	case Float16:
		f, _ := scalar.Float64()
		bits := float32ToHalf(float32(f))
		s := make([]uint16, n)
		for i := range s {
			s[i] = bits
		}
		out.Float16s = s
	case Float32:
		f, _ := scalar.Float64()
		s := make([]float32, n)
		for i := range s {
			s[i] = float32(f)
		}
		out.Float32s = s
	case Float64:
		f, _ := scalar.Float64()
		s := make([]float64, n)
		for i := range s {
			s[i] = f
		}
		out.Float64s = s
	case Complex64:
		c, _ := scalar.Complex()
		s := make([]complex64, n)
		for i := range s {
			s[i] = complex64(c)
		}
		out.Complex64s = s
	case Complex128:
		c, _ := scalar.Complex()
		s := make([]complex128, n)
		for i := range s {
			s[i] = c
		}
		out.Complex128s = s
	case String:
		str, _ := scalar.Str()
		s := make([]string, n)
		for i := range s {
			s[i] = str
		}
		out.Strings = s
	case Bytes:
		b, _ := scalar.BytesVal()
		s := make([][]byte, n)
		for i := range s {
			s[i] = b
		}
		out.ByteSlices = s
	default:
		return Vector{}, zarrerr.New(zarrerr.Other, "ztype.Fill", fmt.Errorf("unhandled dtype %s", dt))
	}
	return out, nil
}

// Encode packs v (which must be a non-Nullable, fixed-size-dtype
// scalar) in the given byte order. It is the inverse of Decode for a
// single-element vector and is used by round-trip tests.
func Encode(endian Endian, v Value, dst []byte) error {
	var bo binary.ByteOrder = binary.LittleEndian
	if endian.Effective() == Big {
		bo = binary.BigEndian
	}
	switch v.Type {
	case Bool:
		b, _ := v.Bool()
		if b {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
	case Int8:
		i, _ := v.Int()
		dst[0] = byte(i)
	case UInt8:
		u, _ := v.Uint()
		dst[0] = byte(u)
	case Int16:
		i, _ := v.Int()
		bo.PutUint16(dst, uint16(i))
	case UInt16:
		u, _ := v.Uint()
		bo.PutUint16(dst, uint16(u))
	case Float16:
		f, _ := v.Float64()
		bo.PutUint16(dst, float32ToHalf(float32(f)))
	case Int32:
		i, _ := v.Int()
		bo.PutUint32(dst, uint32(i))
	case UInt32:
		u, _ := v.Uint()
		bo.PutUint32(dst, uint32(u))
	case Float32:
		f, _ := v.Float64()
		bo.PutUint32(dst, math.Float32bits(float32(f)))
	case Int64:
		i, _ := v.Int()
		bo.PutUint64(dst, uint64(i))
	case UInt64:
		u, _ := v.Uint()
		bo.PutUint64(dst, u)
	case Float64:
		f, _ := v.Float64()
		bo.PutUint64(dst, math.Float64bits(f))
	case Complex64:
		c, _ := v.Complex()
		bo.PutUint32(dst, math.Float32bits(float32(real(c))))
		bo.PutUint32(dst[4:], math.Float32bits(float32(imag(c))))
	case Complex128:
		c, _ := v.Complex()
		bo.PutUint64(dst, math.Float64bits(real(c)))
		bo.PutUint64(dst[8:], math.Float64bits(imag(c)))
	default:
		return zarrerr.New(zarrerr.Encode, "ztype.Encode", fmt.Errorf("%s has no fixed-size encoding", v.Type))
	}
	return nil
}
