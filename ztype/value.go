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
	"fmt"
	"math"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Value is a single Zarr scalar: a tagged union over every DataType
// plus a Null(dtype) marker. The tag (Type) always agrees with the
// populated representation.
type Value struct {
	Type DataType
	null bool

	b  bool
	i  int64
	u  uint64
	f  float64
	c  complex128
	s  string
	by []byte
}

// Null constructs the Null(dtype) marker for dt.
func Null(dt DataType) Value { return Value{Type: dt, null: true} }

// IsNull reports whether v is the Null marker.
func (v Value) IsNull() bool { return v.null }

func BoolValue(b bool) Value { return Value{Type: Bool, b: b} }

// IntValue constructs a signed-integer scalar of the given width.
// dt must be one of Int8/Int16/Int32/Int64.
func IntValue(dt DataType, i int64) Value { return Value{Type: dt, i: i} }

// UintValue constructs an unsigned-integer scalar of the given width.
// dt must be one of UInt8/UInt16/UInt32/UInt64.
func UintValue(dt DataType, u uint64) Value { return Value{Type: dt, u: u} }

// FloatValue constructs a float scalar. dt must be one of
// Float16/Float32/Float64; the bit pattern is always stored widened
// to float64.
func FloatValue(dt DataType, f float64) Value { return Value{Type: dt, f: f} }

// ComplexValue constructs a complex scalar. dt must be Complex64 or
// Complex128.
func ComplexValue(dt DataType, c complex128) Value { return Value{Type: dt, c: c} }

func StringValue(s string) Value { return Value{Type: String, s: s} }

func BytesValue(b []byte) Value { return Value{Type: Bytes, by: b} }

// ZeroValue returns the default ("zero") scalar for dt: false, 0, 0.0,
// 0+0i, "", or nil bytes, depending on dt.
func ZeroValue(dt DataType) Value {
	switch dt {
	case Bool:
		return BoolValue(false)
	case Int8, Int16, Int32, Int64:
		return IntValue(dt, 0)
	case UInt8, UInt16, UInt32, UInt64:
		return UintValue(dt, 0)
	case Float16, Float32, Float64:
		return FloatValue(dt, 0)
	case Complex64, Complex128:
		return ComplexValue(dt, 0)
	case String:
		return StringValue("")
	case Bytes:
		return BytesValue(nil)
	default:
		return Value{Type: dt}
	}
}

func (v Value) Bool() (bool, bool) {
	if v.Type != Bool || v.null {
		return false, false
	}
	return v.b, true
}

func (v Value) Int() (int64, bool) {
	if v.null {
		return 0, false
	}
	switch v.Type {
	case Int8, Int16, Int32, Int64:
		return v.i, true
	}
	return 0, false
}

func (v Value) Uint() (uint64, bool) {
	if v.null {
		return 0, false
	}
	switch v.Type {
	case UInt8, UInt16, UInt32, UInt64:
		return v.u, true
	}
	return 0, false
}

func (v Value) Complex() (complex128, bool) {
	if v.null || !v.Type.IsComplex() {
		return 0, false
	}
	return v.c, true
}

func (v Value) Str() (string, bool) {
	if v.null || v.Type != String {
		return "", false
	}
	return v.s, true
}

func (v Value) BytesVal() ([]byte, bool) {
	if v.null || v.Type != Bytes {
		return nil, false
	}
	return v.by, true
}

// Float64 coerces v to a float64, the representation used by the
// lossy whole-array load path. It fails with a TypeConversion error
// for String/Bytes; a Null value converts to NaN without error.
func (v Value) Float64() (float64, error) {
	if v.null {
		return math.NaN(), nil
	}
	switch v.Type {
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case Int8, Int16, Int32, Int64:
		return float64(v.i), nil
	case UInt8, UInt16, UInt32, UInt64:
		return float64(v.u), nil
	case Float16, Float32, Float64:
		return v.f, nil
	case Complex64, Complex128:
		return real(v.c), nil
	default:
		return 0, zarrerr.New(zarrerr.TypeConversion, "ztype.Value.Float64",
			fmt.Errorf("cannot convert %s to float64", v.Type))
	}
}

func (v Value) String() string {
	if v.null {
		return fmt.Sprintf("Null(%s)", v.Type)
	}
	switch v.Type {
	case Bool:
		return fmt.Sprintf("%v", v.b)
	case Int8, Int16, Int32, Int64:
		return fmt.Sprintf("%d", v.i)
	case UInt8, UInt16, UInt32, UInt64:
		return fmt.Sprintf("%d", v.u)
	case Float16, Float32, Float64:
		return fmt.Sprintf("%v", v.f)
	case Complex64, Complex128:
		return fmt.Sprintf("%v", v.c)
	case String:
		return v.s
	case Bytes:
		return fmt.Sprintf("%x", v.by)
	default:
		return "?"
	}
}
