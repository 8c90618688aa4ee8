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

package zmeta

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"

	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/ztype"
)

// intRange returns the [min, max] a DataType's integer representation
// can hold, as float64 so it can be compared against a decoded JSON
// number.
func intRange(dt ztype.DataType) (lo, hi float64) {
	switch dt {
	case ztype.Int8:
		return -128, 127
	case ztype.Int16:
		return -32768, 32767
	case ztype.Int32:
		return -2147483648, 2147483647
	case ztype.Int64:
		return -9223372036854775808, 9223372036854775807
	case ztype.UInt8:
		return 0, 255
	case ztype.UInt16:
		return 0, 65535
	case ztype.UInt32:
		return 0, 4294967295
	case ztype.UInt64:
		return 0, 18446744073709551615
	default:
		return 0, 0
	}
}

func isUnsigned(dt ztype.DataType) bool {
	switch dt {
	case ztype.UInt8, ztype.UInt16, ztype.UInt32, ztype.UInt64:
		return true
	}
	return false
}

// ParseFillValue parses a .zarray fill_value document against dt,
// implementing the dtype-aware rules in spec.md §4.3: a JSON null
// maps to the dtype's zero scalar for every dtype except float/complex,
// where it instead denotes the NaN sentinel (matching how NumPy
// represents a missing float); "NaN", "Infinity", and "-Infinity" are
// only accepted for float/complex dtypes; numeric fill values must fit
// dt's representable range; string fill values are only valid for
// String (taken verbatim) and Bytes (base64-decoded, matching the
// numcodecs convention for binary fill values in JSON).
func ParseFillValue(raw json.RawMessage, dt ztype.DataType) (ztype.FillValue, error) {
	const op = "zmeta.ParseFillValue"
	if len(raw) == 0 {
		return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("missing fill_value"))
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ztype.FillValue{}, zarrerr.New(zarrerr.Json, op, err)
	}
	if v == nil {
		if dt.IsFloat() || dt.IsComplex() {
			return ztype.FillNaNValue, nil
		}
		return ztype.FillOf(ztype.ZeroValue(dt)), nil
	}
	switch t := v.(type) {
	case string:
		switch t {
		case "NaN":
			if !dt.IsFloat() && !dt.IsComplex() {
				return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("NaN fill value is not valid for dtype %s", dt))
			}
			return ztype.FillNaNValue, nil
		case "Infinity":
			if !dt.IsFloat() && !dt.IsComplex() {
				return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("Infinity fill value is not valid for dtype %s", dt))
			}
			return ztype.FillInfValue, nil
		case "-Infinity":
			if !dt.IsFloat() && !dt.IsComplex() {
				return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("-Infinity fill value is not valid for dtype %s", dt))
			}
			return ztype.FillNegInfValue, nil
		default:
			switch dt {
			case ztype.String:
				return ztype.FillOf(ztype.StringValue(t)), nil
			case ztype.Bytes:
				b, err := base64.StdEncoding.DecodeString(t)
				if err != nil {
					return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("fill_value %q is not valid base64 for dtype bytes: %w", t, err))
				}
				return ztype.FillOf(ztype.BytesValue(b)), nil
			default:
				return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("string fill_value %q is not valid for dtype %s", t, dt))
			}
		}
	case bool:
		if dt != ztype.Bool {
			return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("bool fill_value is not valid for dtype %s", dt))
		}
		return ztype.FillOf(ztype.BoolValue(t)), nil
	case float64:
		switch {
		case dt == ztype.Bool:
			return ztype.FillOf(ztype.BoolValue(t != 0)), nil
		case dt.IsInteger():
			if t != math.Trunc(t) {
				return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("fractional fill_value %v is not valid for integer dtype %s", t, dt))
			}
			lo, hi := intRange(dt)
			if t < lo || t > hi {
				return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("fill_value %v is out of range for dtype %s", t, dt))
			}
			if isUnsigned(dt) {
				return ztype.FillOf(ztype.UintValue(dt, uint64(t))), nil
			}
			return ztype.FillOf(ztype.IntValue(dt, int64(t))), nil
		case dt.IsFloat():
			return ztype.FillOf(ztype.FloatValue(dt, t)), nil
		case dt.IsComplex():
			return ztype.FillOf(ztype.ComplexValue(dt, complex(t, 0))), nil
		default:
			return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("numeric fill_value is not valid for dtype %s", dt))
		}
	default:
		return ztype.FillValue{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("fill_value has an unsupported JSON shape (%T)", v))
	}
}
