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

// FillKind is the closed set of fill-value shapes.
type FillKind int

const (
	// FillScalar holds a concrete Value.
	FillScalar FillKind = iota
	FillNaN
	FillInfinity
	FillNegInfinity
)

// FillValue is the parsed fill_value of a Zarr array.
type FillValue struct {
	Kind   FillKind
	Scalar Value // populated only when Kind == FillScalar
}

func FillOf(v Value) FillValue { return FillValue{Kind: FillScalar, Scalar: v} }

var (
	FillNaNValue    = FillValue{Kind: FillNaN}
	FillInfValue    = FillValue{Kind: FillInfinity}
	FillNegInfValue = FillValue{Kind: FillNegInfinity}
)

// ToScalar resolves fv to a concrete Value of dtype dt. NaN/Infinity/
// NegInfinity are only meaningful for float or complex dtypes; per
// spec.md §4.3 these must never reach a non-float/complex dtype
// (zmeta's parser rejects such JSON at parse time, and null is
// special-cased away from the NaN sentinel for non-float dtypes — see
// DESIGN.md), so encountering one here for another dtype is an
// internal inconsistency rather than a user-input error.
func (fv FillValue) ToScalar(dt DataType) (Value, error) {
	switch fv.Kind {
	case FillScalar:
		return fv.Scalar, nil
	case FillNaN:
		if !dt.IsFloat() && !dt.IsComplex() {
			return Value{}, zarrerr.New(zarrerr.Metadata, "ztype.FillValue.ToScalar",
				fmt.Errorf("NaN fill value is not valid for dtype %s", dt))
		}
		if dt.IsComplex() {
			return ComplexValue(dt, complex(math.NaN(), math.NaN())), nil
		}
		return FloatValue(dt, math.NaN()), nil
	case FillInfinity, FillNegInfinity:
		if !dt.IsFloat() && !dt.IsComplex() {
			return Value{}, zarrerr.New(zarrerr.Metadata, "ztype.FillValue.ToScalar",
				fmt.Errorf("Infinity fill value is not valid for dtype %s", dt))
		}
		sign := 1.0
		if fv.Kind == FillNegInfinity {
			sign = -1.0
		}
		if dt.IsComplex() {
			return ComplexValue(dt, complex(sign*math.Inf(1), 0)), nil
		}
		return FloatValue(dt, sign*math.Inf(1)), nil
	default:
		return Value{}, zarrerr.New(zarrerr.Other, "ztype.FillValue.ToScalar",
			fmt.Errorf("unknown fill kind %d", fv.Kind))
	}
}

// ToF64 converts fv to the float64 used by the lossy whole-array
// load path. NaN/±Infinity sentinels convert directly to
// math.NaN()/math.Inf regardless of dtype, matching spec.md §4.5.
func (fv FillValue) ToF64() (float64, error) {
	switch fv.Kind {
	case FillNaN:
		return math.NaN(), nil
	case FillInfinity:
		return math.Inf(1), nil
	case FillNegInfinity:
		return math.Inf(-1), nil
	case FillScalar:
		if fv.Scalar.IsNull() {
			return math.NaN(), nil
		}
		return fv.Scalar.Float64()
	default:
		return 0, zarrerr.New(zarrerr.Other, "ztype.FillValue.ToF64",
			fmt.Errorf("unknown fill kind %d", fv.Kind))
	}
}
