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

// Package zmeta parses Zarr v2 metadata documents (.zarray and
// .zmetadata) into the ztype data model: the NumPy dtype format
// string, the dtype-aware fill_value, and the array/consolidated
// metadata documents themselves.
package zmeta

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/ztype"
)

// DType is a parsed NumPy array-protocol type string, e.g. "<f8",
// "|b1", ">i4", "<M8[ns]".
type DType struct {
	Type     ztype.DataType
	Endian   ztype.Endian
	TimeUnit string // non-empty only for datetime64/timedelta64 ("ns", "us", "s", ...)
}

// ParseDType parses a NumPy array-protocol type string into a
// DataType, byte order, and (for datetime64/timedelta64) time unit.
// datetime64 and timedelta64 are represented as Int64, since this
// module treats them as opaque 8-byte integers; TimeUnit just records
// what the bracketed suffix said.
func ParseDType(s string) (DType, error) {
	const op = "zmeta.ParseDType"
	if len(s) < 3 {
		return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("dtype string %q is too short", s))
	}
	var endian ztype.Endian
	switch s[0] {
	case '<':
		endian = ztype.Little
	case '>':
		endian = ztype.Big
	case '|', '=':
		endian = ztype.NotApplicable
	default:
		return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("dtype string %q has an invalid byte-order marker %q", s, s[0]))
	}
	typeCode := s[1]
	rest := s[2:]

	var timeUnit, sizeStr string
	if idx := strings.IndexByte(rest, '['); idx >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("dtype string %q has an unterminated unit suffix", s))
		}
		timeUnit = rest[idx+1 : len(rest)-1]
		sizeStr = rest[:idx]
	} else {
		sizeStr = rest
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("dtype string %q has a non-numeric size %q", s, sizeStr))
	}

	switch typeCode {
	case 'b':
		if size != 1 {
			return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("bool dtype must be size 1, got %q", s))
		}
		return DType{Type: ztype.Bool, Endian: endian}, nil
	case 'i':
		t, err := intDType(size, false)
		if err != nil {
			return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("%q: %w", s, err))
		}
		return DType{Type: t, Endian: endian}, nil
	case 'u':
		t, err := intDType(size, true)
		if err != nil {
			return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("%q: %w", s, err))
		}
		return DType{Type: t, Endian: endian}, nil
	case 'f':
		switch size {
		case 2:
			return DType{Type: ztype.Float16, Endian: endian}, nil
		case 4:
			return DType{Type: ztype.Float32, Endian: endian}, nil
		case 8:
			return DType{Type: ztype.Float64, Endian: endian}, nil
		}
		return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("unsupported float size in %q", s))
	case 'c':
		switch size {
		case 8:
			return DType{Type: ztype.Complex64, Endian: endian}, nil
		case 16:
			return DType{Type: ztype.Complex128, Endian: endian}, nil
		}
		return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("unsupported complex size in %q", s))
	case 'S', 'U':
		return DType{Type: ztype.String, Endian: endian}, nil
	case 'V':
		return DType{Type: ztype.Bytes, Endian: endian}, nil
	case 'M', 'm':
		// datetime64/timedelta64: stored as an 8-byte integer count of
		// TimeUnit since the epoch (datetime64) or a duration
		// (timedelta64); this module exposes the raw integer and the
		// unit string, leaving calendar interpretation to the caller.
		return DType{Type: ztype.Int64, Endian: endian, TimeUnit: timeUnit}, nil
	default:
		return DType{}, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("unknown type code %q in %q", typeCode, s))
	}
}

func intDType(size int, unsigned bool) (ztype.DataType, error) {
	if unsigned {
		switch size {
		case 1:
			return ztype.UInt8, nil
		case 2:
			return ztype.UInt16, nil
		case 4:
			return ztype.UInt32, nil
		case 8:
			return ztype.UInt64, nil
		}
		return 0, fmt.Errorf("unsupported unsigned integer size %d", size)
	}
	switch size {
	case 1:
		return ztype.Int8, nil
	case 2:
		return ztype.Int16, nil
	case 4:
		return ztype.Int32, nil
	case 8:
		return ztype.Int64, nil
	}
	return 0, fmt.Errorf("unsupported integer size %d", size)
}
