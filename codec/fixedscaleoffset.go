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

package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/ztype"
)

// FixedScaleOffset implements the numcodecs FixedScaleOffset filter:
// out[i] = in[i]*Scale + Offset, written as little-endian float32.
// Decode only supports AsType in {Int16, Int32, UInt16, UInt32};
// every other combination fails explicitly rather than silently
// producing garbage.
type FixedScaleOffset struct {
	Scale, Offset float64
	AsType        ztype.DataType
	Endian        ztype.Endian
}

func (FixedScaleOffset) Name() string { return "fixedscaleoffset" }

func (f FixedScaleOffset) Decode(src []byte) ([]byte, error) {
	const op = "codec.FixedScaleOffset.Decode"
	switch f.AsType {
	case ztype.Int16, ztype.Int32, ztype.UInt16, ztype.UInt32:
	default:
		return nil, zarrerr.New(zarrerr.Codec, op,
			fmt.Errorf("astype %s is not supported (only int16/int32/uint16/uint32 -> float32 decode)", f.AsType))
	}
	v, err := ztype.Decode(f.Endian, f.AsType, src)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Decode, op, err)
	}
	n := v.Len()
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		var raw float64
		switch f.AsType {
		case ztype.Int16:
			raw = float64(v.Int16s[i])
		case ztype.Int32:
			raw = float64(v.Int32s[i])
		case ztype.UInt16:
			raw = float64(v.Uint16s[i])
		case ztype.UInt32:
			raw = float64(v.Uint32s[i])
		}
		val := raw*f.Scale + f.Offset
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(val)))
	}
	return out, nil
}

