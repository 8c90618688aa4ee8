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
	"math"
	"testing"

	"github.com/SnellerInc/zarr/ztype"
)

func TestFixedScaleOffsetDecodeInt16(t *testing.T) {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint16(raw[0:], uint16(int16(10)))
	binary.LittleEndian.PutUint16(raw[2:], uint16(int16(20)))
	f := FixedScaleOffset{Scale: 0.1, Offset: 1.0, AsType: ztype.Int16, Endian: ztype.Little}
	out, err := f.Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 8 {
		t.Fatalf("got %d bytes, want 8", len(out))
	}
	v0 := math.Float32frombits(binary.LittleEndian.Uint32(out[0:]))
	v1 := math.Float32frombits(binary.LittleEndian.Uint32(out[4:]))
	if v0 != 2.0 || v1 != 3.0 {
		t.Fatalf("got [%v %v], want [2 3]", v0, v1)
	}
}

func TestFixedScaleOffsetRejectsUnsupportedAsType(t *testing.T) {
	f := FixedScaleOffset{AsType: ztype.Float64}
	if _, err := f.Decode([]byte{0, 0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected an error for an unsupported AsType")
	}
}
