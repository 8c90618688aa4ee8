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
	"math"
	"testing"
)

func TestHalfToFloat32Basics(t *testing.T) {
	cases := []struct {
		bits uint16
		want float32
	}{
		{0x0000, 0},
		{0x8000, 0}, // -0, which compares equal to 0 under float equality
		{0x3c00, 1.0},
		{0xbc00, -1.0},
		{0x4000, 2.0},
	}
	for _, c := range cases {
		got := halfToFloat32(c.bits)
		if got != c.want {
			t.Errorf("halfToFloat32(%#04x) = %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestFloat32ToHalfRoundTrip(t *testing.T) {
	vals := []float32{0, 1, -1, 2, 0.5, -0.5, 10, -10}
	for _, f := range vals {
		bits := float32ToHalf(f)
		back := halfToFloat32(bits)
		if back != f {
			t.Errorf("round trip for %v: got %v (bits %#04x)", f, back, bits)
		}
	}
}

func TestHalfInfinityAndNaN(t *testing.T) {
	inf := halfToFloat32(0x7c00)
	if !math.IsInf(float64(inf), 1) {
		t.Errorf("expected +Inf, got %v", inf)
	}
	nan := halfToFloat32(0x7e00)
	if nan == nan {
		t.Errorf("expected NaN, got %v", nan)
	}
}
