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

import "testing"

func TestValueNull(t *testing.T) {
	v := Null(Int32)
	if !v.IsNull() {
		t.Fatal("expected IsNull")
	}
	if _, ok := v.Int(); ok {
		t.Fatal("Int() should fail on a null value")
	}
}

func TestValueIntUint(t *testing.T) {
	iv := IntValue(Int16, -5)
	i, ok := iv.Int()
	if !ok || i != -5 {
		t.Fatalf("got (%d, %v), want (-5, true)", i, ok)
	}
	if _, ok := iv.Uint(); ok {
		t.Fatal("Uint() should fail on a signed value")
	}

	uv := UintValue(UInt32, 42)
	u, ok := uv.Uint()
	if !ok || u != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", u, ok)
	}
}

func TestValueFloat64Coercion(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{BoolValue(true), 1},
		{BoolValue(false), 0},
		{IntValue(Int32, -3), -3},
		{UintValue(UInt8, 7), 7},
		{FloatValue(Float64, 2.5), 2.5},
		{ComplexValue(Complex128, complex(1, 2)), 1},
	}
	for _, c := range cases {
		got, err := c.v.Float64()
		if err != nil {
			t.Errorf("Float64() for %v: unexpected error: %v", c.v, err)
			continue
		}
		if got != c.want {
			t.Errorf("Float64() for %v = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestValueFloat64RejectsStringAndBytes(t *testing.T) {
	if _, err := StringValue("x").Float64(); err == nil {
		t.Error("expected error converting a string Value to float64")
	}
	if _, err := BytesValue([]byte("x")).Float64(); err == nil {
		t.Error("expected error converting a bytes Value to float64")
	}
}

func TestZeroValue(t *testing.T) {
	if b, _ := ZeroValue(Bool).Bool(); b != false {
		t.Error("ZeroValue(Bool) should be false")
	}
	if i, _ := ZeroValue(Int64).Int(); i != 0 {
		t.Error("ZeroValue(Int64) should be 0")
	}
	if s, _ := ZeroValue(String).Str(); s != "" {
		t.Error(`ZeroValue(String) should be ""`)
	}
}

func TestValueStringer(t *testing.T) {
	if Null(Float64).String() != "Null(float64)" {
		t.Errorf("got %q", Null(Float64).String())
	}
	if BoolValue(true).String() != "true" {
		t.Errorf("got %q", BoolValue(true).String())
	}
}
