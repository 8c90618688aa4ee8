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
	"encoding/json"
	"testing"

	"github.com/SnellerInc/zarr/ztype"
)

func TestParseFillValueNullNonFloat(t *testing.T) {
	fv, err := ParseFillValue(json.RawMessage(`null`), ztype.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fv.Kind != ztype.FillScalar {
		t.Fatalf("null fill for int32 should be a zero scalar, got kind %v", fv.Kind)
	}
	i, ok := fv.Scalar.Int()
	if !ok || i != 0 {
		t.Fatalf("null fill for int32 should be 0, got (%d, %v)", i, ok)
	}
}

func TestParseFillValueNullFloat(t *testing.T) {
	fv, err := ParseFillValue(json.RawMessage(`null`), ztype.Float64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fv.Kind != ztype.FillNaN {
		t.Fatalf("null fill for float64 should be the NaN sentinel, got kind %v", fv.Kind)
	}
}

func TestParseFillValueNaNStringRejectedForInt(t *testing.T) {
	if _, err := ParseFillValue(json.RawMessage(`"NaN"`), ztype.Int32); err == nil {
		t.Fatal("expected error for NaN fill_value on an integer dtype")
	}
}

func TestParseFillValueNumericRange(t *testing.T) {
	if _, err := ParseFillValue(json.RawMessage(`300`), ztype.Int8); err == nil {
		t.Fatal("expected out-of-range error for 300 on int8")
	}
	fv, err := ParseFillValue(json.RawMessage(`127`), ztype.Int8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, _ := fv.Scalar.Int()
	if i != 127 {
		t.Fatalf("got %d, want 127", i)
	}
}

func TestParseFillValueFractionalRejectedForInt(t *testing.T) {
	if _, err := ParseFillValue(json.RawMessage(`1.5`), ztype.Int32); err == nil {
		t.Fatal("expected error for fractional fill_value on an integer dtype")
	}
}

func TestParseFillValueString(t *testing.T) {
	fv, err := ParseFillValue(json.RawMessage(`"hello"`), ztype.String)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := fv.Scalar.Str()
	if !ok || s != "hello" {
		t.Fatalf("got (%q, %v), want (\"hello\", true)", s, ok)
	}
}

func TestParseFillValueBytesBase64(t *testing.T) {
	// base64 of 0x00 0x01 0x02 is "AAEC"
	fv, err := ParseFillValue(json.RawMessage(`"AAEC"`), ztype.Bytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := fv.Scalar.BytesVal()
	if !ok || len(b) != 3 || b[0] != 0 || b[1] != 1 || b[2] != 2 {
		t.Fatalf("got (%v, %v)", b, ok)
	}
}
