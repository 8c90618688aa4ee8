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

import "testing"

func TestParseConsolidated(t *testing.T) {
	doc := []byte(`{
		"zarr_consolidated_format": 1,
		"metadata": {
			".zgroup": {"zarr_format": 2},
			"temperature/.zarray": {
				"zarr_format": 2, "shape": [4], "chunks": [2],
				"dtype": "<f4", "fill_value": "NaN", "order": "C",
				"compressor": null, "filters": null
			},
			"temperature/.zattrs": {"units": "celsius"},
			"pressure/.zarray": {
				"zarr_format": 2, "shape": [4], "chunks": [2],
				"dtype": "<i4", "fill_value": 0, "order": "C",
				"compressor": null, "filters": null
			}
		}
	}`)
	c, err := ParseConsolidated(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Format != 1 {
		t.Fatalf("format = %d, want 1", c.Format)
	}
	if len(c.Arrays) != 2 {
		t.Fatalf("got %d arrays, want 2: %v", len(c.Arrays), c.Arrays)
	}
	if _, ok := c.Arrays["temperature"]; !ok {
		t.Errorf("missing temperature array")
	}
	if _, ok := c.Arrays["pressure"]; !ok {
		t.Errorf("missing pressure array")
	}
}

func TestParseConsolidatedBadFormat(t *testing.T) {
	doc := []byte(`{"zarr_consolidated_format": 2, "metadata": {}}`)
	if _, err := ParseConsolidated(doc); err == nil {
		t.Fatal("expected error for unsupported consolidated format")
	}
}
