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

package group

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/SnellerInc/zarr/store"
)

func putInt32sLE(m *store.Mem, path string, vals ...int32) {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	m.Put(path, buf)
}

const zarrayDoc = `{
	"zarr_format": 2, "shape": [2], "chunks": [2],
	"dtype": "<i4", "fill_value": 0, "order": "C",
	"compressor": null, "filters": null
}`

func TestOpenConsolidated(t *testing.T) {
	m := store.NewMem()
	m.Put("g/.zmetadata", []byte(`{
		"zarr_consolidated_format": 1,
		"metadata": {
			"temperature/.zarray": {
				"zarr_format": 2, "shape": [2], "chunks": [2],
				"dtype": "<f4", "fill_value": 0, "order": "C",
				"compressor": null, "filters": null
			},
			"pressure/.zarray": {
				"zarr_format": 2, "shape": [2], "chunks": [2],
				"dtype": "<i4", "fill_value": 0, "order": "C",
				"compressor": null, "filters": null
			}
		}
	}`))
	putInt32sLE(m, "g/pressure/0", 1013, 1012)

	g, err := Open(context.Background(), m, "g", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	names := g.Names()
	if len(names) != 2 || names[0] != "pressure" || names[1] != "temperature" {
		t.Fatalf("got names %v, want [pressure temperature]", names)
	}

	a, err := g.Array(context.Background(), "pressure")
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	vals, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vals[0] != 1013 || vals[1] != 1012 {
		t.Fatalf("got %v, want [1013 1012]", vals)
	}
}

func TestOpenUnconsolidatedDiscovery(t *testing.T) {
	m := store.NewMem()
	m.Put("g/.zgroup", []byte(`{"zarr_format":2}`))
	m.Put("g/temperature/.zarray", []byte(zarrayDoc))
	putInt32sLE(m, "g/temperature/0", 10, 20)
	m.Put("g/pressure/.zarray", []byte(zarrayDoc))
	putInt32sLE(m, "g/pressure/0", 30, 40)

	g, err := Open(context.Background(), m, "g", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	names := g.Names()
	if len(names) != 2 {
		t.Fatalf("got names %v, want 2 entries", names)
	}

	all, err := g.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if all["temperature"][0] != 10 || all["pressure"][0] != 30 {
		t.Fatalf("got %v", all)
	}
}

func TestRefreshSkipsReparseWhenUnchanged(t *testing.T) {
	m := store.NewMem()
	doc := []byte(`{
		"zarr_consolidated_format": 1,
		"metadata": {
			"temperature/.zarray": {
				"zarr_format": 2, "shape": [2], "chunks": [2],
				"dtype": "<f4", "fill_value": 0, "order": "C",
				"compressor": null, "filters": null
			}
		}
	}`)
	m.Put("g/.zmetadata", doc)

	g, err := Open(context.Background(), m, "g", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(g.Names()) != 1 {
		t.Fatalf("got names %v, want 1 entry", g.Names())
	}

	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(g.Names()) != 1 {
		t.Fatalf("names changed after a no-op Refresh: %v", g.Names())
	}

	m.Put("g/.zmetadata", []byte(`{
		"zarr_consolidated_format": 1,
		"metadata": {
			"temperature/.zarray": {
				"zarr_format": 2, "shape": [2], "chunks": [2],
				"dtype": "<f4", "fill_value": 0, "order": "C",
				"compressor": null, "filters": null
			},
			"pressure/.zarray": {
				"zarr_format": 2, "shape": [2], "chunks": [2],
				"dtype": "<i4", "fill_value": 0, "order": "C",
				"compressor": null, "filters": null
			}
		}
	}`))
	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh after change: %v", err)
	}
	names := g.Names()
	if len(names) != 2 || names[0] != "pressure" || names[1] != "temperature" {
		t.Fatalf("got names %v after Refresh, want [pressure temperature]", names)
	}
}

func TestRefreshNoOpForDiscoveredGroup(t *testing.T) {
	m := store.NewMem()
	m.Put("g/.zgroup", []byte(`{"zarr_format":2}`))
	m.Put("g/temperature/.zarray", []byte(zarrayDoc))
	putInt32sLE(m, "g/temperature/0", 10, 20)

	g, err := Open(context.Background(), m, "g", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh should be a no-op, got: %v", err)
	}
}

func TestLoadAllTyped(t *testing.T) {
	m := store.NewMem()
	m.Put("g/.zgroup", []byte(`{"zarr_format":2}`))
	m.Put("g/temperature/.zarray", []byte(zarrayDoc))
	putInt32sLE(m, "g/temperature/0", 10, 20)

	g, err := Open(context.Background(), m, "g", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	all, err := g.LoadAllTyped(context.Background())
	if err != nil {
		t.Fatalf("LoadAllTyped: %v", err)
	}
	v, ok := all["temperature"]
	if !ok {
		t.Fatalf("got %v, missing temperature", all)
	}
	i0, _ := v.At(0).Int()
	i1, _ := v.At(1).Int()
	if i0 != 10 || i1 != 20 {
		t.Fatalf("got [%d %d], want [10 20]", i0, i1)
	}
}

func TestArrayNotFound(t *testing.T) {
	m := store.NewMem()
	m.Put("g/.zmetadata", []byte(`{
		"zarr_consolidated_format": 1,
		"metadata": {}
	}`))
	g, err := Open(context.Background(), m, "g", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := g.Array(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for a non-existent array name")
	}
}
