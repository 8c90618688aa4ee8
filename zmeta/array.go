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
	"fmt"

	"github.com/SnellerInc/zarr/codec"
	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/zindex"
	"github.com/SnellerInc/zarr/ztype"
)

// Array is the parsed form of a .zarray document, plus the derived
// chunk-grid key list and (when loaded separately) the sibling
// .zattrs document.
type Array struct {
	ZarrFormat int
	Shape      []int
	Chunks     []int
	DType      ztype.DataType
	Endian     ztype.Endian
	TimeUnit   string
	Fill       ztype.FillValue
	Order      ztype.ArrayOrder
	Compressor *codec.V2Compressor
	Filters    json.RawMessage

	// Keys lists every chunk key the array's grid can produce, in
	// lexicographic grid order; computed once at parse time so
	// callers never need to recompute it per lookup.
	Keys []string

	// Attributes holds the array's .zattrs document, when the caller
	// has loaded one; nil otherwise. zmeta itself never fetches it -
	// that's a storage-layer concern.
	Attributes json.RawMessage
}

type rawArray struct {
	ZarrFormat int             `json:"zarr_format"`
	Shape      []int           `json:"shape"`
	Chunks     []int           `json:"chunks"`
	DType      string          `json:"dtype"`
	FillValue  json.RawMessage `json:"fill_value"`
	Order      string          `json:"order"`
	Compressor map[string]any  `json:"compressor"`
	Filters    json.RawMessage `json:"filters"`
}

// ParseArray parses a .zarray document's raw bytes into an Array.
// It runs in two passes, matching spec.md §4.3: first the dtype
// string and fill_value are parsed together (since fill_value parsing
// is dtype-aware), then the remaining structural fields (shape,
// chunks, order, compressor) are parsed and cross-checked against
// shape/chunks agreement.
func ParseArray(raw []byte) (*Array, error) {
	const op = "zmeta.ParseArray"
	var ra rawArray
	if err := json.Unmarshal(raw, &ra); err != nil {
		return nil, zarrerr.New(zarrerr.Json, op, err)
	}

	dt, err := ParseDType(ra.DType)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Metadata, op, err)
	}
	fill, err := ParseFillValue(ra.FillValue, dt.Type)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Metadata, op, err)
	}

	if len(ra.Shape) != len(ra.Chunks) {
		return nil, zarrerr.New(zarrerr.Metadata, op,
			fmt.Errorf("shape has %d dimensions but chunks has %d", len(ra.Shape), len(ra.Chunks)))
	}
	for i, c := range ra.Chunks {
		if c < 1 {
			return nil, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("chunk dimension %d is %d, must be >= 1", i, c))
		}
	}
	for i, s := range ra.Shape {
		if s < 0 {
			return nil, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("shape dimension %d is negative", i))
		}
	}

	var order ztype.ArrayOrder
	switch ra.Order {
	case "", "C":
		order = ztype.C
	case "F":
		order = ztype.F
	default:
		return nil, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("unknown order %q", ra.Order))
	}

	var compressor *codec.V2Compressor
	if id, ok := ra.Compressor["id"].(string); ok {
		compressor = &codec.V2Compressor{ID: id, Config: ra.Compressor}
	}

	return &Array{
		ZarrFormat: ra.ZarrFormat,
		Shape:      ra.Shape,
		Chunks:     ra.Chunks,
		DType:      dt.Type,
		Endian:     dt.Endian,
		TimeUnit:   dt.TimeUnit,
		Fill:       fill,
		Order:      order,
		Compressor: compressor,
		Filters:    ra.Filters,
		Keys:       zindex.Keys(ra.Shape, ra.Chunks),
	}, nil
}

// Codecs builds the ordered decode codec chain for the array, per
// spec.md §4.2: the compressor's codec(s) (if any), followed by a
// Bytes codec carrying the dtype's effective endian.
func (a *Array) Codecs() ([]codec.Codec, error) {
	return codec.CodecsForV2(a.Compressor, a.Endian)
}
