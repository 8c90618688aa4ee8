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

// Package array implements the chunk pipeline: opening a single Zarr
// v2 array against a store.Backend, fetching and decoding individual
// chunks, and loading the whole array in parallel either as a lossy
// []float64 buffer or as a typed buffer that preserves missing-chunk
// nulls.
package array

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SnellerInc/zarr/codec"
	"github.com/SnellerInc/zarr/store"
	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/zindex"
	"github.com/SnellerInc/zarr/zmeta"
	"github.com/SnellerInc/zarr/ztype"
)

// Options configures how an Array is opened and loaded.
type Options struct {
	// Parallelism bounds how many chunk fetches run concurrently
	// during Load/LoadTyped. <= 0 means runtime.NumCPU().
	Parallelism int
	// Logger receives a line per chunk-fetch failure before it's
	// folded into the first-observed-error result; nil disables
	// this (the default).
	Logger *log.Logger
}

// Array is an open handle on a single Zarr v2 array: its parsed
// .zarray metadata, the backend and path it reads chunks from, and
// the key set used to validate chunk-getter arguments.
type Array struct {
	Meta    *zmeta.Array
	backend store.Backend
	path    string
	opts    Options
	keySet  map[string]bool
}

// Open reads path's .zarray (and, if present, .zattrs) from backend
// and returns an Array ready to fetch chunks from.
func Open(ctx context.Context, backend store.Backend, path string, opts Options) (*Array, error) {
	const op = "array.Open"
	raw, err := backend.Get(ctx, backend.Join(path, ".zarray"))
	if err != nil {
		return nil, zarrerr.New(zarrerr.Io, op, err)
	}
	if raw == nil {
		return nil, zarrerr.New(zarrerr.NotFound, op, fmt.Errorf("no .zarray at %q", path))
	}
	meta, err := zmeta.ParseArray(raw)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Metadata, op, err)
	}
	if attrs, err := backend.Get(ctx, backend.Join(path, ".zattrs")); err == nil && attrs != nil {
		meta.Attributes = json.RawMessage(attrs)
	}
	return FromMeta(backend, path, meta, opts), nil
}

// FromMeta builds an Array directly from already-parsed metadata,
// without re-fetching .zarray. Group uses this when it has metadata
// up front from a consolidated .zmetadata document.
func FromMeta(backend store.Backend, path string, meta *zmeta.Array, opts Options) *Array {
	keySet := make(map[string]bool, len(meta.Keys))
	for _, k := range meta.Keys {
		keySet[k] = true
	}
	return &Array{Meta: meta, backend: backend, path: path, opts: opts, keySet: keySet}
}

// Shape returns the array's declared shape.
func (a *Array) Shape() []int { return a.Meta.Shape }

// DType returns the array's element type.
func (a *Array) DType() ztype.DataType { return a.Meta.DType }

// Attributes returns the array's .zattrs document, or nil if none was
// present. Only Open fetches .zattrs; an Array built with FromMeta (as
// Group does from consolidated metadata) carries whatever Attributes
// the supplied metadata already had.
func (a *Array) Attributes() json.RawMessage { return a.Meta.Attributes }

// GetChunk fetches and decodes a single chunk by its grid indices
// (one per dimension, within [0, ceil(shape[d]/chunks[d]))). A chunk
// absent from storage is synthesized from the array's fill_value
// rather than treated as an error, per spec.md §5.
func (a *Array) GetChunk(ctx context.Context, indices []int) (ztype.Vector, error) {
	const op = "array.Array.GetChunk"
	if len(indices) != len(a.Meta.Shape) {
		return ztype.Vector{}, zarrerr.New(zarrerr.Other, op,
			fmt.Errorf("chunk index has %d dimensions, array has %d", len(indices), len(a.Meta.Shape)))
	}
	key := zindex.FormatKey(indices, ".")
	if !a.keySet[key] {
		return ztype.Vector{}, zarrerr.New(zarrerr.NotFound, op, fmt.Errorf("chunk key %q is outside the array's grid", key))
	}
	_, v, err := a.fetchChunk(ctx, key)
	return v, err
}

// fetchChunk does the actual get+decode (or fill) for a validated
// chunk key, reporting whether the chunk existed in storage.
func (a *Array) fetchChunk(ctx context.Context, key string) (present bool, v ztype.Vector, err error) {
	const op = "array.Array.fetchChunk"
	data, err := a.backend.Get(ctx, a.backend.Join(a.path, key))
	if err != nil {
		return false, ztype.Vector{}, zarrerr.New(zarrerr.Io, op, err)
	}
	chunkLen := zindex.Product(a.Meta.Chunks)
	if data == nil {
		scalar, err := a.Meta.Fill.ToScalar(a.Meta.DType)
		if err != nil {
			return false, ztype.Vector{}, zarrerr.New(zarrerr.Metadata, op, err)
		}
		v, err := ztype.Fill(scalar, chunkLen)
		if err != nil {
			return false, ztype.Vector{}, zarrerr.New(zarrerr.Other, op, err)
		}
		return false, v, nil
	}
	codecs, err := a.Meta.Codecs()
	if err != nil {
		return false, ztype.Vector{}, zarrerr.New(zarrerr.Codec, op, err)
	}
	decoded, err := codec.ApplyDecodePipeline(codecs, data)
	if err != nil {
		return false, ztype.Vector{}, err
	}
	v, err = ztype.Decode(a.Meta.Endian, a.Meta.DType, decoded)
	if err != nil {
		return false, ztype.Vector{}, err
	}
	return true, v, nil
}
