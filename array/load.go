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

package array

import (
	"context"
	"runtime"
	"sync"

	"github.com/SnellerInc/zarr/zindex"
	"github.com/SnellerInc/zarr/ztype"
)

// Load reads every chunk of the array and assembles it into a single
// []float64 buffer of length Product(Shape()), laid out in the array's
// own order: the element at global index g lands at
// zindex.LinearIndex(Shape(), Meta.Order, g), so an F-order array
// yields a column-major buffer.
// Chunk fetches run in parallel, bounded by Options.Parallelism;
// cancelling ctx abandons pending fetches. If any chunk fails, the
// first error observed (by chunk index order, not completion order)
// is returned.
func (a *Array) Load(ctx context.Context) ([]float64, error) {
	total := zindex.Product(a.Meta.Shape)
	out := make([]float64, total)
	err := a.loadChunks(ctx, func(idx int, chunkIdx []int) error {
		present, v, err := a.fetchChunk(ctx, zindex.FormatKey(chunkIdx, "."))
		_ = present
		if err != nil {
			return err
		}
		return a.scatterF64(out, chunkIdx, &v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadTyped reads every chunk and assembles a Nullable ztype.Vector of
// the array's own dtype: elements coming from a chunk that is present
// in storage carry their decoded value, while elements coming from a
// chunk that is entirely absent carry the Null(dtype) marker instead
// of the fill_value substitution Load() uses. This lets a caller tell
// "the backing chunk doesn't exist yet" apart from "the backing chunk
// exists and its value happens to equal fill_value".
func (a *Array) LoadTyped(ctx context.Context) (*ztype.Vector, error) {
	total := zindex.Product(a.Meta.Shape)
	values := make([]ztype.Value, total)
	err := a.loadChunks(ctx, func(idx int, chunkIdx []int) error {
		present, v, err := a.fetchChunk(ctx, zindex.FormatKey(chunkIdx, "."))
		if err != nil {
			return err
		}
		return a.scatterTyped(values, chunkIdx, &v, present)
	})
	if err != nil {
		return nil, err
	}
	return &ztype.Vector{Type: a.Meta.DType, Nullable: true, Values: values}, nil
}

// loadChunks fans work out over every chunk in the array's grid,
// bounded to Options.Parallelism concurrent goroutines, and returns
// the first error encountered in grid order once every goroutine has
// finished (or ctx is cancelled, which abandons goroutines that
// haven't started their fetch yet).
func (a *Array) loadChunks(ctx context.Context, work func(idx int, chunkIdx []int) error) error {
	grid := zindex.GridShape(a.Meta.Shape, a.Meta.Chunks)
	chunkIdxs := zindex.CartesianIndices(grid)

	parallel := a.opts.Parallelism
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	sem := make(chan struct{}, parallel)
	errs := make([]error, len(chunkIdxs))
	var wg sync.WaitGroup
	for i, idx := range chunkIdxs {
		i, idx := i, idx
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			default:
			}
			if err := work(i, idx); err != nil {
				if a.opts.Logger != nil {
					a.opts.Logger.Printf("array: chunk %v: %v", idx, err)
				}
				errs[i] = err
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// chunkGeometry returns, for chunkIdx, the start offset of the chunk
// along each axis and the number of elements actually covered by the
// array's shape along that axis (which is less than the chunk's full
// extent for a trailing, partially-filled edge chunk).
func (a *Array) chunkGeometry(chunkIdx []int) (starts, validLen []int) {
	ndim := len(a.Meta.Shape)
	starts = make([]int, ndim)
	validLen = make([]int, ndim)
	for d := 0; d < ndim; d++ {
		starts[d] = chunkIdx[d] * a.Meta.Chunks[d]
		end := starts[d] + a.Meta.Chunks[d]
		if end > a.Meta.Shape[d] {
			end = a.Meta.Shape[d]
		}
		validLen[d] = end - starts[d]
	}
	return starts, validLen
}

func (a *Array) scatterF64(out []float64, chunkIdx []int, v *ztype.Vector) error {
	starts, validLen := a.chunkGeometry(chunkIdx)
	chunkStrides := zindex.Strides(a.Meta.Chunks, a.Meta.Order)
	outStrides := zindex.Strides(a.Meta.Shape, a.Meta.Order)
	for _, local := range zindex.CartesianIndices(validLen) {
		chunkLinear := 0
		outLinear := 0
		for d, l := range local {
			chunkLinear += l * chunkStrides[d]
			outLinear += (starts[d] + l) * outStrides[d]
		}
		f, err := v.At(chunkLinear).Float64()
		if err != nil {
			return err
		}
		out[outLinear] = f
	}
	return nil
}

func (a *Array) scatterTyped(values []ztype.Value, chunkIdx []int, v *ztype.Vector, present bool) error {
	starts, validLen := a.chunkGeometry(chunkIdx)
	chunkStrides := zindex.Strides(a.Meta.Chunks, a.Meta.Order)
	outStrides := zindex.Strides(a.Meta.Shape, a.Meta.Order)
	for _, local := range zindex.CartesianIndices(validLen) {
		chunkLinear := 0
		outLinear := 0
		for d, l := range local {
			chunkLinear += l * chunkStrides[d]
			outLinear += (starts[d] + l) * outStrides[d]
		}
		if present {
			values[outLinear] = v.At(chunkLinear)
		} else {
			values[outLinear] = ztype.Null(a.Meta.DType)
		}
	}
	return nil
}
