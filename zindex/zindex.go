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

// Package zindex implements the index arithmetic shared by the chunk
// pipeline: strides for C/F order, multi-index<->linear-index
// conversion, cartesian enumeration of a shape, and chunk key
// parsing/formatting.
package zindex

import (
	"strconv"
	"strings"

	"github.com/SnellerInc/zarr/ztype"
)

// Strides returns the per-axis stride of shape under order. For C
// order this is the suffix-product of shape (last axis fastest); for
// F order it is the prefix-product (first axis fastest).
func Strides(shape []int, order ztype.ArrayOrder) []int {
	s := make([]int, len(shape))
	if order == ztype.F {
		stride := 1
		for i := range shape {
			s[i] = stride
			stride *= shape[i]
		}
		return s
	}
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = stride
		stride *= shape[i]
	}
	return s
}

// LinearIndex flattens indices into a single offset according to
// strides(shape, order).
func LinearIndex(shape []int, order ztype.ArrayOrder, indices []int) int {
	strides := Strides(shape, order)
	idx := 0
	for i, v := range indices {
		idx += v * strides[i]
	}
	return idx
}

// Product returns the product of shape's dimensions (1 for an empty
// shape, matching a 0-D array having exactly one element).
func Product(shape []int) int {
	p := 1
	for _, d := range shape {
		p *= d
	}
	return p
}

// CartesianIndices enumerates every index tuple over
// shape[0] x shape[1] x ... x shape[n-1] in lexicographic order: the
// last axis varies fastest, matching C-order enumeration of the grid
// itself (independent of the array's storage order).
func CartesianIndices(shape []int) [][]int {
	total := Product(shape)
	out := make([][]int, 0, total)
	if len(shape) == 0 {
		return [][]int{{}}
	}
	cur := make([]int, len(shape))
	for i := 0; i < total; i++ {
		tup := make([]int, len(shape))
		copy(tup, cur)
		out = append(out, tup)
		for d := len(shape) - 1; d >= 0; d-- {
			cur[d]++
			if cur[d] < shape[d] {
				break
			}
			cur[d] = 0
		}
	}
	return out
}

// GridShape returns the number of chunks along each axis:
// ceil(shape[i]/chunks[i]).
func GridShape(shape, chunks []int) []int {
	g := make([]int, len(shape))
	for i := range shape {
		g[i] = (shape[i] + chunks[i] - 1) / chunks[i]
	}
	return g
}

// FormatKey joins indices with sep ("." for Zarr v2 chunk keys).
func FormatKey(indices []int, sep string) string {
	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

// ParseKey splits a chunk key string into its integer components.
// "." is used as the separator when present, else "/". Non-numeric
// parts are silently skipped, matching spec.md §4.4; callers that use
// the result as a getter argument are responsible for checking that
// the dimensionality agrees with the array's shape.
func ParseKey(key string) []int {
	sep := "/"
	if strings.Contains(key, ".") {
		sep = "."
	}
	parts := strings.Split(key, sep)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, int(n))
	}
	return out
}

// Keys enumerates every chunk key for an array of the given shape and
// chunk shape, in lexicographic grid order, e.g. for shape=[4,6],
// chunks=[2,3]: ["0.0","0.1","1.0","1.1"].
func Keys(shape, chunks []int) []string {
	grid := GridShape(shape, chunks)
	idxs := CartesianIndices(grid)
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = FormatKey(idx, ".")
	}
	return out
}
