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

// Package group implements the Zarr hierarchy loader: opening a
// directory of arrays either through a consolidated .zmetadata
// document (a single read) or by listing the directory and opening
// each member array's .zarray individually.
package group

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/SnellerInc/zarr/array"
	"github.com/SnellerInc/zarr/store"
	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/zmeta"
	"github.com/SnellerInc/zarr/ztype"
)

// Options configures how a Group opens and loads its member arrays.
type Options struct {
	Array array.Options
}

// Group is an open handle on a Zarr hierarchy rooted at a directory:
// either backed by a single consolidated .zmetadata document, or by
// per-array .zarray documents discovered by listing the directory.
type Group struct {
	backend      store.Backend
	path         string
	opts         Options
	consolidated *zmeta.Consolidated // non-nil when opened from .zmetadata
	names        []string
	metaETag     string // fingerprint of the .zmetadata bytes behind consolidated, if any
}

// parallelEach runs work(i) for i in [0,n) across up to parallelism
// concurrent goroutines (falling back to runtime.NumCPU() when
// parallelism <= 0), waits for all of them, and returns the first
// non-nil error in index order. Cancelling ctx abandons goroutines
// that haven't started their work yet. This is the same bounded
// semaphore+WaitGroup+indexed-error pattern array.loadChunks uses for
// per-chunk fan-out, reused here for per-array fan-out.
func parallelEach(ctx context.Context, n int, parallelism int, work func(i int) error) error {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	sem := make(chan struct{}, parallelism)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
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
			errs[i] = work(i)
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

// Open opens the group rooted at path. It first looks for a
// .zmetadata document; if one is present and parses successfully,
// every member array's metadata comes from it and opening a member
// array costs no further storage reads. Otherwise it falls back to
// listing path's immediate children and treating every child with a
// .zarray as a member array.
func Open(ctx context.Context, backend store.Backend, path string, opts Options) (*Group, error) {
	const op = "group.Open"
	if raw, err := backend.Get(ctx, backend.Join(path, ".zmetadata")); err != nil {
		return nil, zarrerr.New(zarrerr.Io, op, err)
	} else if raw != nil {
		if c, err := zmeta.ParseConsolidated(raw); err == nil {
			names := make([]string, 0, len(c.Arrays))
			for name := range c.Arrays {
				names = append(names, name)
			}
			slices.Sort(names)
			return &Group{backend: backend, path: path, opts: opts, consolidated: c, names: names, metaETag: store.ETag(raw)}, nil
		}
		// A .zmetadata that fails to parse is treated like a missing
		// one: fall back to per-array discovery rather than failing
		// the whole group open over one bad consolidated document.
	}

	children, err := backend.List(ctx, path)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Io, op, err)
	}
	found := make([]string, len(children))
	err = parallelEach(ctx, len(children), opts.Array.Parallelism, func(i int) error {
		child := children[i]
		if strings.HasPrefix(child, ".") {
			return nil
		}
		raw, err := backend.Get(ctx, backend.Join(path, child, ".zarray"))
		if err != nil {
			return zarrerr.New(zarrerr.Io, op, err)
		}
		if raw != nil {
			found[i] = child
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range found {
		if name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return &Group{backend: backend, path: path, opts: opts, names: names}, nil
}

// Names returns the group's member array names, sorted.
func (g *Group) Names() []string { return g.names }

// Refresh re-fetches the group's .zmetadata document and reparses it
// only if its content has changed since Open (or the last Refresh),
// determined by comparing store.ETag fingerprints rather than
// reparsing unconditionally on every call. It is a no-op for a group
// opened via per-array discovery, since there is no single document
// to fingerprint.
func (g *Group) Refresh(ctx context.Context) error {
	const op = "group.Group.Refresh"
	if g.consolidated == nil {
		return nil
	}
	raw, err := g.backend.Get(ctx, g.backend.Join(g.path, ".zmetadata"))
	if err != nil {
		return zarrerr.New(zarrerr.Io, op, err)
	}
	if raw == nil {
		return zarrerr.New(zarrerr.NotFound, op, nil)
	}
	if tag := store.ETag(raw); tag == g.metaETag {
		return nil
	} else if c, err := zmeta.ParseConsolidated(raw); err != nil {
		return zarrerr.New(zarrerr.Metadata, op, err)
	} else {
		names := make([]string, 0, len(c.Arrays))
		for name := range c.Arrays {
			names = append(names, name)
		}
		slices.Sort(names)
		g.consolidated = c
		g.names = names
		g.metaETag = tag
		return nil
	}
}

// Array opens the member array called name.
func (g *Group) Array(ctx context.Context, name string) (*array.Array, error) {
	const op = "group.Group.Array"
	if g.consolidated != nil {
		meta, ok := g.consolidated.Arrays[name]
		if !ok {
			return nil, zarrerr.New(zarrerr.NotFound, op, nil)
		}
		return array.FromMeta(g.backend, g.backend.Join(g.path, name), meta, g.opts.Array), nil
	}
	return array.Open(ctx, g.backend, g.backend.Join(g.path, name), g.opts.Array)
}

// LoadAll opens and loads every member array as a lossy []float64
// buffer, keyed by array name. Arrays load concurrently, bounded by
// Options.Array.Parallelism; if any array fails to open or load, the
// first error observed (by name order, not completion order) is
// returned.
func (g *Group) LoadAll(ctx context.Context) (map[string][]float64, error) {
	buffers := make([][]float64, len(g.names))
	err := parallelEach(ctx, len(g.names), g.opts.Array.Parallelism, func(i int) error {
		a, err := g.Array(ctx, g.names[i])
		if err != nil {
			return err
		}
		v, err := a.Load(ctx)
		if err != nil {
			return err
		}
		buffers[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float64, len(g.names))
	for i, name := range g.names {
		out[name] = buffers[i]
	}
	return out, nil
}

// LoadAllTyped opens and loads every member array as a typed,
// nullable ztype.Vector, keyed by array name. Arrays load
// concurrently, bounded by Options.Array.Parallelism, with the same
// first-error-by-name-order policy as LoadAll.
func (g *Group) LoadAllTyped(ctx context.Context) (map[string]*ztype.Vector, error) {
	vectors := make([]*ztype.Vector, len(g.names))
	err := parallelEach(ctx, len(g.names), g.opts.Array.Parallelism, func(i int) error {
		a, err := g.Array(ctx, g.names[i])
		if err != nil {
			return err
		}
		v, err := a.LoadTyped(ctx)
		if err != nil {
			return err
		}
		vectors[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*ztype.Vector, len(g.names))
	for i, name := range g.names {
		out[name] = vectors[i]
	}
	return out, nil
}
