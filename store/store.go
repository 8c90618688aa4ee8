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

// Package store defines the storage abstraction the chunk pipeline
// reads through: a small, context-aware interface that a flat
// key/value map, a local filesystem directory, or an object store can
// all implement.
package store

import (
	"context"
	"path"
	"strings"
)

// Backend is the storage interface every array and chunk read goes
// through. Get returns (nil, nil) for a path that doesn't exist -
// that's not an error, it's the signal the chunk pipeline uses to
// apply the array's fill_value. List returns the immediate children
// of prefix (not a recursive walk), matching how a group enumerates
// its member arrays.
type Backend interface {
	Get(ctx context.Context, p string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Join(parts ...string) string
}

// JoinSlash joins path parts with "/", skipping empty parts and
// normalizing the result; every built-in Backend uses it for Join so
// that keys look like Zarr paths regardless of the backend's native
// path syntax.
func JoinSlash(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return path.Join(nonEmpty...)
}
