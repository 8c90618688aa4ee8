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

package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Local is a Backend rooted at a directory on the local filesystem.
// Paths are Zarr-style ("/"-separated, relative to Root); Local
// translates them to the host's native separator internally.
type Local struct {
	Root string
}

// NewLocal returns a Local backend rooted at root.
func NewLocal(root string) *Local {
	return &Local{Root: root}
}

func (l *Local) nativePath(p string) string {
	clean := JoinSlash(p)
	return filepath.Join(l.Root, filepath.FromSlash(clean))
}

// Get reads the file at p. A missing file and an empty file are both
// reported as (nil, nil); callers that need to distinguish the two
// should List the parent directory first.
func (l *Local) Get(ctx context.Context, p string) ([]byte, error) {
	const op = "store.Local.Get"
	data, err := os.ReadFile(l.nativePath(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zarrerr.New(zarrerr.Io, op, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// List returns the immediate entry names under prefix, in sorted
// order. A missing directory is reported as an empty list, not an
// error, so a caller probing for an optional sibling (e.g. a missing
// .zmetadata) doesn't need a separate existence check.
func (l *Local) List(ctx context.Context, prefix string) ([]string, error) {
	const op = "store.Local.List"
	entries, err := os.ReadDir(l.nativePath(prefix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zarrerr.New(zarrerr.Io, op, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (l *Local) Join(parts ...string) string { return JoinSlash(parts...) }
