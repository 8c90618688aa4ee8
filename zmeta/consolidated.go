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
	"strings"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Consolidated is the parsed form of a .zmetadata document: the
// consolidated-format version and every array it carries, keyed by
// the array's path (the key with its trailing ".zarray" stripped).
type Consolidated struct {
	Format int
	Arrays map[string]*Array
}

type rawConsolidated struct {
	Format   int                        `json:"zarr_consolidated_format"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

// ParseConsolidated parses a .zmetadata document. Per spec.md §4.3,
// entries whose key doesn't end in ".zarray" (.zattrs, .zgroup, and
// any other non-array entry) are skipped; entries that look like
// array metadata (a JSON object carrying a "shape" field) but use a
// non-standard key are still attempted, best-effort, using the raw
// key (minus a leading slash) as the array's path. An entry that
// fails to parse as an Array is dropped rather than failing the whole
// document, since one corrupt or unsupported array shouldn't block
// access to the others.
func ParseConsolidated(raw []byte) (*Consolidated, error) {
	const op = "zmeta.ParseConsolidated"
	var rc rawConsolidated
	if err := json.Unmarshal(raw, &rc); err != nil {
		return nil, zarrerr.New(zarrerr.Json, op, err)
	}
	if rc.Format != 1 {
		return nil, zarrerr.New(zarrerr.Metadata, op, fmt.Errorf("unsupported zarr_consolidated_format %d", rc.Format))
	}

	arrays := make(map[string]*Array)
	for key, doc := range rc.Metadata {
		name, ok := arrayName(key)
		if !ok {
			if !looksLikeArrayDoc(doc) {
				continue
			}
			name = strings.TrimPrefix(key, "/")
		}
		arr, err := ParseArray(doc)
		if err != nil {
			continue
		}
		arrays[name] = arr
	}
	return &Consolidated{Format: rc.Format, Arrays: arrays}, nil
}

// arrayName reports the array path carried by a consolidated metadata
// key, and whether key follows the standard "<path>/.zarray" (or
// "<path>.zarray") convention.
func arrayName(key string) (string, bool) {
	k := strings.TrimPrefix(key, "/")
	if !strings.HasSuffix(k, ".zarray") {
		return "", false
	}
	name := strings.TrimSuffix(k, ".zarray")
	name = strings.TrimSuffix(name, "/")
	return name, true
}

func looksLikeArrayDoc(doc json.RawMessage) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(doc, &m); err != nil {
		return false
	}
	_, ok := m["shape"]
	return ok
}
