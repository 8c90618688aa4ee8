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

// Package codec implements the closed set of Zarr codecs (compressors,
// the endian-aware bytes codec, and filters) and the decode pipeline
// that chains them together in write-reversed order.
package codec

import (
	"fmt"

	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/ztype"
)

// Codec is the minimal contract every codec variant satisfies: a
// reversible byte transform that can at least decode.
type Codec interface {
	// Name is the codec's identifier, e.g. "gzip", "blosc", "bytes".
	Name() string
	// Decode reverses a previously-encoded byte stream.
	Decode(src []byte) ([]byte, error)
}

// Encoder is implemented by codecs that also support encode. The
// dataset-level writer is out of scope for this module (see
// spec.md §1 Non-goals); individual codecs may still implement this
// for use by an external writer or by round-trip tests.
type Encoder interface {
	Encode(src []byte) ([]byte, error)
}

// ApplyDecodePipeline runs raw through codecs in reverse list order:
// the last codec in the list was the first applied at write time, and
// is therefore the first to run at read time.
func ApplyDecodePipeline(codecs []Codec, raw []byte) ([]byte, error) {
	out := raw
	for i := len(codecs) - 1; i >= 0; i-- {
		next, err := codecs[i].Decode(out)
		if err != nil {
			return nil, zarrerr.New(zarrerr.Decode, "codec.ApplyDecodePipeline",
				fmt.Errorf("codec %q (position %d): %w", codecs[i].Name(), i, err))
		}
		out = next
	}
	return out, nil
}

// DiscoverEndian returns the endian hint carried by the first Bytes
// codec found in list order, or ztype.Little if none is present.
func DiscoverEndian(codecs []Codec) ztype.Endian {
	for _, c := range codecs {
		if b, ok := c.(Bytes); ok {
			return b.Endian
		}
	}
	return ztype.Little
}
