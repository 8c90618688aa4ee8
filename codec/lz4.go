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

package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Lz4 decodes (and, for round-trip tests, encodes) numcodecs-framed
// LZ4: a 4-byte little-endian uncompressed length prefix followed by
// a raw LZ4 block (not an LZ4 frame).
type Lz4 struct {
	Acceleration int // 0..9, default 1
}

func (Lz4) Name() string { return "lz4" }

func (z Lz4) Decode(src []byte) ([]byte, error) {
	const op = "codec.Lz4.Decode"
	if len(src) < 4 {
		return nil, zarrerr.New(zarrerr.Decode, op, fmt.Errorf("buffer too short for length prefix: %d bytes", len(src)))
	}
	want := int(binary.LittleEndian.Uint32(src[:4]))
	dst := make([]byte, want)
	n, err := lz4.UncompressBlock(src[4:], dst)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Decode, op, err)
	}
	if n != want {
		return nil, zarrerr.New(zarrerr.Decode, op,
			fmt.Errorf("decoded length %d does not match expected length %d", n, want))
	}
	return dst, nil
}

func (z Lz4) Encode(src []byte) ([]byte, error) {
	const op = "codec.Lz4.Encode"
	var c lz4.Compressor
	buf := make([]byte, 4+lz4.CompressBlockBound(len(src)))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(src)))
	n, err := c.CompressBlock(src, buf[4:])
	if err != nil {
		return nil, zarrerr.New(zarrerr.Encode, op, err)
	}
	if n == 0 && len(src) > 0 {
		return nil, zarrerr.New(zarrerr.Encode, op, fmt.Errorf("data is incompressible"))
	}
	return buf[:4+n], nil
}
