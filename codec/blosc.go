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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Shuffle is the closed set of blosc shuffle filters applied before
// (and, on decode, unapplied after) the block sub-compressor.
type Shuffle int

const (
	NoShuffle Shuffle = iota
	ByteShuffle
	BitShuffle
)

const (
	bloscFlagShuffle    = 0x1
	bloscFlagBitShuffle = 0x4
)

// Blosc decodes a blosc1-framed chunk: a 16-byte header (version,
// versionlz, flags, typesize at bytes 0..4; nbytes little-endian
// uint32 at 4..8; blocksize at 8..12; cbytes at 12..16), followed by
// a per-block offset table and the compressed blocks themselves. The
// sub-compressor (Cname) is taken from the Zarr v2 compressor
// descriptor; the shuffle mode is read from the header's flags byte,
// and the typesize from the header (falling back to Typesize when the
// header records 0). The Shuffle field is not consulted by Decode.
type Blosc struct {
	Cname     string // "blosclz", "lz4", "lz4hc", "snappy", "zlib", "zstd"
	Clevel    int    // 0..9
	Shuffle   Shuffle
	Typesize  int
	Blocksize int // hint only; the frame's own header value is authoritative
}

func (Blosc) Name() string { return "blosc" }

func (b Blosc) Decode(src []byte) ([]byte, error) {
	const op = "codec.Blosc.Decode"
	if len(src) < 16 {
		return nil, zarrerr.New(zarrerr.Decode, op, fmt.Errorf("frame too short for blosc header: %d bytes", len(src)))
	}
	flags := src[2]
	typesize := int(src[3])
	if typesize == 0 {
		typesize = b.Typesize
	}
	nbytes := int(binary.LittleEndian.Uint32(src[4:8]))
	blocksize := int(binary.LittleEndian.Uint32(src[8:12]))
	cbytes := int(binary.LittleEndian.Uint32(src[12:16]))
	if blocksize <= 0 {
		blocksize = nbytes
	}
	if cbytes <= 0 || cbytes > len(src) {
		cbytes = len(src)
	}
	if nbytes == 0 {
		return []byte{}, nil
	}

	nblocks := (nbytes + blocksize - 1) / blocksize
	bstartsOff := 16
	need := bstartsOff + nblocks*4
	if len(src) < need {
		return nil, zarrerr.New(zarrerr.Decode, op, fmt.Errorf("frame too short for %d block offsets", nblocks))
	}
	bstarts := make([]int, nblocks)
	for i := 0; i < nblocks; i++ {
		bstarts[i] = int(binary.LittleEndian.Uint32(src[bstartsOff+i*4:]))
	}

	out := make([]byte, 0, nbytes)
	for i := 0; i < nblocks; i++ {
		start := bstarts[i]
		end := cbytes
		if i+1 < nblocks {
			end = bstarts[i+1]
		}
		if start < 0 || end > len(src) || start > end {
			return nil, zarrerr.New(zarrerr.Decode, op, fmt.Errorf("block %d offsets [%d,%d) out of range", i, start, end))
		}
		want := blocksize
		if i == nblocks-1 {
			if r := nbytes - blocksize*i; r < blocksize {
				want = r
			}
		}
		block, err := decompressBlock(b.Cname, src[start:end], want)
		if err != nil {
			return nil, zarrerr.New(zarrerr.Codec, op, err)
		}
		switch {
		case flags&bloscFlagBitShuffle != 0:
			block = unshuffleBits(block, typesize)
		case flags&bloscFlagShuffle != 0:
			block = unshuffleBytes(block, typesize)
		}
		out = append(out, block...)
	}
	return out, nil
}

// decompressBlock runs a single blosc block through the sub-compressor
// named by cname, producing exactly wantLen bytes.
func decompressBlock(cname string, src []byte, wantLen int) ([]byte, error) {
	switch cname {
	case "", "blosclz", "snappy":
		return nil, fmt.Errorf("unsupported blosc sub-compressor %q (no decoder wired for this cname)", cname)
	case "lz4", "lz4hc":
		// lz4hc differs from lz4 only at compression time; both produce
		// standard LZ4 blocks.
		dst := make([]byte, wantLen)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("blosc/lz4 block: %w", err)
		}
		return dst[:n], nil
	case "zlib":
		r, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("blosc/zlib block: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("blosc/zlib block: %w", err)
		}
		return out, nil
	case "zstd":
		out, err := zstdDecoder.DecodeAll(src, make([]byte, 0, wantLen))
		if err != nil {
			return nil, fmt.Errorf("blosc/zstd block: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown blosc cname %q", cname)
	}
}

// unshuffleBytes reverses blosc's byte-shuffle filter: shuffled data
// groups the i-th byte of every typesize-wide element contiguously;
// this interleaves them back into element order.
func unshuffleBytes(data []byte, typesize int) []byte {
	if typesize <= 1 || len(data) < typesize {
		return data
	}
	n := len(data) / typesize
	out := make([]byte, len(data))
	for i := 0; i < n; i++ {
		for j := 0; j < typesize; j++ {
			out[i*typesize+j] = data[j*n+i]
		}
	}
	rem := n * typesize
	copy(out[rem:], data[rem:])
	return out
}

// unshuffleBits reverses blosc's bit-shuffle filter: for each of the
// typesize*8 bit planes, the shuffled buffer packs one bit from every
// element into consecutive bits; this scatters each plane's bits back
// into their owning elements.
func unshuffleBits(data []byte, typesize int) []byte {
	if typesize <= 0 || len(data) < typesize {
		return data
	}
	n := len(data) / typesize
	out := make([]byte, len(data))
	bitsPerElem := typesize * 8
	planeBytes := (n + 7) / 8
	for p := 0; p < bitsPerElem; p++ {
		planeOff := p * planeBytes
		if planeOff+planeBytes > len(data) {
			break
		}
		for e := 0; e < n; e++ {
			byteIdx := planeOff + e/8
			bit := (data[byteIdx] >> uint(e%8)) & 1
			dstByte := e*typesize + p/8
			out[dstByte] |= bit << uint(p%8)
		}
	}
	rem := n * typesize
	copy(out[rem:], data[rem:])
	return out
}

