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
	"runtime"

	"github.com/klauspost/compress/zstd"

	"github.com/SnellerInc/zarr/zarrerr"
)

// zstdDecoder is a single shared decoder: by default zstd.NewReader
// caps concurrency at min(4, GOMAXPROCS), but chunk decode is itself
// already parallel across many goroutines, so we'd rather each decode
// call be single-threaded and let the caller's fan-out supply the
// parallelism. A package-level *zstd.Decoder is safe for concurrent
// DecodeAll calls.
var zstdDecoder *zstd.Decoder

func init() {
	d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	zstdDecoder = d
}

// Zstd decodes (and, for round-trip tests, encodes) a zstd stream.
// Decode does not require the stream to carry a content size.
type Zstd struct {
	Level int // 0..9 (clamped from the v2 compressor config), default 5
}

func (Zstd) Name() string { return "zstd" }

func (z Zstd) Decode(src []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(src, nil)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Decode, "codec.Zstd.Decode", err)
	}
	return out, nil
}

func (z Zstd) Encode(src []byte) ([]byte, error) {
	level := z.Level
	if level <= 0 {
		level = 5
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		return nil, zarrerr.New(zarrerr.Encode, "codec.Zstd.Encode", err)
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}
