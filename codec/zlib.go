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
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/SnellerInc/zarr/zarrerr"
)

// Zlib decodes (and, for round-trip tests, encodes) an RFC-1950 zlib
// stream, at the given default compression Level.
type Zlib struct {
	Level int // 0..9, default 1
}

func (Zlib) Name() string { return "zlib" }

func (z Zlib) Decode(src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, zarrerr.New(zarrerr.Decode, "codec.Zlib.Decode", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Decode, "codec.Zlib.Decode", err)
	}
	return out, nil
}

func (z Zlib) Encode(src []byte) ([]byte, error) {
	level := z.Level
	if level == 0 {
		level = 1
	}
	if level < 0 || level > 9 {
		return nil, zarrerr.New(zarrerr.Encode, "codec.Zlib.Encode", fmt.Errorf("level %d out of range [0,9]", level))
	}
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, zarrerr.New(zarrerr.Encode, "codec.Zlib.Encode", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, zarrerr.New(zarrerr.Encode, "codec.Zlib.Encode", err)
	}
	if err := w.Close(); err != nil {
		return nil, zarrerr.New(zarrerr.Encode, "codec.Zlib.Encode", err)
	}
	return buf.Bytes(), nil
}
