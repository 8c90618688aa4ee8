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

import "github.com/SnellerInc/zarr/ztype"

// Bytes is the identity codec on bytes; it exists purely to carry the
// Endian tag that ztype.Decode needs to interpret decompressed bytes.
type Bytes struct {
	Endian ztype.Endian
}

func (Bytes) Name() string { return "bytes" }

func (b Bytes) Decode(src []byte) ([]byte, error) { return src, nil }

func (b Bytes) Encode(src []byte) ([]byte, error) { return src, nil }
