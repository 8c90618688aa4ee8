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
	"fmt"

	"github.com/SnellerInc/zarr/zarrerr"
	"github.com/SnellerInc/zarr/ztype"
)

// V2Compressor is the {id, config} compressor descriptor carried by a
// v2 .zarray document.
type V2Compressor struct {
	ID     string
	Config map[string]any
}

// CodecsForV2 builds the decode codec list for a v2 array: the
// compressor's codec(s), followed by a Bytes codec carrying the
// dtype's endian. compressor may be nil, meaning "no compression" (in
// which case the list is just [Bytes(endian)]).
func CodecsForV2(compressor *V2Compressor, endian ztype.Endian) ([]Codec, error) {
	const op = "codec.CodecsForV2"
	var out []Codec
	if compressor != nil {
		c, err := codecForCompressorID(compressor.ID, compressor.Config)
		if err != nil {
			return nil, zarrerr.New(zarrerr.Codec, op, err)
		}
		out = append(out, c)
	}
	out = append(out, Bytes{Endian: endian})
	return out, nil
}

func codecForCompressorID(id string, cfg map[string]any) (Codec, error) {
	switch id {
	case "gzip":
		return Gzip{Level: clampInt(cfgInt(cfg, "level", 5), 0, 9)}, nil
	case "zlib":
		return Zlib{Level: clampInt(cfgInt(cfg, "level", 1), 0, 9)}, nil
	case "lz4":
		return Lz4{Acceleration: clampInt(cfgInt(cfg, "acceleration", 1), 0, 9)}, nil
	case "zstd":
		return Zstd{Level: clampInt(cfgInt(cfg, "level", 5), 0, 9)}, nil
	case "blosc", "lz4hc", "blosclz", "snappy":
		cname := cfgString(cfg, "cname", "")
		if cname == "" {
			cname = id
		}
		if cname == "" {
			cname = "zstd"
		}
		clevel := cfgInt(cfg, "clevel", -1)
		if clevel < 0 {
			clevel = cfgInt(cfg, "level", 5)
		}
		return Blosc{
			Cname:     cname,
			Clevel:    clampInt(clevel, 0, 9),
			Shuffle:   shuffleFromConfig(cfg),
			Typesize:  cfgInt(cfg, "typesize", 0),
			Blocksize: cfgInt(cfg, "blocksize", 0),
		}, nil
	default:
		return nil, fmt.Errorf("unknown compressor id %q", id)
	}
}

func shuffleFromConfig(cfg map[string]any) Shuffle {
	v, ok := cfg["shuffle"]
	if !ok {
		return NoShuffle
	}
	switch t := v.(type) {
	case float64:
		return shuffleFromInt(int(t))
	case int:
		return shuffleFromInt(t)
	case string:
		switch t {
		case "noshuffle", "0":
			return NoShuffle
		case "shuffle", "1":
			return ByteShuffle
		case "bitshuffle", "2":
			return BitShuffle
		}
	}
	return NoShuffle
}

func shuffleFromInt(i int) Shuffle {
	switch i {
	case 1:
		return ByteShuffle
	case 2:
		return BitShuffle
	default:
		return NoShuffle
	}
}

func cfgInt(cfg map[string]any, key string, def int) int {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	default:
		return def
	}
}

func cfgString(cfg map[string]any, key, def string) string {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
