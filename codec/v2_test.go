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
	"testing"

	"github.com/SnellerInc/zarr/ztype"
)

func TestCodecsForV2NoCompressor(t *testing.T) {
	codecs, err := CodecsForV2(nil, ztype.Big)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codecs) != 1 {
		t.Fatalf("got %d codecs, want 1", len(codecs))
	}
	b, ok := codecs[0].(Bytes)
	if !ok || b.Endian != ztype.Big {
		t.Fatalf("got %+v, want Bytes{Endian: Big}", codecs[0])
	}
}

func TestCodecsForV2Gzip(t *testing.T) {
	c := &V2Compressor{ID: "gzip", Config: map[string]any{"level": float64(7)}}
	codecs, err := CodecsForV2(c, ztype.Little)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codecs) != 2 {
		t.Fatalf("got %d codecs, want 2", len(codecs))
	}
	g, ok := codecs[0].(Gzip)
	if !ok || g.Level != 7 {
		t.Fatalf("got %+v, want Gzip{Level: 7}", codecs[0])
	}
}

func TestCodecsForV2Blosc(t *testing.T) {
	c := &V2Compressor{ID: "blosc", Config: map[string]any{
		"cname": "zstd", "clevel": float64(3), "shuffle": float64(1), "typesize": float64(4),
	}}
	codecs, err := CodecsForV2(c, ztype.Little)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := codecs[0].(Blosc)
	if !ok {
		t.Fatalf("got %+v, want a Blosc codec", codecs[0])
	}
	if b.Cname != "zstd" || b.Clevel != 3 || b.Shuffle != ByteShuffle || b.Typesize != 4 {
		t.Fatalf("got %+v", b)
	}
}

func TestCodecsForV2UnknownCompressor(t *testing.T) {
	c := &V2Compressor{ID: "made-up-codec"}
	if _, err := CodecsForV2(c, ztype.Little); err == nil {
		t.Fatal("expected an error for an unknown compressor id")
	}
}

func TestShuffleFromConfigStringForm(t *testing.T) {
	if got := shuffleFromConfig(map[string]any{"shuffle": "bitshuffle"}); got != BitShuffle {
		t.Errorf("got %v, want BitShuffle", got)
	}
	if got := shuffleFromConfig(map[string]any{}); got != NoShuffle {
		t.Errorf("got %v, want NoShuffle when shuffle key is absent", got)
	}
}

func TestClampInt(t *testing.T) {
	if clampInt(-5, 0, 9) != 0 {
		t.Error("clampInt should clamp below the floor")
	}
	if clampInt(20, 0, 9) != 9 {
		t.Error("clampInt should clamp above the ceiling")
	}
	if clampInt(5, 0, 9) != 5 {
		t.Error("clampInt should pass through an in-range value")
	}
}
