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
	"testing"

	"github.com/SnellerInc/zarr/ztype"
)

// recording wraps a Codec and records whether Decode was called, so
// the pipeline order test can check invocation order without
// depending on a specific real codec's byte transform.
type recording struct {
	name  string
	calls *[]string
}

func (r recording) Name() string { return r.name }
func (r recording) Decode(src []byte) ([]byte, error) {
	*r.calls = append(*r.calls, r.name)
	return src, nil
}

func TestApplyDecodePipelineReverseOrder(t *testing.T) {
	var calls []string
	codecs := []Codec{
		recording{"first-applied-at-write", &calls},
		recording{"second-applied-at-write", &calls},
		recording{"bytes", &calls},
	}
	if _, err := ApplyDecodePipeline(codecs, []byte("data")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"bytes", "second-applied-at-write", "first-applied-at-write"}
	if len(calls) != len(want) {
		t.Fatalf("got %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestDiscoverEndian(t *testing.T) {
	codecs := []Codec{Gzip{}, Bytes{Endian: ztype.Big}}
	if got := DiscoverEndian(codecs); got != ztype.Big {
		t.Errorf("got %v, want Big", got)
	}
	if got := DiscoverEndian([]Codec{Gzip{}}); got != ztype.Little {
		t.Errorf("got %v, want Little (default with no Bytes codec present)", got)
	}
}

func TestBytesCodecIsIdentity(t *testing.T) {
	b := Bytes{Endian: ztype.Little}
	src := []byte{1, 2, 3, 4}
	got, err := b.Decode(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("got %v, want %v", got, src)
	}
}
