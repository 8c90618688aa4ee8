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

// Package zarrerr defines the closed set of error kinds shared by
// every layer of the zarr read path.
package zarrerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories a zarr operation can
// fail with.
type Kind int

const (
	// Other is a catch-all: bad key dimensionality, task-join
	// failure, and anything else that doesn't fit a more specific
	// kind.
	Other Kind = iota
	// Io indicates a failure from a backend filesystem call.
	Io
	// Json indicates malformed metadata JSON.
	Json
	// Metadata indicates well-formed JSON that is invalid Zarr
	// metadata.
	Metadata
	// Decode indicates a codec decode failure or framing mismatch.
	Decode
	// Encode indicates a codec encode failure.
	Encode
	// TypeConversion indicates a typed vector could not be coerced
	// to the requested representation (e.g. String to f64).
	TypeConversion
	// Storage indicates a backend-level failure that isn't a plain
	// Io error (e.g. an object-store API error).
	Storage
	// Codec indicates an unknown or misconfigured codec.
	Codec
	// NotFound indicates a missing .zarray, or a chunk key absent
	// from metadata.keys.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Json:
		return "json"
	case Metadata:
		return "metadata"
	case Decode:
		return "decode"
	case Encode:
		return "encode"
	case TypeConversion:
		return "type-conversion"
	case Storage:
		return "storage"
	case Codec:
		return "codec"
	case NotFound:
		return "not-found"
	default:
		return "other"
	}
}

// Error is the error type returned by every package in this module.
// It carries enough structure for callers to switch on Kind via
// errors.As without parsing message text.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "array.Open"
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, zarrerr.Is(zarrerr.NotFound)) work by
// comparing Kind when the target is itself a bare *Error carrying
// only a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Err != nil {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error for the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is constructs a bare sentinel of kind k so that
//
//	errors.Is(err, zarrerr.Is(zarrerr.NotFound))
//
// can be used to test the kind of an arbitrary error returned from
// this module.
func Is(k Kind) error {
	return &Error{Kind: k}
}

// OfKind reports whether err (or any error it wraps) is a *Error of
// the given kind.
func OfKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
