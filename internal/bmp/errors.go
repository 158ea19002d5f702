// Copyright 2026 Dominik Schlosser
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bmp

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a load failure.
type Kind int

const (
	KindUnknown Kind = iota
	OpenFailure
	TruncatedHeader
	BadMagic
	UnsupportedDepth
	UnsupportedCompression
	InvalidDimensions
	AllocationFailure
	TruncatedPixels
	ReadFailure
)

func (k Kind) String() string {
	switch k {
	case OpenFailure:
		return "cannot open file"
	case TruncatedHeader:
		return "truncated header"
	case BadMagic:
		return "not a BMP file (magic number mismatch)"
	case UnsupportedDepth:
		return "unsupported bit depth"
	case UnsupportedCompression:
		return "compressed BMP files are not supported"
	case InvalidDimensions:
		return "invalid image dimensions"
	case AllocationFailure:
		return "cannot allocate image buffers"
	case TruncatedPixels:
		return "truncated pixel data"
	case ReadFailure:
		return "read error"
	default:
		return "unknown error"
	}
}

// Error is returned by every failing load. Field and Value name the
// offending header field when one is responsible.
type Error struct {
	Kind  Kind
	Path  string
	Field string
	Value int64
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bmp %q: %s", e.Path, e.Kind)
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s: %d)", e.Field, e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
