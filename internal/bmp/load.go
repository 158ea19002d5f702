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

// Package bmp loads 24-bit uncompressed Windows bitmaps into top-down 8-bit
// luminance planes.
package bmp

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

// MaxPixels bounds Width*Height for a single load. The scratch row, one
// stride of packed BGR, is held to the same limit.
const MaxPixels = 1 << 28

// Plane is a top-down, row-major 8-bit luminance image.
type Plane struct {
	Width  int
	Height int
	Pix    []byte
}

// Gray returns an image.Gray that shares Pix with p.
func (p *Plane) Gray() *image.Gray {
	return &image.Gray{
		Pix:    p.Pix,
		Stride: p.Width,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

// Load reads the BMP file at path and converts it to luminance.
func Load(path string) (*Plane, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: OpenFailure, Path: path, Err: err}
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode reads a BMP from r. name is only used in error messages.
func Decode(r io.ReadSeeker, name string) (*Plane, error) {
	h, err := DecodeHeader(r, name)
	if err != nil {
		return nil, err
	}

	width, height := h.Width(), h.Rows()
	if int64(width)*int64(height) > MaxPixels {
		return nil, &Error{
			Kind:  AllocationFailure,
			Path:  name,
			Field: "pixels",
			Value: int64(width) * int64(height),
		}
	}
	stride := h.Stride()
	if int64(stride) > MaxPixels {
		return nil, &Error{
			Kind:  AllocationFailure,
			Path:  name,
			Field: "stride",
			Value: int64(stride),
		}
	}

	if _, err := r.Seek(int64(h.File.Offset), io.SeekStart); err != nil {
		return nil, &Error{Kind: ReadFailure, Path: name, Field: "offset", Value: int64(h.File.Offset), Err: err}
	}

	pix := make([]byte, width*height)
	row := make([]byte, stride)
	br := bufio.NewReader(r)
	topDown := h.TopDown()

	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, &Error{
					Kind:  TruncatedPixels,
					Path:  name,
					Field: "row",
					Value: int64(y),
					Err:   fmt.Errorf("expected %d rows of %d bytes", height, stride),
				}
			}
			return nil, &Error{Kind: ReadFailure, Path: name, Err: err}
		}

		dstY := height - 1 - y
		if topDown {
			dstY = y
		}
		bgrToLuma(pix[dstY*width:(dstY+1)*width], row)
	}

	return &Plane{Width: width, Height: height, Pix: pix}, nil
}
