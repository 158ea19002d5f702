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

// Package bmptest builds 24-bit BMP fixtures for tests.
package bmptest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// RGB is one source pixel.
type RGB struct{ R, G, B uint8 }

// Image describes a fixture. Pixels is indexed [y][x] with y=0 the visual top.
type Image struct {
	Pixels  [][]RGB
	TopDown bool

	// Padding is the value written into row padding bytes.
	Padding byte
	// Gap inserts extra bytes between the headers and the pixel data.
	Gap int

	BitDepth    uint16
	Compression uint32
}

// Encode renders img as a BMP file.
func Encode(img Image) []byte {
	height := len(img.Pixels)
	width := 0
	if height > 0 {
		width = len(img.Pixels[0])
	}
	stride := (width*3 + 3) &^ 3
	offset := 54 + img.Gap
	depth := img.BitDepth
	if depth == 0 {
		depth = 24
	}

	buf := make([]byte, offset+stride*height)
	le := binary.LittleEndian
	buf[0], buf[1] = 'B', 'M'
	le.PutUint32(buf[2:], uint32(len(buf)))
	le.PutUint32(buf[10:], uint32(offset))
	le.PutUint32(buf[14:], 40)
	le.PutUint32(buf[18:], uint32(int32(width)))
	h := int32(height)
	if img.TopDown {
		h = -h
	}
	le.PutUint32(buf[22:], uint32(h))
	le.PutUint16(buf[26:], 1)
	le.PutUint16(buf[28:], depth)
	le.PutUint32(buf[30:], img.Compression)
	le.PutUint32(buf[34:], uint32(stride*height))
	le.PutUint32(buf[38:], 2835)
	le.PutUint32(buf[42:], 2835)

	for i := 0; i < height; i++ {
		y := height - 1 - i
		if img.TopDown {
			y = i
		}
		row := buf[offset+i*stride : offset+(i+1)*stride]
		for x, p := range img.Pixels[y] {
			row[x*3], row[x*3+1], row[x*3+2] = p.B, p.G, p.R
		}
		for j := width * 3; j < stride; j++ {
			row[j] = img.Padding
		}
	}
	return buf
}

// WriteFile encodes img into a file under t.TempDir and returns its path.
func WriteFile(t testing.TB, img Image) string {
	t.Helper()
	return WriteBytes(t, Encode(img))
}

// WriteBytes writes raw file content under t.TempDir and returns its path.
func WriteBytes(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bmp")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// Fill returns a width x height pixel grid produced by fn.
func Fill(width, height int, fn func(x, y int) RGB) [][]RGB {
	px := make([][]RGB, height)
	for y := range px {
		px[y] = make([]RGB, width)
		for x := range px[y] {
			px[y][x] = fn(x, y)
		}
	}
	return px
}
