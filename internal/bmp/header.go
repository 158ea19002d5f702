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
	"encoding/binary"
	"errors"
	"io"
)

const (
	FileHeaderLen = 14
	InfoHeaderLen = 40

	magic = 0x4D42 // "BM"
)

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Type      uint16
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	Offset    uint32
}

// InfoHeader is the 40-byte BITMAPINFOHEADER, which is also the common
// prefix of the V4 and V5 variants.
type InfoHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitDepth        uint16
	Compression     uint32
	ImageSize       uint32
	XResolution     int32
	YResolution     int32
	NumColors       uint32
	ImportantColors uint32
}

// Header holds both BMP headers after validation.
type Header struct {
	File FileHeader
	Info InfoHeader
}

func parseFileHeader(b []byte) FileHeader {
	le := binary.LittleEndian
	return FileHeader{
		Type:      le.Uint16(b[0:]),
		Size:      le.Uint32(b[2:]),
		Reserved1: le.Uint16(b[6:]),
		Reserved2: le.Uint16(b[8:]),
		Offset:    le.Uint32(b[10:]),
	}
}

func parseInfoHeader(b []byte) InfoHeader {
	le := binary.LittleEndian
	return InfoHeader{
		HeaderSize:      le.Uint32(b[0:]),
		Width:           int32(le.Uint32(b[4:])),
		Height:          int32(le.Uint32(b[8:])),
		Planes:          le.Uint16(b[12:]),
		BitDepth:        le.Uint16(b[14:]),
		Compression:     le.Uint32(b[16:]),
		ImageSize:       le.Uint32(b[20:]),
		XResolution:     int32(le.Uint32(b[24:])),
		YResolution:     int32(le.Uint32(b[28:])),
		NumColors:       le.Uint32(b[32:]),
		ImportantColors: le.Uint32(b[36:]),
	}
}

// DecodeHeader reads and validates the file and info headers from r.
// name is only used in error messages.
func DecodeHeader(r io.Reader, name string) (*Header, error) {
	var buf [FileHeaderLen + InfoHeaderLen]byte

	if err := readHeader(r, buf[:FileHeaderLen], name, "file header"); err != nil {
		return nil, err
	}
	fh := parseFileHeader(buf[:FileHeaderLen])
	if fh.Type != magic {
		return nil, &Error{Kind: BadMagic, Path: name, Field: "magic", Value: int64(fh.Type)}
	}

	if err := readHeader(r, buf[FileHeaderLen:], name, "info header"); err != nil {
		return nil, err
	}
	ih := parseInfoHeader(buf[FileHeaderLen:])
	if ih.BitDepth != 24 {
		return nil, &Error{Kind: UnsupportedDepth, Path: name, Field: "bitDepth", Value: int64(ih.BitDepth)}
	}
	if ih.Compression != 0 {
		return nil, &Error{Kind: UnsupportedCompression, Path: name, Field: "compression", Value: int64(ih.Compression)}
	}
	if ih.Width <= 0 {
		return nil, &Error{Kind: InvalidDimensions, Path: name, Field: "width", Value: int64(ih.Width)}
	}
	if ih.Height == 0 {
		return nil, &Error{Kind: InvalidDimensions, Path: name, Field: "height", Value: 0}
	}

	return &Header{File: fh, Info: ih}, nil
}

func readHeader(r io.Reader, b []byte, name, what string) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &Error{Kind: TruncatedHeader, Path: name, Err: errors.New("reading " + what + ": unexpected end of file")}
		}
		return &Error{Kind: ReadFailure, Path: name, Err: err}
	}
	return nil
}

// Width returns the image width in pixels.
func (h *Header) Width() int { return int(h.Info.Width) }

// Rows returns the number of pixel rows, regardless of storage order.
func (h *Header) Rows() int {
	if h.Info.Height < 0 {
		return -int(h.Info.Height)
	}
	return int(h.Info.Height)
}

// TopDown reports whether the first stored row is the visual top row.
func (h *Header) TopDown() bool { return h.Info.Height < 0 }

// Stride is the padded byte length of one stored row.
func (h *Header) Stride() int { return (h.Width()*3 + 3) &^ 3 }
