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

// Package qr runs QR recognition over luminance planes.
package qr

import (
	"errors"
	"fmt"
	"math"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode/detector"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"

	"github.com/dominikschlosser/bmpqr/internal/bmp"
)

// Point is a finder pattern or alignment point in plane coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Attempt is one decode attempt. Exactly one of Payload or Reason is meaningful.
type Attempt struct {
	Payload    []byte
	ErrorLevel string
	Points     []Point
	Reason     string
}

// OK reports whether the attempt produced a payload.
func (a Attempt) OK() bool { return a.Reason == "" }

// Scan is the outcome of scanning one image.
type Scan struct {
	File     string
	Width    int
	Height   int
	Attempts []Attempt
}

// Recognizer decodes QR codes from luminance planes.
type Recognizer struct {
	opts Options
}

// NewRecognizer returns a Recognizer using opts. Zero-valued fields take defaults.
func NewRecognizer(opts Options) *Recognizer {
	return &Recognizer{opts: opts.withDefaults()}
}

// ScanFile loads a BMP file and scans it. Loader errors are returned unwrapped.
func ScanFile(path string, opts Options) (*Scan, error) {
	plane, err := bmp.Load(path)
	if err != nil {
		return nil, err
	}

	attempts, err := NewRecognizer(opts).Scan(plane)
	if err != nil {
		return nil, err
	}

	return &Scan{
		File:     path,
		Width:    plane.Width,
		Height:   plane.Height,
		Attempts: attempts,
	}, nil
}

// Scan returns the decode attempts for every QR symbol found in p, in the
// order the recognizer reports them. An image without symbols yields no
// attempts and no error.
func (r *Recognizer) Scan(p *bmp.Plane) ([]Attempt, error) {
	if p.Width <= 0 || p.Height <= 0 || len(p.Pix) != p.Width*p.Height {
		return nil, fmt.Errorf("invalid luminance plane: %dx%d with %d bytes", p.Width, p.Height, len(p.Pix))
	}

	plane := p
	if r.opts.Scale > 1 {
		var err error
		if plane, err = upscale(p, r.opts.Scale); err != nil {
			return nil, err
		}
	}

	src, err := gozxing.NewPlanarYUVLuminanceSource(
		plane.Pix, plane.Width, plane.Height, 0, 0, plane.Width, plane.Height, false)
	if err != nil {
		return nil, fmt.Errorf("creating luminance source: %w", err)
	}

	hints := r.hints()
	var failed []Attempt

	for _, kind := range r.opts.Binarizer.order() {
		bitmap, err := gozxing.NewBinaryBitmap(kind.binarize(src))
		if err != nil {
			return nil, fmt.Errorf("creating bitmap: %w", err)
		}

		attempts, err := r.decodeAll(bitmap, hints)
		if err != nil {
			return nil, err
		}
		if anyOK(attempts) {
			return attempts, nil
		}
		if failed == nil && len(attempts) > 0 {
			failed = attempts
		}
	}

	return failed, nil
}

// located is a symbol position together with its decode outcome.
type located struct {
	attempt Attempt
	points  []gozxing.ResultPoint
}

// decodeAll decodes every symbol the multi detector locates in bitmap, in
// detection order. A located symbol that does not decode is a failure
// attempt unless it borrows a finder pattern from a decoded symbol.
func (r *Recognizer) decodeAll(bitmap *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]Attempt, error) {
	matrix, err := bitmap.GetBlackMatrix()
	if err != nil {
		if isReaderError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("binarizing plane: %w", err)
	}

	detections, err := detector.NewMultiDetector(matrix).DetectMulti(hints)
	if err != nil {
		if !isReaderError(err) {
			return nil, fmt.Errorf("locating QR codes: %w", err)
		}
		return r.decodeSingle(bitmap, hints)
	}

	dec := decoder.NewDecoder()
	found := make([]located, 0, len(detections))
	for _, d := range detections {
		points := d.GetPoints()
		res, err := dec.Decode(d.GetBits(), hints)
		if err != nil {
			reason, ok := failureReason(err)
			if !ok {
				if isReaderError(err) {
					continue
				}
				return nil, fmt.Errorf("decoding QR code: %w", err)
			}
			found = append(found, located{
				attempt: Attempt{Reason: reason, Points: toPoints(points, r.opts.Scale)},
				points:  points,
			})
			continue
		}
		if md, ok := res.GetOther().(*decoder.QRCodeDecoderMetaData); ok {
			md.ApplyMirroredCorrection(points)
		}
		found = append(found, located{
			attempt: Attempt{
				Payload:    []byte(res.GetText()),
				ErrorLevel: res.GetECLevel(),
				Points:     toPoints(points, r.opts.Scale),
			},
			points: points,
		})
	}

	attempts := make([]Attempt, 0, len(found))
	for _, f := range found {
		if !f.attempt.OK() && sharesFinder(f.points, found) {
			continue
		}
		attempts = append(attempts, f.attempt)
	}
	return attempts, nil
}

// decodeSingle runs the single-symbol reader, which also handles pure
// barcodes the multi detector cannot locate.
func (r *Recognizer) decodeSingle(bitmap *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]Attempt, error) {
	res, err := qrcode.NewQRCodeReader().Decode(bitmap, hints)
	if err == nil {
		return []Attempt{fromResult(res, r.opts.Scale)}, nil
	}
	if reason, ok := failureReason(err); ok {
		return []Attempt{{Reason: reason}}, nil
	}
	if isReaderError(err) {
		return nil, nil
	}
	return nil, fmt.Errorf("recognizing QR codes: %w", err)
}

// sharesFinder reports whether any of points coincides with a point of a
// decoded symbol in found. A finder pattern belongs to exactly one symbol.
func sharesFinder(points []gozxing.ResultPoint, found []located) bool {
	for _, f := range found {
		if !f.attempt.OK() {
			continue
		}
		for _, p := range points {
			for _, q := range f.points {
				if p == nil || q == nil {
					continue
				}
				if math.Abs(p.GetX()-q.GetX()) < 0.5 && math.Abs(p.GetY()-q.GetY()) < 0.5 {
					return true
				}
			}
		}
	}
	return false
}

func anyOK(attempts []Attempt) bool {
	for _, a := range attempts {
		if a.OK() {
			return true
		}
	}
	return false
}

func (r *Recognizer) hints() map[gozxing.DecodeHintType]interface{} {
	hints := make(map[gozxing.DecodeHintType]interface{})
	if r.opts.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	if r.opts.PureBarcode {
		hints[gozxing.DecodeHintType_PURE_BARCODE] = true
	}
	return hints
}

// fromResult converts a gozxing result, mapping points back to the
// unscaled plane.
func fromResult(res *gozxing.Result, scale int) Attempt {
	a := Attempt{
		Payload: []byte(res.GetText()),
		Points:  toPoints(res.GetResultPoints(), scale),
	}
	if lvl, ok := res.GetResultMetadata()[gozxing.ResultMetadataType_ERROR_CORRECTION_LEVEL]; ok {
		a.ErrorLevel = fmt.Sprint(lvl)
	}
	return a
}

func toPoints(pts []gozxing.ResultPoint, scale int) []Point {
	var out []Point
	for _, pt := range pts {
		if pt == nil {
			continue
		}
		out = append(out, Point{X: pt.GetX() / float64(scale), Y: pt.GetY() / float64(scale)})
	}
	return out
}

// failureReason maps errors of a located but undecodable symbol to a reason.
func failureReason(err error) (string, bool) {
	var checksum gozxing.ChecksumException
	if errors.As(err, &checksum) {
		return "data ECC failure", true
	}
	var format gozxing.FormatException
	if errors.As(err, &format) {
		return "invalid format or version information", true
	}
	return "", false
}

func isReaderError(err error) bool {
	var re gozxing.ReaderException
	return errors.As(err, &re)
}
