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

package qr

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/dominikschlosser/bmpqr/internal/bmp"
	"github.com/dominikschlosser/bmpqr/internal/bmp/bmptest"
)

const testQRContent = "openid4vp://authorize?client_id=test&response_type=vp_token"

var (
	black = bmptest.RGB{}
	white = bmptest.RGB{R: 255, G: 255, B: 255}
)

// renderQR encodes content as a size x size QR symbol including quiet zone.
func renderQR(t *testing.T, content string, size int) [][]bmptest.RGB {
	t.Helper()
	m, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		t.Fatalf("encoding QR: %v", err)
	}
	return bmptest.Fill(m.GetWidth(), m.GetHeight(), func(x, y int) bmptest.RGB {
		if m.Get(x, y) {
			return black
		}
		return white
	})
}

// sideBySide places images next to each other on a white canvas.
func sideBySide(gap int, imgs ...[][]bmptest.RGB) [][]bmptest.RGB {
	width, height := 0, 0
	for _, img := range imgs {
		width += len(img[0]) + gap
		height = max(height, len(img))
	}
	canvas := bmptest.Fill(width, height, func(x, y int) bmptest.RGB { return white })
	x0 := 0
	for _, img := range imgs {
		for y, row := range img {
			copy(canvas[y][x0:], row)
		}
		x0 += len(img[0]) + gap
	}
	return canvas
}

// renderDamagedQR renders content at px pixels per module and inverts the
// data modules right of and below the format information. Finder patterns
// stay intact, so the symbol is located but cannot be decoded.
func renderDamagedQR(t *testing.T, content string, px int) [][]bmptest.RGB {
	t.Helper()
	m, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, 0, 0, nil)
	if err != nil {
		t.Fatalf("encoding QR: %v", err)
	}
	const quiet = 4
	modules := m.GetWidth() - 2*quiet
	return bmptest.Fill(m.GetWidth()*px, m.GetHeight()*px, func(x, y int) bmptest.RGB {
		mx, my := x/px, y/px
		dark := m.Get(mx, my)
		if sx, sy := mx-quiet, my-quiet; sx >= 9 && sy >= 9 && sx < modules && sy < modules {
			dark = !dark
		}
		if dark {
			return black
		}
		return white
	})
}

func blankPlane(w, h int) *bmp.Plane {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = 255
	}
	return &bmp.Plane{Width: w, Height: h, Pix: pix}
}

func TestScanFile_ValidQR(t *testing.T) {
	for _, topDown := range []bool{false, true} {
		path := bmptest.WriteFile(t, bmptest.Image{Pixels: renderQR(t, testQRContent, 201), TopDown: topDown})

		got, err := ScanFile(path, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Width != 201 || got.Height != 201 {
			t.Errorf("dimensions = %dx%d", got.Width, got.Height)
		}
		if len(got.Attempts) != 1 {
			t.Fatalf("got %d attempts, want 1", len(got.Attempts))
		}
		a := got.Attempts[0]
		if !a.OK() {
			t.Fatalf("attempt failed: %s", a.Reason)
		}
		if string(a.Payload) != testQRContent {
			t.Errorf("got %q, want %q", a.Payload, testQRContent)
		}
		if a.ErrorLevel == "" {
			t.Error("expected error correction level metadata")
		}
		if len(a.Points) < 3 {
			t.Errorf("expected finder pattern points, got %v", a.Points)
		}
	}
}

func TestScanFile_MultipleQR(t *testing.T) {
	img := sideBySide(40, renderQR(t, "first", 150), renderQR(t, "second", 150))
	path := bmptest.WriteFile(t, bmptest.Image{Pixels: img})

	got, err := ScanFile(path, Options{TryHarder: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payloads []string
	for _, a := range got.Attempts {
		payloads = append(payloads, string(a.Payload))
	}
	sort.Strings(payloads)
	if strings.Join(payloads, ",") != "first,second" {
		t.Errorf("payloads = %v, want [first second]", payloads)
	}
}

func TestScanFile_DamagedQR(t *testing.T) {
	path := bmptest.WriteFile(t, bmptest.Image{Pixels: renderDamagedQR(t, "damaged", 8)})

	got, err := ScanFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Attempts) != 1 {
		t.Fatalf("got %d attempts, want 1: %+v", len(got.Attempts), got.Attempts)
	}
	if a := got.Attempts[0]; a.OK() || a.Payload != nil {
		t.Errorf("expected a failure attempt, got %+v", a)
	}
}

func TestScanFile_GoodAndDamagedQR(t *testing.T) {
	const px = 8
	good := renderQR(t, "good-one", 29*px)
	img := sideBySide(40, good, renderDamagedQR(t, "bad-one", px))
	path := bmptest.WriteFile(t, bmptest.Image{Pixels: img})

	got, err := ScanFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Attempts) != 2 {
		t.Fatalf("got %d attempts, want 2: %+v", len(got.Attempts), got.Attempts)
	}

	var decoded, failed []Attempt
	for _, a := range got.Attempts {
		if a.OK() {
			decoded = append(decoded, a)
		} else {
			failed = append(failed, a)
		}
	}
	if len(decoded) != 1 || string(decoded[0].Payload) != "good-one" {
		t.Errorf("decoded = %+v, want one attempt with payload good-one", decoded)
	}
	if len(failed) != 1 {
		t.Fatalf("failed = %+v, want one failure", failed)
	}
	switch failed[0].Reason {
	case "data ECC failure", "invalid format or version information":
	default:
		t.Errorf("unexpected reason %q", failed[0].Reason)
	}
	for _, pt := range failed[0].Points {
		if pt.X < float64(len(good[0])) {
			t.Errorf("failure point %v lies on the decoded symbol", pt)
		}
	}
}

func TestScanFile_NoQR(t *testing.T) {
	path := bmptest.WriteFile(t, bmptest.Image{
		Pixels: bmptest.Fill(64, 64, func(x, y int) bmptest.RGB { return white }),
	})
	got, err := ScanFile(path, Options{})
	if err != nil {
		t.Fatalf("blank image must not be an error: %v", err)
	}
	if len(got.Attempts) != 0 {
		t.Errorf("got %d attempts, want 0", len(got.Attempts))
	}
}

func TestScanFile_LoaderErrorUnchanged(t *testing.T) {
	_, err := ScanFile(filepath.Join(t.TempDir(), "nonexistent.bmp"), Options{})
	if bmp.KindOf(err) != bmp.OpenFailure {
		t.Fatalf("expected OpenFailure, got: %v", err)
	}

	path := bmptest.WriteBytes(t, []byte("XM not a bitmap at all, but long enough for the headers......"))
	_, err = ScanFile(path, Options{})
	if bmp.KindOf(err) != bmp.BadMagic {
		t.Fatalf("expected BadMagic, got: %v", err)
	}
}

func TestRecognizer_Scale(t *testing.T) {
	// One pixel per module is too small for the binarizer's block grid.
	path := bmptest.WriteFile(t, bmptest.Image{Pixels: renderQR(t, "tiny", 0)})
	plane, err := bmp.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	attempts, err := NewRecognizer(Options{Scale: 4}).Scan(plane)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attempts) != 1 || string(attempts[0].Payload) != "tiny" {
		t.Fatalf("attempts = %+v", attempts)
	}
	for _, pt := range attempts[0].Points {
		if pt.X > float64(plane.Width) || pt.Y > float64(plane.Height) {
			t.Errorf("point %v outside the unscaled plane", pt)
		}
	}
}

func TestRecognizer_BlankPlane(t *testing.T) {
	for _, b := range []Binarizer{BinarizerHybrid, BinarizerGlobal} {
		attempts, err := NewRecognizer(Options{Binarizer: b}).Scan(blankPlane(100, 100))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", b, err)
		}
		if len(attempts) != 0 {
			t.Errorf("%s: got %d attempts for blank plane", b, len(attempts))
		}
	}
}

func TestRecognizer_MismatchedPlane(t *testing.T) {
	p := &bmp.Plane{Width: 10, Height: 10, Pix: make([]byte, 5)}
	if _, err := NewRecognizer(Options{}).Scan(p); err == nil {
		t.Fatal("expected error for plane smaller than its dimensions")
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		ok   bool
	}{
		{"checksum", gozxing.NewChecksumException(), "data ECC failure", true},
		{"format", gozxing.NewFormatException(), "invalid format or version information", true},
		{"not found", gozxing.NewNotFoundException(), "", false},
		{"other", errors.New("boom"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := failureReason(tt.err)
			if got != tt.want || ok != tt.ok {
				t.Errorf("failureReason() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsReaderError(t *testing.T) {
	if !isReaderError(gozxing.NewNotFoundException()) {
		t.Error("NotFoundException should be a reader error")
	}
	if isReaderError(errors.New("disk on fire")) {
		t.Error("plain errors are not reader errors")
	}
}
