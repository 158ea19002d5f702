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

package output

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/dominikschlosser/bmpqr/internal/bmp"
	"github.com/dominikschlosser/bmpqr/internal/format"
	"github.com/dominikschlosser/bmpqr/internal/qr"
)

// Options controls how results are rendered.
type Options struct {
	JSON    bool
	Verbose bool
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	valueColor   = color.New(color.FgWhite)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// BuildScanJSON returns the JSON-serializable map for a scan.
func BuildScanJSON(s *qr.Scan) map[string]any {
	codes := make([]map[string]any, 0, len(s.Attempts))
	for i, a := range s.Attempts {
		code := map[string]any{"index": i + 1}
		if !a.OK() {
			code["error"] = a.Reason
			if len(a.Points) > 0 {
				code["points"] = a.Points
			}
			codes = append(codes, code)
			continue
		}
		if utf8.Valid(a.Payload) {
			code["payload"] = string(a.Payload)
		} else {
			code["payloadBase64"] = base64.StdEncoding.EncodeToString(a.Payload)
		}
		in := format.Inspect(a.Payload)
		code["kind"] = string(in.Kind)
		if in.Detail != "" {
			code["detail"] = in.Detail
		}
		if a.ErrorLevel != "" {
			code["errorCorrectionLevel"] = a.ErrorLevel
		}
		if len(a.Points) > 0 {
			code["points"] = a.Points
		}
		codes = append(codes, code)
	}

	return map[string]any{
		"file":   s.File,
		"width":  s.Width,
		"height": s.Height,
		"count":  len(s.Attempts),
		"codes":  codes,
	}
}

// PrintScan prints the decoded QR codes of a scan.
func PrintScan(s *qr.Scan, opts Options) {
	if opts.JSON {
		PrintJSON(BuildScanJSON(s))
		return
	}

	if opts.Verbose {
		dimColor.Printf("%s: %dx%d luminance plane\n", s.File, s.Width, s.Height)
	}

	if len(s.Attempts) == 0 {
		fmt.Println("No QR codes found in the image.")
		return
	}

	headerColor.Printf("Found %d QR code(s) in the image:\n", len(s.Attempts))
	for i, a := range s.Attempts {
		labelColor.Printf("  QR Code #%d: ", i+1)
		if !a.OK() {
			errorColor.Print("Decode failed: ")
			fmt.Println(a.Reason)
			continue
		}
		successColor.Print("Payload: ")
		fmt.Printf("\"%s\"\n", formatPayload(a.Payload))

		if opts.Verbose {
			printAttemptDetails(a)
		}
	}
}

func printAttemptDetails(a qr.Attempt) {
	in := format.Inspect(a.Payload)
	kind := string(in.Kind)
	if in.Detail != "" {
		kind += " (" + in.Detail + ")"
	}
	dimColor.Printf("       kind: %s\n", kind)
	if a.ErrorLevel != "" {
		dimColor.Printf("       error correction: %s\n", a.ErrorLevel)
	}
	if len(a.Points) > 0 {
		pts := make([]string, len(a.Points))
		for i, p := range a.Points {
			pts[i] = fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y)
		}
		dimColor.Printf("       points: %s\n", strings.Join(pts, " "))
	}
}

// formatPayload renders text payloads as-is and binary ones as hex.
func formatPayload(p []byte) string {
	if utf8.Valid(p) {
		return string(p)
	}
	return "0x" + hex.EncodeToString(p)
}

// BuildHeaderJSON returns the JSON-serializable map for BMP headers.
func BuildHeaderJSON(path string, h *bmp.Header) map[string]any {
	return map[string]any{
		"file": path,
		"fileHeader": map[string]any{
			"size":   h.File.Size,
			"offset": h.File.Offset,
		},
		"infoHeader": map[string]any{
			"headerSize":      h.Info.HeaderSize,
			"width":           h.Info.Width,
			"height":          h.Info.Height,
			"planes":          h.Info.Planes,
			"bitDepth":        h.Info.BitDepth,
			"compression":     h.Info.Compression,
			"imageSize":       h.Info.ImageSize,
			"xResolution":     h.Info.XResolution,
			"yResolution":     h.Info.YResolution,
			"numColors":       h.Info.NumColors,
			"importantColors": h.Info.ImportantColors,
		},
		"rows":    h.Rows(),
		"stride":  h.Stride(),
		"topDown": h.TopDown(),
	}
}

// PrintHeader prints the parsed headers of a BMP file.
func PrintHeader(path string, h *bmp.Header, opts Options) {
	if opts.JSON {
		PrintJSON(BuildHeaderJSON(path, h))
		return
	}

	headerColor.Println("BMP Image")
	headerColor.Println(strings.Repeat("─", 50))
	printKV("File", path, 0)

	printSection("File Header")
	printKV("Declared size", fmt.Sprintf("%d bytes", h.File.Size), 1)
	printKV("Pixel offset", fmt.Sprintf("%d", h.File.Offset), 1)

	printSection("Info Header")
	printKV("Header size", fmt.Sprintf("%d", h.Info.HeaderSize), 1)
	printKV("Dimensions", fmt.Sprintf("%d x %d", h.Width(), h.Rows()), 1)
	order := "bottom-up"
	if h.TopDown() {
		order = "top-down"
	}
	printKV("Row order", order, 1)
	printKV("Stride", fmt.Sprintf("%d bytes", h.Stride()), 1)
	printKV("Planes", fmt.Sprintf("%d", h.Info.Planes), 1)
	printKV("Bit depth", fmt.Sprintf("%d", h.Info.BitDepth), 1)
	printKV("Compression", fmt.Sprintf("%d", h.Info.Compression), 1)

	if opts.Verbose {
		printKV("Image size", fmt.Sprintf("%d bytes", h.Info.ImageSize), 1)
		printKV("Resolution", fmt.Sprintf("%d x %d px/m", h.Info.XResolution, h.Info.YResolution), 1)
		printKV("Colors", fmt.Sprintf("%d (%d important)", h.Info.NumColors, h.Info.ImportantColors), 1)
	}
	fmt.Println()
}

func printSection(title string) {
	fmt.Println()
	headerColor.Printf("┌ %s\n", title)
}

func printKV(key, value string, indent int) {
	prefix := strings.Repeat("  ", indent)
	labelColor.Printf("%s%s: ", prefix, key)
	valueColor.Println(value)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("Error:"), msg)
}
