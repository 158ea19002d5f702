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
	"fmt"
	"strings"

	"github.com/makiuchi-d/gozxing"
)

// MaxScale is the largest accepted upscaling factor.
const MaxScale = 8

type Binarizer string

const (
	BinarizerHybrid Binarizer = "hybrid"
	BinarizerGlobal Binarizer = "global"
)

// ParseBinarizer accepts "hybrid" or "global" (case-insensitive).
func ParseBinarizer(s string) (Binarizer, error) {
	switch b := Binarizer(strings.ToLower(strings.TrimSpace(s))); b {
	case BinarizerHybrid, BinarizerGlobal:
		return b, nil
	case "":
		return BinarizerHybrid, nil
	default:
		return "", fmt.Errorf("unknown binarizer %q (use 'hybrid' or 'global')", s)
	}
}

// order puts the preferred binarizer first and the other one second.
func (b Binarizer) order() []Binarizer {
	if b == BinarizerGlobal {
		return []Binarizer{BinarizerGlobal, BinarizerHybrid}
	}
	return []Binarizer{BinarizerHybrid, BinarizerGlobal}
}

func (b Binarizer) binarize(src gozxing.LuminanceSource) gozxing.Binarizer {
	if b == BinarizerGlobal {
		return gozxing.NewGlobalHistgramBinarizer(src)
	}
	return gozxing.NewHybridBinarizer(src)
}

// Options tune the recognizer.
type Options struct {
	// Binarizer is tried first; the other one is used as a fallback.
	Binarizer Binarizer
	// TryHarder trades speed for accuracy.
	TryHarder bool
	// PureBarcode assumes the image holds a single unrotated symbol.
	PureBarcode bool
	// Scale upsamples the plane before recognition (1 = off).
	Scale int
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if _, err := ParseBinarizer(string(o.Binarizer)); err != nil {
		return err
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return fmt.Errorf("scale must be between 1 and %d, got %d", MaxScale, o.Scale)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if b, err := ParseBinarizer(string(o.Binarizer)); err == nil {
		o.Binarizer = b
	} else {
		o.Binarizer = BinarizerHybrid
	}
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.Scale > MaxScale {
		o.Scale = MaxScale
	}
	return o
}
