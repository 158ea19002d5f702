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
	"image"
	"image/color"

	"github.com/nfnt/resize"

	"github.com/dominikschlosser/bmpqr/internal/bmp"
)

// upscale enlarges p by factor with nearest-neighbour sampling so module
// edges stay sharp for the binarizer.
func upscale(p *bmp.Plane, factor int) (*bmp.Plane, error) {
	w, h := p.Width*factor, p.Height*factor
	if int64(w)*int64(h) > bmp.MaxPixels {
		return nil, fmt.Errorf("scaled image %dx%d exceeds %d pixels", w, h, bmp.MaxPixels)
	}

	img := resize.Resize(uint(w), uint(h), p.Gray(), resize.NearestNeighbor)
	return planeFromImage(img), nil
}

func planeFromImage(img image.Image) *bmp.Plane {
	b := img.Bounds()
	out := &bmp.Plane{Width: b.Dx(), Height: b.Dy(), Pix: make([]byte, b.Dx()*b.Dy())}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < out.Height; y++ {
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Width:(y+1)*out.Width], g.Pix[off:off+out.Width])
		}
		return out
	}

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Pix[y*out.Width+x] = color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}
	return out
}
