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

// Per-channel products of the BT.601 luma weights. Each entry is rounded to
// float64 on its own, so summing table entries gives the same result as
// evaluating 0.299*R + 0.587*G + 0.114*B without fused multiply-add.
var lumaR, lumaG, lumaB = lumaTable(0.299), lumaTable(0.587), lumaTable(0.114)

func lumaTable(weight float64) *[256]float64 {
	var t [256]float64
	for i := range t {
		t[i] = float64(weight * float64(i))
	}
	return &t
}

// Luma returns trunc(0.299*R + 0.587*G + 0.114*B).
func Luma(r, g, b uint8) uint8 {
	return uint8(lumaR[r] + lumaG[g] + lumaB[b])
}

// bgrToLuma converts the first len(dst) BGR triplets of src.
func bgrToLuma(dst, src []byte) {
	for x := range dst {
		p := src[x*3 : x*3+3 : x*3+3]
		dst[x] = Luma(p[2], p[1], p[0])
	}
}
