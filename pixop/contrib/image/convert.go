// Copyright 2025 go-highway Authors
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

package image

import (
	stdimage "image"

	"golang.org/x/image/draw"

	"github.com/dkyang/gimp/pixop"
)

// FromImage converts img to a Buffer with straight (non-premultiplied)
// alpha. The buffer origin is img.Bounds().Min.
func FromImage(img stdimage.Image) *Buffer {
	sr := img.Bounds()
	dr := stdimage.Rect(0, 0, sr.Dx(), sr.Dy())

	// NRGBA64 keeps 16 bits per channel and undoes premultiplication.
	tmp, ok := img.(*stdimage.NRGBA64)
	if !ok || tmp.Bounds() != dr {
		tmp = stdimage.NewNRGBA64(dr)
		draw.Draw(tmp, dr, img, sr.Min, draw.Src)
	}

	buf := NewBuffer(dr.Dx(), dr.Dy())
	for y := range buf.height {
		row := buf.Row(y)
		pix := tmp.Pix[y*tmp.Stride:]
		for x := range buf.width {
			for c := range pixop.NumChannels {
				p := 8*x + 2*c
				v := uint16(pix[p])<<8 | uint16(pix[p+1])
				row[x*pixop.NumChannels+c] = float32(v) / 0xffff
			}
		}
	}
	return buf
}

// NRGBA64 converts the buffer to a standard library image, clamping every
// component to [0, 1].
func (b *Buffer) NRGBA64() *stdimage.NRGBA64 {
	img := stdimage.NewNRGBA64(stdimage.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		row := b.RowSlice(y)
		pix := img.Pix[y*img.Stride:]
		for i, v := range row {
			q := uint16(min(max(v, 0), 1)*0xffff + 0.5)
			pix[2*i] = uint8(q >> 8)
			pix[2*i+1] = uint8(q)
		}
	}
	return img
}
