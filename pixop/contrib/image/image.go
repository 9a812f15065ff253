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
	"github.com/dkyang/gimp/pixop"
)

// rowAlign is the pixel count each row is padded to.
const rowAlign = 4

// Buffer is an interleaved RGBA float32 pixel buffer.
// Each row holds stride samples; only the first width are image pixels.
type Buffer struct {
	data   []float32
	width  int
	height int
	stride int // pixels per row (includes padding)
}

// NewBuffer creates a zeroed buffer with the specified dimensions.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{}
	}

	stride := ((width + rowAlign - 1) / rowAlign) * rowAlign

	return &Buffer{
		data:   make([]float32, stride*height*pixop.NumChannels),
		width:  width,
		height: height,
		stride: stride,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of pixels per row (including padding).
func (b *Buffer) Stride() int {
	return b.stride
}

// Row returns a mutable slice for the specified row, padding included.
func (b *Buffer) Row(y int) []float32 {
	if y < 0 || y >= b.height || b.data == nil {
		return nil
	}
	n := b.stride * pixop.NumChannels
	return b.data[y*n : (y+1)*n]
}

// RowSlice returns a mutable slice for the specified row,
// limited to the actual image width (excluding padding).
func (b *Buffer) RowSlice(y int) []float32 {
	if y < 0 || y >= b.height || b.data == nil {
		return nil
	}
	start := y * b.stride * pixop.NumChannels
	return b.data[start : start+b.width*pixop.NumChannels]
}

// At returns the sample at position (x, y).
func (b *Buffer) At(x, y int) pixop.Sample {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || b.data == nil {
		return pixop.Sample{}
	}
	return pixop.LoadSample(b.data, y*b.stride+x)
}

// Set sets the sample at position (x, y).
func (b *Buffer) Set(x, y int, s pixop.Sample) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || b.data == nil {
		return
	}
	pixop.StoreSample(s, b.data, y*b.stride+x)
}

// SameSize returns true if both buffers have the same dimensions.
func SameSize(a, b *Buffer) bool {
	return a.width == b.width && a.height == b.height
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	if b.data == nil {
		return NewBuffer(0, 0)
	}

	clone := &Buffer{
		data:   make([]float32, len(b.data)),
		width:  b.width,
		height: b.height,
		stride: b.stride,
	}
	copy(clone.data, b.data)
	return clone
}

// Fill sets every pixel to s.
func (b *Buffer) Fill(s pixop.Sample) {
	for i := range len(b.data) / pixop.NumChannels {
		pixop.StoreSample(s, b.data, i)
	}
}

// Bounds returns the bounding rectangle of the buffer.
func (b *Buffer) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: b.width, Y1: b.height}
}

// ReadRegion copies the pixels of r into dst as a contiguous run of
// r.Area() samples in row-major order. r must lie within the buffer and dst
// must hold at least r.Area() samples. It returns the number of samples
// copied.
func (b *Buffer) ReadRegion(r Rect, dst []float32) int {
	r = r.Intersect(b.Bounds())
	if r.IsEmpty() {
		return 0
	}
	n := r.Width() * pixop.NumChannels
	off := 0
	for y := r.Y0; y < r.Y1; y++ {
		row := b.Row(y)
		copy(dst[off:off+n], row[r.X0*pixop.NumChannels:])
		off += n
	}
	return r.Area()
}

// WriteRegion is the inverse of ReadRegion: it copies a contiguous run of
// samples into the pixels of r.
func (b *Buffer) WriteRegion(r Rect, src []float32) int {
	r = r.Intersect(b.Bounds())
	if r.IsEmpty() {
		return 0
	}
	n := r.Width() * pixop.NumChannels
	off := 0
	for y := r.Y0; y < r.Y1; y++ {
		row := b.Row(y)
		copy(row[r.X0*pixop.NumChannels:], src[off:off+n])
		off += n
	}
	return r.Area()
}

// Rect defines a rectangular region within a buffer.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// Area returns the number of pixels in r, 0 when empty.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X0, other.X0)
	y0 := max(r.Y0, other.Y0)
	x1 := min(r.X1, other.X1)
	y1 := min(r.Y1, other.Y1)
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Tiles partitions r into tiles of at most tileW x tileH pixels in
// row-major order. Edge tiles are clipped to r.
func Tiles(r Rect, tileW, tileH int) []Rect {
	if r.IsEmpty() {
		return nil
	}
	if tileW <= 0 {
		tileW = r.Width()
	}
	if tileH <= 0 {
		tileH = r.Height()
	}

	cols := (r.Width() + tileW - 1) / tileW
	rows := (r.Height() + tileH - 1) / tileH
	tiles := make([]Rect, 0, cols*rows)
	for y := r.Y0; y < r.Y1; y += tileH {
		for x := r.X0; x < r.X1; x += tileW {
			tiles = append(tiles, Rect{
				X0: x,
				Y0: y,
				X1: min(x+tileW, r.X1),
				Y1: min(y+tileH, r.Y1),
			})
		}
	}
	return tiles
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}
