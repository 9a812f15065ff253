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

// Package histogram computes per-channel intensity distributions of a pixel
// buffer.
//
// A Histogram is filled once from a buffer and then frozen with Snapshot
// before any table is built from it; consumers only ever see the read-only
// Source view.
package histogram

import (
	"math"
	"sync"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/image"
	"github.com/dkyang/gimp/pixop/contrib/workerpool"
)

// NumBins is the number of intensity bins per channel.
const NumBins = 256

// Channel selects one distribution of a histogram.
type Channel int

const (
	// Value is max(R, G, B) for colour sources and the gray level for
	// gray sources.
	Value Channel = iota
	Red
	Green
	Blue
	Alpha

	numChannels
)

// String returns the lower-case channel name.
func (c Channel) String() string {
	switch c {
	case Value:
		return "value"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Alpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// Source is the read-only view of a histogram.
type Source interface {
	// NChannels returns 1 or 2 for gray sources (value, optional alpha)
	// and 4 or 5 for colour sources (value, red, green, blue, optional
	// alpha).
	NChannels() int

	// Count returns the number of samples of ch in bins [lo, hi].
	Count(ch Channel, lo, hi int) float64

	// Bin returns the number of samples of ch in a single bin.
	Bin(ch Channel, bin int) float64
}

// Histogram is a mutable per-channel distribution. It is not safe for
// concurrent use; Calculate merges per-worker histograms under a lock.
type Histogram struct {
	gray  bool
	alpha bool
	bins  [numChannels][NumBins]float64
}

// New returns an empty histogram for a gray or colour source, with or
// without an alpha channel.
func New(gray, alpha bool) *Histogram {
	return &Histogram{gray: gray, alpha: alpha}
}

// Calculate fills a new histogram from every pixel of buf. Rows are split
// across pool when it is non-nil.
func Calculate(buf *image.Buffer, gray, alpha bool, pool *workerpool.Pool) *Histogram {
	h := New(gray, alpha)
	if pool == nil {
		h.addRows(buf, 0, buf.Height())
		return h
	}

	var mu sync.Mutex
	pool.ParallelFor(buf.Height(), func(start, end int) {
		part := New(gray, alpha)
		part.addRows(buf, start, end)

		mu.Lock()
		h.Merge(part)
		mu.Unlock()
	})
	return h
}

func (h *Histogram) addRows(buf *image.Buffer, start, end int) {
	for y := start; y < end; y++ {
		row := buf.RowSlice(y)
		for i := range len(row) / pixop.NumChannels {
			h.Add(pixop.LoadSample(row, i))
		}
	}
}

// BinOf returns the bin index of an intensity in [0, 1]. Out-of-range
// values fall into the first or last bin and NaN falls into bin 0.
func BinOf(v float32) int {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return NumBins - 1
	}
	return image.Clamp(int(math.Round(float64(v)*(NumBins-1))), NumBins)
}

// Add counts one sample.
func (h *Histogram) Add(s pixop.Sample) {
	r, g, b := s[pixop.Red], s[pixop.Green], s[pixop.Blue]
	if h.gray {
		h.bins[Value][BinOf(r)]++
	} else {
		h.bins[Value][BinOf(max(r, g, b))]++
		h.bins[Red][BinOf(r)]++
		h.bins[Green][BinOf(g)]++
		h.bins[Blue][BinOf(b)]++
	}
	if h.alpha {
		h.bins[Alpha][BinOf(s[pixop.Alpha])]++
	}
}

// Merge adds the counts of other, which must have the same layout.
func (h *Histogram) Merge(other *Histogram) {
	for c := range h.bins {
		for i := range h.bins[c] {
			h.bins[c][i] += other.bins[c][i]
		}
	}
}

// NChannels implements Source.
func (h *Histogram) NChannels() int {
	n := 4
	if h.gray {
		n = 1
	}
	if h.alpha {
		n++
	}
	return n
}

// Count implements Source.
func (h *Histogram) Count(ch Channel, lo, hi int) float64 {
	return count(&h.bins, ch, lo, hi)
}

// Bin implements Source.
func (h *Histogram) Bin(ch Channel, bin int) float64 {
	if ch < 0 || ch >= numChannels || bin < 0 || bin >= NumBins {
		return 0
	}
	return h.bins[ch][bin]
}

func count(bins *[numChannels][NumBins]float64, ch Channel, lo, hi int) float64 {
	if ch < 0 || ch >= numChannels {
		return 0
	}
	lo = max(lo, 0)
	hi = min(hi, NumBins-1)

	var sum float64
	for i := lo; i <= hi; i++ {
		sum += bins[ch][i]
	}
	return sum
}

// Snapshot is an immutable copy of a Source, safe to share between
// goroutines.
type Snapshot struct {
	nChannels int
	bins      [numChannels][NumBins]float64
}

// Take copies every channel of src. Later changes to src are not visible
// through the snapshot.
func Take(src Source) *Snapshot {
	s := &Snapshot{nChannels: src.NChannels()}
	for c := range numChannels {
		for i := range NumBins {
			s.bins[c][i] = src.Bin(c, i)
		}
	}
	return s
}

// Snapshot freezes the current counts of h.
func (h *Histogram) Snapshot() *Snapshot {
	return Take(h)
}

// NChannels implements Source.
func (s *Snapshot) NChannels() int {
	return s.nChannels
}

// Count implements Source.
func (s *Snapshot) Count(ch Channel, lo, hi int) float64 {
	return count(&s.bins, ch, lo, hi)
}

// Bin implements Source.
func (s *Snapshot) Bin(ch Channel, bin int) float64 {
	if ch < 0 || ch >= numChannels || bin < 0 || bin >= NumBins {
		return 0
	}
	return s.bins[ch][bin]
}

// IsGray reports whether src describes a gray source (one or two channels).
func IsGray(src Source) bool {
	n := src.NChannels()
	return n == 1 || n == 2
}
