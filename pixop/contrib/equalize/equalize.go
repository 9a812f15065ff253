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

// Package equalize implements histogram equalization: every colour channel
// is remapped through the normalised cumulative distribution of its
// histogram.
//
// Building the table and applying it are separate steps:
//
//	snap := histogram.Calculate(buf, gray, alpha, pool).Snapshot()
//	table, err := equalize.NewTable(snap)
//	if err != nil {
//	    return err // pixop.ErrEmptyInput for an empty histogram
//	}
//	equalize.Process(table, in, out)
package equalize

import (
	"fmt"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/histogram"
)

// Table maps an input bin of each colour channel to an output intensity.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	rows [3][histogram.NumBins]float32
}

// NewTable builds the lookup table for snap.
//
// Entry i of a row is the fraction of samples in bins [0, i], relative to
// the total count of the value channel. Gray histograms (one or two
// channels) equalize the value channel and use it for all three rows;
// colour histograms equalize red, green and blue independently.
//
// It returns an error wrapping pixop.ErrEmptyInput when the histogram holds
// no samples.
func NewTable(snap *histogram.Snapshot) (*Table, error) {
	pixels := snap.Count(histogram.Value, 0, histogram.NumBins-1)
	if !(pixels > 0) {
		return nil, fmt.Errorf("equalize: %w", pixop.ErrEmptyInput)
	}

	t := &Table{}
	if histogram.IsGray(snap) {
		t.rows[0] = cdf(snap, histogram.Value, pixels)
		t.rows[1] = t.rows[0]
		t.rows[2] = t.rows[0]
		return t, nil
	}
	for k := range t.rows {
		t.rows[k] = cdf(snap, histogram.Red+histogram.Channel(k), pixels)
	}
	return t, nil
}

func cdf(src histogram.Source, ch histogram.Channel, pixels float64) [histogram.NumBins]float32 {
	var row [histogram.NumBins]float32
	var sum float64
	for i := range histogram.NumBins {
		sum += src.Bin(ch, i)
		row[i] = float32(sum / pixels)
	}
	return row
}

// Row returns a copy of the mapping for a colour channel.
func (t *Table) Row(c pixop.Channel) [histogram.NumBins]float32 {
	return t.rows[c]
}

// Map returns the equalized value of v in channel c, which must be Red,
// Green or Blue. The input bin is round(v*255) clamped to [0, 255]; NaN
// maps through bin 0.
func (t *Table) Map(c pixop.Channel, v float32) float32 {
	return t.rows[c][histogram.BinOf(v)]
}

// Apply equalizes one sample. Alpha is passed through.
func (t *Table) Apply(s pixop.Sample) pixop.Sample {
	return pixop.Sample{
		t.Map(pixop.Red, s[pixop.Red]),
		t.Map(pixop.Green, s[pixop.Green]),
		t.Map(pixop.Blue, s[pixop.Blue]),
		s[pixop.Alpha],
	}
}

// Process equalizes the interleaved RGBA run in into out. out must hold at
// least as many samples as in; in and out may alias.
func Process(t *Table, in, out []float32) {
	for i := range len(in) / pixop.NumChannels {
		pixop.StoreSample(t.Apply(pixop.LoadSample(in, i)), out, i)
	}
}

// ProcessRow is Process with the legacy pixel processor signature.
func ProcessRow(t *Table, src, dst []float32) {
	Process(t, src, dst)
}
