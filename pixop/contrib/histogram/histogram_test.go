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

package histogram

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/image"
	"github.com/dkyang/gimp/pixop/contrib/workerpool"
)

func gradient(w, h int) *image.Buffer {
	buf := image.NewBuffer(w, h)
	for y := range h {
		for x := range w {
			v := float32(x) / float32(w-1)
			buf.Set(x, y, pixop.Sample{v, 1 - v, float32(y) / float32(h), 0.5})
		}
	}
	return buf
}

func TestBinOf(t *testing.T) {
	tests := []struct {
		v    float32
		want int
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{128.0 / 255, 128},
		{-1, 0},
		{2, 255},
		{1e20, 255},
		{float32(math.Inf(1)), 255},
		{float32(math.Inf(-1)), 0},
		{float32(math.NaN()), 0},
	}
	for _, tc := range tests {
		if got := BinOf(tc.v); got != tc.want {
			t.Errorf("BinOf(%v): got %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestAddHugeValues(t *testing.T) {
	h := New(false, true)
	inf := float32(math.Inf(1))
	h.Add(pixop.Sample{inf, 1e20, -inf, inf})
	for _, ch := range []Channel{Value, Red, Green, Alpha} {
		if got := h.Bin(ch, NumBins-1); got != 1 {
			t.Errorf("%v last bin: got %v, want 1", ch, got)
		}
	}
	if got := h.Bin(Blue, 0); got != 1 {
		t.Errorf("Blue first bin: got %v, want 1", got)
	}
}

func TestNChannels(t *testing.T) {
	tests := []struct {
		gray, alpha bool
		want        int
	}{
		{true, false, 1},
		{true, true, 2},
		{false, false, 4},
		{false, true, 5},
	}
	for _, tc := range tests {
		h := New(tc.gray, tc.alpha)
		if got := h.NChannels(); got != tc.want {
			t.Errorf("NChannels(gray=%v, alpha=%v): got %d, want %d", tc.gray, tc.alpha, got, tc.want)
		}
		if IsGray(h) != tc.gray {
			t.Errorf("IsGray(gray=%v, alpha=%v): got %v", tc.gray, tc.alpha, IsGray(h))
		}
	}
}

func TestCalculate(t *testing.T) {
	buf := gradient(256, 4)
	h := Calculate(buf, false, true, nil)

	if got := h.Count(Value, 0, 255); got != 256*4 {
		t.Errorf("Count(Value): got %v, want %v", got, 256*4)
	}
	for _, ch := range []Channel{Red, Green, Alpha} {
		if got := h.Count(ch, 0, 255); got != 256*4 {
			t.Errorf("Count(%v): got %v, want %v", ch, got, 256*4)
		}
	}
	// One column per red bin.
	for i := range NumBins {
		if got := h.Bin(Red, i); got != 4 {
			t.Fatalf("Bin(Red, %d): got %v, want 4", i, got)
		}
	}
	if got := h.Bin(Alpha, 128); got != 256*4 {
		t.Errorf("Bin(Alpha, 128): got %v, want %v", got, 256*4)
	}
	// Value is max(R, G, B) so nothing falls below the midpoint.
	if got := h.Count(Value, 0, 126); got != 0 {
		t.Errorf("Count(Value, 0, 126): got %v, want 0", got)
	}
}

func TestCalculateGray(t *testing.T) {
	buf := image.NewBuffer(10, 10)
	buf.Fill(pixop.Sample{0.2, 0.2, 0.2, 1})
	h := Calculate(buf, true, false, nil)

	if h.NChannels() != 1 {
		t.Fatalf("NChannels: got %d, want 1", h.NChannels())
	}
	if got := h.Bin(Value, BinOf(0.2)); got != 100 {
		t.Errorf("Bin(Value): got %v, want 100", got)
	}
	if got := h.Count(Red, 0, 255); got != 0 {
		t.Errorf("Count(Red) of gray histogram: got %v, want 0", got)
	}
}

func TestCalculateParallel(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	buf := gradient(97, 61)
	seq := Calculate(buf, false, true, nil)
	par := Calculate(buf, false, true, pool)

	if diff := cmp.Diff(seq.Snapshot(), par.Snapshot(), cmp.AllowUnexported(Snapshot{})); diff != "" {
		t.Errorf("parallel histogram differs (-seq +par):\n%s", diff)
	}
}

func TestCountRange(t *testing.T) {
	h := New(true, false)
	for i := range NumBins {
		for range i {
			h.Add(pixop.Sample{float32(i) / 255, 0, 0, 1})
		}
	}
	if got := h.Count(Value, 10, 12); got != 33 {
		t.Errorf("Count(10, 12): got %v, want 33", got)
	}
	if got := h.Count(Value, -10, 1); got != 1 {
		t.Errorf("Count(-10, 1): got %v, want 1", got)
	}
	if got := h.Count(Value, 12, 10); got != 0 {
		t.Errorf("Count(12, 10): got %v, want 0", got)
	}
	if got := h.Count(Channel(42), 0, 255); got != 0 {
		t.Errorf("Count(bad channel): got %v, want 0", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	h := New(false, false)
	h.Add(pixop.Sample{1, 0, 0, 1})
	snap := h.Snapshot()

	h.Add(pixop.Sample{1, 0, 0, 1})
	if got := snap.Bin(Red, 255); got != 1 {
		t.Errorf("snapshot changed with its source: got %v, want 1", got)
	}
	if snap.NChannels() != 4 {
		t.Errorf("NChannels: got %d, want 4", snap.NChannels())
	}
}

type fakeSource struct{}

func (fakeSource) NChannels() int { return 2 }

func (fakeSource) Count(ch Channel, lo, hi int) float64 { return 0 }

func (fakeSource) Bin(ch Channel, bin int) float64 {
	if ch == Value {
		return float64(bin)
	}
	return 0
}

func TestTake(t *testing.T) {
	snap := Take(fakeSource{})
	if snap.NChannels() != 2 {
		t.Errorf("NChannels: got %d, want 2", snap.NChannels())
	}
	if got := snap.Count(Value, 0, 3); got != 6 {
		t.Errorf("Count(Value, 0, 3): got %v, want 6", got)
	}
}

func TestStats(t *testing.T) {
	h := New(true, false)
	for _, v := range []int{10, 20, 20, 30} {
		h.Add(pixop.Sample{float32(v) / 255, 0, 0, 1})
	}

	if got := Mean(h, Value, 0, 255); got != 20 {
		t.Errorf("Mean: got %v, want 20", got)
	}
	if got := Median(h, Value, 0, 255); got != 20 {
		t.Errorf("Median: got %v, want 20", got)
	}
	want := math.Sqrt(50)
	if got := StdDev(h, Value, 0, 255); math.Abs(got-want) > 1e-9 {
		t.Errorf("StdDev: got %v, want %v", got, want)
	}
	if got := Mean(h, Value, 100, 200); got != 0 {
		t.Errorf("Mean of empty range: got %v, want 0", got)
	}
	if got := Median(h, Value, 100, 200); got != -1 {
		t.Errorf("Median of empty range: got %v, want -1", got)
	}
}
