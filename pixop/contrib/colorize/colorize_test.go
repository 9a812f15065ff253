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

package colorize

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/graph"
	"github.com/dkyang/gimp/pixop/contrib/image"
)

const tolerance = 1e-6

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func sampleAlmostEqual(a, b pixop.Sample, tol float64) bool {
	for c := range a {
		if !almostEqual(float64(a[c]), float64(b[c]), tol) {
			return false
		}
	}
	return true
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name                string
		hue, sat, light     float64
		wantH, wantS, wantL float64
	}{
		{"normalise", 90, 25, -50, 0.25, 0.25, -0.5},
		{"upper_bounds", 360, 100, 100, 1, 1, 1},
		{"lower_bounds", 0, 0, -100, 0, 0, -1},
		{"clamp_high", 720, 150, 300, 1, 1, 1},
		{"clamp_low", -10, -5, -250, 0, 0, -1},
		{"nan", math.NaN(), math.NaN(), math.NaN(), 0.5, 0.5, 0},
		{"inf", math.Inf(1), math.Inf(-1), math.Inf(1), 0.5, 0.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConfig(tc.hue, tc.sat, tc.light)
			if !almostEqual(c.Hue(), tc.wantH, tolerance) {
				t.Errorf("Hue: got %v, want %v", c.Hue(), tc.wantH)
			}
			if !almostEqual(c.Saturation(), tc.wantS, tolerance) {
				t.Errorf("Saturation: got %v, want %v", c.Saturation(), tc.wantS)
			}
			if !almostEqual(c.Lightness(), tc.wantL, tolerance) {
				t.Errorf("Lightness: got %v, want %v", c.Lightness(), tc.wantL)
			}
		})
	}

	if DefaultConfig() != NewConfig(180, 50, 0) {
		t.Errorf("DefaultConfig: got %+v", DefaultConfig())
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name            string
		hue, sat, light float64
		in              pixop.Sample
		want            pixop.Sample
	}{
		// HSL(120°, 0.5, 0.5): t1 = 0.75, t2 = 0.25.
		{"green_mid_gray", 120, 50, 0, pixop.Sample{0.5, 0.5, 0.5, 1}, pixop.Sample{0.25, 0.75, 0.25, 1}},
		{"red_full", 0, 100, 0, pixop.Sample{0.5, 0.5, 0.5, 0.3}, pixop.Sample{1, 0, 0, 0.3}},
		{"hue_wraps", 360, 100, 0, pixop.Sample{0.5, 0.5, 0.5, 0.3}, pixop.Sample{1, 0, 0, 0.3}},
		{"blue_dark", 240, 100, 0, pixop.Sample{0.25, 0.25, 0.25, 1}, pixop.Sample{0, 0, 0.5, 1}},
		{"no_saturation", 300, 0, 0, pixop.Sample{1, 0, 0, 1}, pixop.Sample{pixop.LumaRed, pixop.LumaRed, pixop.LumaRed, 1}},
		{"lighten_offset", 120, 50, 25, pixop.Sample{0.25, 0.25, 0.25, 1}, pixop.Sample{0.25, 0.75, 0.25, 1}},
		{"lighten_to_white", 60, 80, 100, pixop.Sample{0.1, 0.6, 0.2, 0}, pixop.Sample{1, 1, 1, 0}},
		{"darken_to_black", 60, 80, -100, pixop.Sample{0.9, 0.6, 0.8, 1}, pixop.Sample{0, 0, 0, 1}},
		{"clamped_offset", 0, 0, 50, pixop.Sample{0.75, 0.75, 0.75, 1}, pixop.Sample{1, 1, 1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewConfig(tc.hue, tc.sat, tc.light).Apply(tc.in)
			if !sampleAlmostEqual(got, tc.want, 1e-5) {
				t.Errorf("Apply(%v): got %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestApplyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for range 200 {
		c := NewConfig(rng.Float64()*360, rng.Float64()*100, rng.Float64()*200-100)
		s := pixop.Sample{rng.Float32(), rng.Float32(), rng.Float32(), rng.Float32()}
		out := c.Apply(s)

		if out[pixop.Alpha] != s[pixop.Alpha] {
			t.Fatalf("alpha changed: %v -> %v", s, out)
		}
		for ch := pixop.Red; ch <= pixop.Blue; ch++ {
			if out[ch] < -tolerance || out[ch] > 1+tolerance {
				t.Fatalf("%v out of range: %v -> %v", ch, s, out)
			}
		}

		// The output lightness is the clamped, offset luminance.
		hi := max(out[pixop.Red], out[pixop.Green], out[pixop.Blue])
		lo := min(out[pixop.Red], out[pixop.Green], out[pixop.Blue])
		want := math.Min(math.Max(float64(s.Luminance())+c.Lightness(), 0), 1)
		if !almostEqual(float64(hi+lo)/2, want, 1e-5) {
			t.Fatalf("lightness of %v: got %v, want %v", out, (hi+lo)/2, want)
		}
	}
}

func TestProcess(t *testing.T) {
	c := NewConfig(200, 60, 10)
	rng := rand.New(rand.NewSource(9))

	in := make([]float32, 21*pixop.NumChannels)
	for i := range in {
		in[i] = rng.Float32()
	}
	out := make([]float32, len(in))
	Process(&c, in, out)

	for i := range 21 {
		if got, want := pixop.LoadSample(out, i), c.Apply(pixop.LoadSample(in, i)); got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}

	ProcessRow(&c, in, in)
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("in place [%d]: got %v, want %v", i, in[i], out[i])
		}
	}
}

func TestOperation(t *testing.T) {
	cls, ok := graph.Lookup(OperationName)
	if !ok || cls.Categories != "color" {
		t.Fatalf("Lookup(%q) = %+v, %v", OperationName, cls, ok)
	}
	for _, bad := range []any{nil, 42, (*Config)(nil)} {
		if _, err := graph.NewNode(OperationName, bad); err == nil {
			t.Errorf("NewNode(%v) should fail", bad)
		}
	}

	c := NewConfig(30, 70, -20)
	src := image.NewBuffer(33, 17)
	for y := range 17 {
		for x := range 33 {
			src.Set(x, y, pixop.Sample{float32(x) / 33, float32(y) / 17, 0.5, 0.5})
		}
	}

	for _, props := range []any{c, &c} {
		node, err := graph.NewNode(OperationName, props)
		if err != nil {
			t.Fatalf("NewNode(%T): %v", props, err)
		}
		dst := image.NewBuffer(33, 17)
		if err := (&graph.Engine{TileWidth: 8, TileHeight: 8}).Apply(context.Background(), node, src, dst, nil); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		for y := range 17 {
			for x := range 33 {
				if got, want := dst.At(x, y), c.Apply(src.At(x, y)); got != want {
					t.Fatalf("at (%d,%d): got %v, want %v", x, y, got, want)
				}
			}
		}
		node.Close()
	}
}

func BenchmarkProcess(b *testing.B) {
	c := DefaultConfig()
	in := make([]float32, 4096*pixop.NumChannels)
	for i := range in {
		in[i] = float32(i%256) / 255
	}
	out := make([]float32, len(in))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Process(&c, in, out)
	}
}
