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

// Package colorize replaces the colour of every pixel with a fixed hue and
// saturation, keeping the pixel's luminance as HSL lightness.
package colorize

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"

	"github.com/dkyang/gimp/pixop"
)

// Defaults in user-facing units.
const (
	DefaultHue        = 180.0 // degrees
	DefaultSaturation = 50.0  // percent
	DefaultLightness  = 0.0   // percent
)

// Config holds normalised colorize parameters:
//
//	hue        in [0, 1], a fraction of the colour wheel
//	saturation in [0, 1]
//	lightness  in [-1, 1], an offset added to the pixel luminance
//
// A Config is immutable; the zero value is red at zero saturation.
type Config struct {
	hue        float64
	saturation float64
	lightness  float64
}

// NewConfig normalises user-facing values: hue in degrees [0, 360],
// saturation in percent [0, 100] and lightness in percent [-100, 100].
// Out-of-range values are clamped. A NaN or infinite value is replaced by
// its default.
func NewConfig(hueDeg, satPct, lightPct float64) Config {
	return Config{
		hue:        normalize(hueDeg, DefaultHue, 360, 0, 1),
		saturation: normalize(satPct, DefaultSaturation, 100, 0, 1),
		lightness:  normalize(lightPct, DefaultLightness, 100, -1, 1),
	}
}

// DefaultConfig returns the configuration for the default values.
func DefaultConfig() Config {
	return NewConfig(DefaultHue, DefaultSaturation, DefaultLightness)
}

func normalize(v, def, scale, lower, upper float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = def
	}
	return lo.Clamp(v/scale, lower, upper)
}

// Hue returns the normalised hue in [0, 1].
func (c Config) Hue() float64 { return c.hue }

// Saturation returns the normalised saturation in [0, 1].
func (c Config) Saturation() float64 { return c.saturation }

// Lightness returns the normalised lightness offset in [-1, 1].
func (c Config) Lightness() float64 { return c.lightness }

// Apply colorizes one sample. The HSL lightness is the Rec. 709 luminance
// of the sample plus the lightness offset, clamped to [0, 1]. Alpha is
// passed through.
func (c Config) Apply(s pixop.Sample) pixop.Sample {
	l := lo.Clamp(float64(s.Luminance())+c.lightness, 0, 1)
	rgb := colorful.Hsl(c.hue*360, c.saturation, l)
	return pixop.Sample{float32(rgb.R), float32(rgb.G), float32(rgb.B), s[pixop.Alpha]}
}

// Process colorizes the interleaved RGBA run in into out. out must hold at
// least as many samples as in; in and out may alias.
func Process(c *Config, in, out []float32) {
	for i := range len(in) / pixop.NumChannels {
		pixop.StoreSample(c.Apply(pixop.LoadSample(in, i)), out, i)
	}
}

// ProcessRow is Process with the legacy pixel processor signature.
func ProcessRow(c *Config, src, dst []float32) {
	Process(c, src, dst)
}
