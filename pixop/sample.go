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

package pixop

// Channel indexes a component of a Sample.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

// NumChannels is the number of float32 components per pixel in every
// interleaved buffer handled by this module.
const NumChannels = 4

// String returns the lower-case channel name.
func (c Channel) String() string {
	switch c {
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

// Sample is one RGBA pixel with components in [0, 1].
type Sample [NumChannels]float32

// Rec. 709 luma weights.
const (
	LumaRed   = 0.2126
	LumaGreen = 0.7152
	LumaBlue  = 0.0722
)

// Luminance returns the Rec. 709 weighted luminance of an RGB triple.
func Luminance(r, g, b float32) float32 {
	return r*LumaRed + g*LumaGreen + b*LumaBlue
}

// Luminance returns the luminance of s, ignoring alpha.
func (s Sample) Luminance() float32 {
	return Luminance(s[Red], s[Green], s[Blue])
}

// LoadSample reads the pixel at sample index i of an interleaved run.
func LoadSample(buf []float32, i int) Sample {
	o := i * NumChannels
	return Sample{buf[o], buf[o+1], buf[o+2], buf[o+3]}
}

// StoreSample writes s at sample index i of an interleaved run.
func StoreSample(s Sample, buf []float32, i int) {
	o := i * NumChannels
	buf[o] = s[Red]
	buf[o+1] = s[Green]
	buf[o+2] = s[Blue]
	buf[o+3] = s[Alpha]
}
