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

import "math"

// Mean returns the mean bin index of ch over [lo, hi], or 0 when the range
// is empty.
func Mean(src Source, ch Channel, lo, hi int) float64 {
	lo, hi = max(lo, 0), min(hi, NumBins-1)

	var sum, n float64
	for i := lo; i <= hi; i++ {
		v := src.Bin(ch, i)
		sum += float64(i) * v
		n += v
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

// Median returns the first bin of ch in [lo, hi] at which the cumulative
// count reaches half the range total, or -1 when the range is empty.
func Median(src Source, ch Channel, lo, hi int) int {
	lo, hi = max(lo, 0), min(hi, NumBins-1)

	total := src.Count(ch, lo, hi)
	if total == 0 {
		return -1
	}
	var sum float64
	for i := lo; i <= hi; i++ {
		sum += src.Bin(ch, i)
		if sum*2 >= total {
			return i
		}
	}
	return hi
}

// StdDev returns the standard deviation of the bin index of ch over
// [lo, hi], or 0 when the range is empty.
func StdDev(src Source, ch Channel, lo, hi int) float64 {
	lo, hi = max(lo, 0), min(hi, NumBins-1)

	n := src.Count(ch, lo, hi)
	if n == 0 {
		return 0
	}
	mean := Mean(src, ch, lo, hi)

	var dev float64
	for i := lo; i <= hi; i++ {
		d := float64(i) - mean
		dev += src.Bin(ch, i) * d * d
	}
	return math.Sqrt(dev / n)
}
