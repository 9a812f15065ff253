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

// Package image provides the interleaved RGBA float buffer the colour
// transforms read and write.
//
// A Buffer stores four float32 components per pixel. Rows are padded to a
// multiple of the tile alignment so that region copies never straddle rows.
//
// # Regions
//
// Execution engines partition a buffer into rectangles and hand each one to
// a kernel as a contiguous run of samples:
//
//	for _, roi := range image.Tiles(buf.Bounds(), 64, 64) {
//	    in := make([]float32, roi.Area()*pixop.NumChannels)
//	    buf.ReadRegion(roi, in)
//	    // ...
//	}
//
// # Conversion
//
// FromImage and Buffer.NRGBA64 convert to and from the standard library
// image model. Values are not colour managed.
package image
