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

// Package legacy runs pixel processors directly over a buffer, row by row,
// without the node-graph indirection.
package legacy

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/image"
)

// DefaultBandHeight is the number of rows handed to one worker at a time.
const DefaultBandHeight = 64

// PixelProcessorFunc processes one row. src and dst hold the same number of
// interleaved RGBA samples and may alias. data is the per-call context the
// processor was started with; it must not be modified.
type PixelProcessorFunc[T any] func(data *T, src, dst []float32)

// Options tunes Process. The zero value is usable.
type Options struct {
	// Name identifies the operation in errors and logs.
	Name string

	// BandHeight is the number of rows per unit of work.
	// Zero selects DefaultBandHeight.
	BandHeight int

	// Workers bounds the number of bands processed concurrently.
	// Zero selects GOMAXPROCS; one processes the buffer sequentially.
	Workers int

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Process calls fn for every row of src, writing to the matching row of dst.
// src and dst must have the same size and may be the same buffer.
//
// Rows are grouped in bands. A started band always runs to completion; once
// ctx is done no further band starts and Process returns ctx.Err(). A panic
// inside fn is returned as *pixop.EngineError.
func Process[T any](ctx context.Context, src, dst *image.Buffer, progress pixop.Progress, fn PixelProcessorFunc[T], data *T, opts Options) error {
	fail := func(err error) error {
		return &pixop.EngineError{Pipeline: pixop.PipelineLegacy, Operation: opts.Name, Err: err}
	}
	if fn == nil || data == nil {
		return fail(fmt.Errorf("missing processor"))
	}
	if !image.SameSize(src, dst) {
		return fail(fmt.Errorf("size mismatch: %dx%d vs %dx%d",
			src.Width(), src.Height(), dst.Width(), dst.Height()))
	}
	if progress == nil {
		progress = pixop.NopProgress{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	band := opts.BandHeight
	if band <= 0 {
		band = DefaultBandHeight
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	height := src.Height()
	logger.Debug("legacy: process",
		"operation", opts.Name,
		"width", src.Width(),
		"height", height,
		"band", band,
		"workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var rowsDone atomic.Int64
	for y0 := 0; y0 < height; y0 += band {
		if gctx.Err() != nil {
			break
		}
		y1 := min(y0+band, height)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rows %d-%d: %v", y0, y1, r)
				}
			}()
			if gctx.Err() != nil {
				return nil
			}
			for y := y0; y < y1; y++ {
				fn(data, src.RowSlice(y), dst.RowSlice(y))
			}
			progress.SetProgress(float64(rowsDone.Add(int64(y1-y0))) / float64(height))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil && rowsDone.Load() < int64(height) {
		logger.Debug("legacy: canceled",
			"operation", opts.Name,
			"rows", rowsDone.Load(),
			"height", height)
		return err
	}
	return nil
}
