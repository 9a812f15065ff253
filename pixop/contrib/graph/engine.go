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

package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/image"
	"github.com/dkyang/gimp/pixop/contrib/workerpool"
)

// Default region size.
const (
	DefaultTileWidth  = 128
	DefaultTileHeight = 64
)

var errClosedNode = errors.New("graph: node is closed")

// Engine runs point-filter nodes over buffers.
type Engine struct {
	// Pool runs regions concurrently. A nil Pool processes regions
	// sequentially on the calling goroutine.
	Pool *workerpool.Pool

	// TileWidth and TileHeight bound each region of interest. Zero
	// selects DefaultTileWidth and DefaultTileHeight.
	TileWidth, TileHeight int

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Apply runs node over src and writes the result to dst, which must have the
// same size. src and dst may be the same buffer.
//
// Each region is read into a private input run, processed into a private
// output run, and copied into dst only after the kernel succeeded, so dst
// never holds a half-written region. When ctx is done no further region is
// started; regions already running complete. Apply then returns ctx.Err().
// Kernel failures are returned as *pixop.EngineError.
func (e *Engine) Apply(ctx context.Context, node *Node, src, dst *image.Buffer, progress pixop.Progress) error {
	fail := func(err error) error {
		return &pixop.EngineError{Pipeline: pixop.PipelineGraph, Operation: node.Operation(), Err: err}
	}
	if node.Closed() {
		return fail(errClosedNode)
	}
	if !image.SameSize(src, dst) {
		return fail(fmt.Errorf("size mismatch: %dx%d vs %dx%d",
			src.Width(), src.Height(), dst.Width(), dst.Height()))
	}
	if progress == nil {
		progress = pixop.NopProgress{}
	}

	tw, th := e.TileWidth, e.TileHeight
	if tw <= 0 {
		tw = DefaultTileWidth
	}
	if th <= 0 {
		th = DefaultTileHeight
	}
	tiles := image.Tiles(src.Bounds(), tw, th)
	total := src.Bounds().Area()

	e.logger().Debug("graph: apply",
		"operation", node.Operation(),
		"regions", len(tiles),
		"width", src.Width(),
		"height", src.Height())

	var done atomic.Int64
	region := func(i int) (err error) {
		roi := tiles[i]
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("region %+v: panic: %v", roi, r)
			}
		}()

		n := roi.Area()
		in := make([]float32, n*pixop.NumChannels)
		out := make([]float32, n*pixop.NumChannels)

		src.ReadRegion(roi, in)
		if err := node.filter.Process(in, out, n, roi); err != nil {
			return fmt.Errorf("region %+v: %w", roi, err)
		}
		dst.WriteRegion(roi, out)

		progress.SetProgress(float64(done.Add(int64(n))) / float64(total))
		return nil
	}

	var err error
	if e.Pool != nil {
		err = e.Pool.Run(ctx, len(tiles), region)
	} else {
		for i := range tiles {
			if err = ctx.Err(); err != nil {
				break
			}
			if err = region(i); err != nil {
				break
			}
		}
	}

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		e.logger().Debug("graph: canceled",
			"operation", node.Operation(),
			"processed", done.Load(),
			"total", total)
		return err
	default:
		return fail(err)
	}
}
