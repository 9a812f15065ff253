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

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/drawable"
	"github.com/dkyang/gimp/pixop/contrib/filter"
	"github.com/dkyang/gimp/pixop/contrib/workerpool"
)

type benchOptions struct {
	width, height int
	workers       int
	repeat        int
	pipeline      pipelineValue
	verbose       bool
	logger        *slog.Logger
}

// pipelineValue is a pixop.Pipeline flag that also accepts "both".
type pipelineValue struct {
	both bool
	p    pixop.Pipeline
}

var _ pflag.Value = (*pipelineValue)(nil)

func (v *pipelineValue) String() string {
	if v.both {
		return "both"
	}
	return v.p.String()
}

func (v *pipelineValue) Set(s string) error {
	if s == "both" {
		v.both = true
		return nil
	}
	p, err := pixop.ParsePipeline(s)
	if err != nil {
		return err
	}
	v.both, v.p = false, p
	return nil
}

func (v *pipelineValue) Type() string { return "pipeline" }

func (v *pipelineValue) pipelines() []pixop.Pipeline {
	if v.both {
		return []pixop.Pipeline{pixop.PipelineGraph, pixop.PipelineLegacy}
	}
	return []pixop.Pipeline{v.p}
}

type transformFunc func(ctx context.Context, d *filter.Dispatcher, l *drawable.Layer) error

type benchResult struct {
	pipeline pixop.Pipeline
	best     time.Duration
	checksum float64
	layer    *drawable.Layer
}

// runBench runs fn on a fresh gradient layer for every selected pipeline,
// keeping the fastest of opts.repeat runs.
func runBench(ctx context.Context, opts *benchOptions, out io.Writer, fn transformFunc) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", opts.width, opts.height)
	}
	logger := opts.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool := workerpool.New(opts.workers)
	defer pool.Close()

	fmt.Fprintf(out, "CPU: %s, workers: %d, image: %dx%d\n", pixop.CPUName(), pool.NumWorkers(), opts.width, opts.height)

	var results []benchResult
	for _, p := range opts.pipeline.pipelines() {
		d := filter.New(
			filter.WithPipeline(p),
			filter.WithPool(pool),
			filter.WithWorkers(opts.workers),
			filter.WithLogger(logger),
		)
		res := benchResult{pipeline: p}
		for i := range max(opts.repeat, 1) {
			l := gradientLayer(opts.width, opts.height)
			start := time.Now()
			if err := fn(ctx, d, l); err != nil {
				return fmt.Errorf("%s run %d: %w", p, i, err)
			}
			if elapsed := time.Since(start); i == 0 || elapsed < res.best {
				res.best = elapsed
			}
			res.layer = l
		}
		res.checksum = checksum(res.layer)
		results = append(results, res)
		fmt.Fprintf(out, "%-8s %12v  checksum %.6f\n", p, res.best, res.checksum)
	}

	if len(results) == 2 {
		if x, y, ok := firstDifference(results[0].layer, results[1].layer); !ok {
			return fmt.Errorf("pipelines disagree at pixel (%d,%d)", x, y)
		}
		fmt.Fprintln(out, "pipelines agree")
	}
	return nil
}

// gradientLayer returns an attached RGBA layer whose channels vary
// independently across the image.
func gradientLayer(width, height int) *drawable.Layer {
	l := drawable.NewLayer("gradient", drawable.RGBA, width, height)
	buf := l.Buffer()
	for y := range height {
		fy := float32(y) / float32(max(height-1, 1))
		for x := range width {
			fx := float32(x) / float32(max(width-1, 1))
			buf.Set(x, y, pixop.Sample{fx, fy, fx * fy, 1 - fx/2})
		}
	}
	l.Attach()
	return l
}

func checksum(l *drawable.Layer) float64 {
	buf := l.Buffer()
	var sum float64
	for y := range buf.Height() {
		sum += float64(lo.Sum(buf.Row(y)))
	}
	return sum
}

// firstDifference reports the first pixel where a and b differ.
func firstDifference(a, b *drawable.Layer) (x, y int, same bool) {
	ba, bb := a.Buffer(), b.Buffer()
	for y := range ba.Height() {
		for x := range ba.Width() {
			if ba.At(x, y) != bb.At(x, y) {
				return x, y, false
			}
		}
	}
	return 0, 0, true
}
