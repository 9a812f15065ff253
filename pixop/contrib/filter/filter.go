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

// Package filter applies the colour transforms to drawables.
//
// A Dispatcher validates the drawable, builds the transform configuration
// (a colorize Config or an equalize Table), and runs the shared kernel
// through either the node-graph engine or the legacy row processor. The
// choice is a pure routing decision: both pipelines produce the same pixels.
//
//	d := filter.New(filter.WithPipeline(pixop.PipelineGraph))
//	defer d.Close()
//
//	if err := d.Colorize(ctx, layer, progress, 120, 50, 0); err != nil {
//	    return err
//	}
//
// The drawable is only modified once the whole buffer has been processed.
// On any error, including cancellation, it is left untouched.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/colorize"
	"github.com/dkyang/gimp/pixop/contrib/drawable"
	"github.com/dkyang/gimp/pixop/contrib/equalize"
	"github.com/dkyang/gimp/pixop/contrib/graph"
	"github.com/dkyang/gimp/pixop/contrib/histogram"
	"github.com/dkyang/gimp/pixop/contrib/image"
	"github.com/dkyang/gimp/pixop/contrib/legacy"
	"github.com/dkyang/gimp/pixop/contrib/workerpool"
)

// State is a step of a transform invocation.
type State int

const (
	Validating State = iota
	ConfiguringTransform
	Dispatching
	RunningGraph
	RunningLegacy
	Completed
	Failed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case ConfiguringTransform:
		return "configuring"
	case Dispatching:
		return "dispatching"
	case RunningGraph:
		return "running(graph)"
	case RunningLegacy:
		return "running(legacy)"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dispatcher runs colour transforms on drawables. It is safe for concurrent
// use; invocations share nothing but the worker pool.
type Dispatcher struct {
	pipeline   pixop.Pipeline
	pool       *workerpool.Pool
	ownPool    bool
	workers    int
	tileWidth  int
	tileHeight int
	logger     *slog.Logger
	lang       language.Tag
	observer   func(State)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPipeline selects the pipeline. The default is pixop.DefaultPipeline().
func WithPipeline(p pixop.Pipeline) Option {
	return func(d *Dispatcher) { d.pipeline = p }
}

// WithPool shares an existing worker pool. The Dispatcher does not close it.
func WithPool(pool *workerpool.Pool) Option {
	return func(d *Dispatcher) { d.pool = pool }
}

// WithWorkers sets the concurrency of both pipelines.
// Zero or less selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) { d.workers = n }
}

// WithTileSize sets the region size of the node-graph pipeline.
func WithTileSize(width, height int) Option {
	return func(d *Dispatcher) { d.tileWidth, d.tileHeight = width, height }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithLanguage sets the language of undo labels. The default is English.
func WithLanguage(tag language.Tag) Option {
	return func(d *Dispatcher) { d.lang = tag }
}

// WithObserver registers a function called on every state change. It runs
// on the calling goroutine and must not block.
func WithObserver(fn func(State)) Option {
	return func(d *Dispatcher) { d.observer = fn }
}

// New returns a Dispatcher. Call Close to release its worker pool.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		pipeline: pixop.DefaultPipeline(),
		lang:     language.English,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.pool == nil {
		d.pool = workerpool.New(d.workers)
		d.ownPool = true
	}
	if d.workers <= 0 {
		d.workers = d.pool.NumWorkers()
	}
	return d
}

// Close releases the worker pool if the Dispatcher created it.
func (d *Dispatcher) Close() {
	if d.ownPool {
		d.pool.Close()
	}
}

// Pipeline returns the pipeline this Dispatcher routes to.
func (d *Dispatcher) Pipeline() pixop.Pipeline {
	return d.pipeline
}

// Colorize replaces the colour of every pixel of dr with the given hue
// (degrees, [0, 360]) and saturation (percent, [0, 100]), using the pixel
// luminance offset by lightness (percent, [-100, 100]) as HSL lightness.
// Out-of-range parameters are clamped.
//
// It fails with pixop.ErrPrecondition for indexed or unattached drawables.
func (d *Dispatcher) Colorize(ctx context.Context, dr drawable.Drawable, progress pixop.Progress, hue, saturation, lightness float64) (err error) {
	inv := d.begin(colorize.OperationName)
	defer func() { inv.finish(err) }()

	if err := validate(dr); err != nil {
		return err
	}

	inv.enter(ConfiguringTransform)
	config := colorize.NewConfig(hue, saturation, lightness)
	inv.logger.Debug("filter: config",
		"hue", config.Hue(),
		"saturation", config.Saturation(),
		"lightness", config.Lightness())

	return dispatch(ctx, inv, dr, progress, labelColorize, &config, colorize.ProcessRow)
}

// Equalize remaps every colour channel of dr through the cumulative
// distribution of its histogram. Gray drawables are equalized on their
// intensity channel.
//
// It fails with pixop.ErrPrecondition for indexed or unattached drawables
// and with pixop.ErrEmptyInput for drawables without pixels.
func (d *Dispatcher) Equalize(ctx context.Context, dr drawable.Drawable, progress pixop.Progress) (err error) {
	inv := d.begin(equalize.OperationName)
	defer func() { inv.finish(err) }()

	if err := validate(dr); err != nil {
		return err
	}

	inv.enter(ConfiguringTransform)
	typ := dr.Type()
	hist := histogram.Calculate(dr.Buffer(), typ.IsGray(), typ.HasAlpha(), d.pool)
	table, err := equalize.NewTable(hist.Snapshot())
	if err != nil {
		return err
	}

	return dispatch(ctx, inv, dr, progress, labelEqualize, table, equalize.ProcessRow)
}

// validate rejects drawables the transforms cannot run on. A nil *Layer
// counts as no drawable; other nil implementations must not be passed.
func validate(dr drawable.Drawable) error {
	if l, ok := dr.(*drawable.Layer); ok && l == nil {
		dr = nil
	}
	switch {
	case dr == nil:
		return pixop.Preconditionf("no drawable")
	case dr.Type().IsIndexed():
		return pixop.Preconditionf("drawable %q is indexed", dr.Name())
	case !dr.IsAttached():
		return pixop.Preconditionf("drawable %q is not attached to an image", dr.Name())
	}
	return nil
}

// dispatch runs the kernel described by data over dr on the selected
// pipeline and installs the result. data is both the graph node property
// and the legacy processor context.
func dispatch[T any](ctx context.Context, inv *invocation, dr drawable.Drawable, progress pixop.Progress, label string, data *T, row legacy.PixelProcessorFunc[T]) error {
	d := inv.d
	inv.enter(Dispatching)

	src := dr.Buffer()
	dst := image.NewBuffer(src.Width(), src.Height())

	switch d.pipeline {
	case pixop.PipelineGraph:
		node, err := graph.NewNode(inv.op, data)
		if err != nil {
			return &pixop.EngineError{Pipeline: pixop.PipelineGraph, Operation: inv.op, Err: err}
		}
		defer node.Close()

		inv.enter(RunningGraph)
		engine := &graph.Engine{
			Pool:       d.pool,
			TileWidth:  d.tileWidth,
			TileHeight: d.tileHeight,
			Logger:     inv.logger,
		}
		if err := engine.Apply(ctx, node, src, dst, progress); err != nil {
			return err
		}

	case pixop.PipelineLegacy:
		inv.enter(RunningLegacy)
		opts := legacy.Options{Name: inv.op, Workers: d.workers, Logger: inv.logger}
		if err := legacy.Process(ctx, src, dst, progress, row, data, opts); err != nil {
			return err
		}

	default:
		return &pixop.EngineError{Pipeline: d.pipeline, Operation: inv.op, Err: fmt.Errorf("unsupported pipeline")}
	}

	if err := dr.Replace(dst, undoLabel(d.lang, label)); err != nil {
		return fmt.Errorf("filter: %s: %w", inv.op, err)
	}
	return nil
}

// invocation tracks the state of one transform call.
type invocation struct {
	d      *Dispatcher
	op     string
	logger *slog.Logger
	start  time.Time
}

func (d *Dispatcher) begin(op string) *invocation {
	inv := &invocation{
		d:      d,
		op:     op,
		logger: d.logger.With("operation", op, "pipeline", d.pipeline.String()),
		start:  time.Now(),
	}
	inv.enter(Validating)
	return inv
}

func (inv *invocation) enter(s State) {
	inv.logger.Debug("filter: state", "state", s.String())
	if inv.d.observer != nil {
		inv.d.observer(s)
	}
}

func (inv *invocation) finish(err error) {
	if err != nil {
		inv.logger.Debug("filter: failed", "error", err, "elapsed", time.Since(inv.start))
		inv.enter(Failed)
		return
	}
	inv.logger.Debug("filter: done", "elapsed", time.Since(inv.start))
	inv.enter(Completed)
}
