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

// Command pixopbench times the colour transforms on a synthetic image.
//
// Usage:
//
//	pixopbench colorize --hue 120 --saturation 60 --lightness -10
//	pixopbench equalize --width 4096 --height 4096 --pipeline legacy
//	pixopbench colorize --pipeline both                # also check the pipelines agree
//
// The image is a gradient built in memory; nothing is read or written to
// disk. For every run the elapsed time and a checksum of the result are
// printed.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/colorize"
	"github.com/dkyang/gimp/pixop/contrib/drawable"
	"github.com/dkyang/gimp/pixop/contrib/filter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &benchOptions{
		width:    2048,
		height:   1536,
		repeat:   1,
		pipeline: pipelineValue{p: pixop.DefaultPipeline()},
	}

	root := &cobra.Command{
		Use:          "pixopbench",
		Short:        "Time the colorize and equalize transforms",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&opts.width, "width", opts.width, "Image width in pixels")
	flags.IntVar(&opts.height, "height", opts.height, "Image height in pixels")
	flags.IntVar(&opts.workers, "workers", 0, "Number of workers (0 = GOMAXPROCS)")
	flags.IntVar(&opts.repeat, "repeat", opts.repeat, "Number of runs per pipeline")
	flags.Var(&opts.pipeline, "pipeline", "Pipeline to run: graph, legacy or both")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log transform states to stderr")

	root.AddCommand(newColorizeCmd(opts), newEqualizeCmd(opts))
	return root
}

func newColorizeCmd(opts *benchOptions) *cobra.Command {
	var hue, saturation, lightness float64
	cmd := &cobra.Command{
		Use:   "colorize",
		Short: "Colorize the image with a fixed hue and saturation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), opts, cmd.OutOrStdout(), func(ctx context.Context, d *filter.Dispatcher, l *drawable.Layer) error {
				return d.Colorize(ctx, l, nil, hue, saturation, lightness)
			})
		},
	}
	cmd.Flags().Float64Var(&hue, "hue", colorize.DefaultHue, "Hue in degrees [0, 360]")
	cmd.Flags().Float64Var(&saturation, "saturation", colorize.DefaultSaturation, "Saturation in percent [0, 100]")
	cmd.Flags().Float64Var(&lightness, "lightness", colorize.DefaultLightness, "Lightness in percent [-100, 100]")
	return cmd
}

func newEqualizeCmd(opts *benchOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "equalize",
		Short: "Equalize the image histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), opts, cmd.OutOrStdout(), func(ctx context.Context, d *filter.Dispatcher, l *drawable.Layer) error {
				return d.Equalize(ctx, l, nil)
			})
		},
	}
}
