package pixop

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Pipeline selects how a transform is executed.
type Pipeline int

const (
	// PipelineGraph runs the kernel as a point-filter node, one call per
	// region of interest, regions spread over a worker pool.
	PipelineGraph Pipeline = iota

	// PipelineLegacy runs the kernel directly over the pixel buffer,
	// row by row, without node-graph indirection.
	PipelineLegacy
)

// String returns a human-readable name for the pipeline.
func (p Pipeline) String() string {
	switch p {
	case PipelineGraph:
		return "graph"
	case PipelineLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParsePipeline is the inverse of Pipeline.String.
func ParsePipeline(s string) (Pipeline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "graph", "gegl", "node":
		return PipelineGraph, nil
	case "legacy":
		return PipelineLegacy, nil
	}
	return 0, fmt.Errorf("pixop: unknown pipeline %q", s)
}

// defaultPipeline is the pipeline picked for this runtime.
// Set by init() in dispatch_*.go files.
var defaultPipeline Pipeline

// cpuName is the detected CPU feature level, for diagnostics.
// Set by init() in dispatch_*.go files.
var cpuName string

// DefaultPipeline returns the pipeline used when the application context
// does not choose one.
func DefaultPipeline() Pipeline {
	return defaultPipeline
}

// CPUName returns the detected CPU feature level, e.g. "avx2" or "neon".
func CPUName() string {
	return cpuName
}

// LegacyEnv reports whether PIXOP_LEGACY asks for the legacy pipeline.
// A value that is not a boolean counts as set.
func LegacyEnv() bool {
	v, ok := os.LookupEnv("PIXOP_LEGACY")
	if !ok || v == "" {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err != nil || on
}

func selectPipeline() Pipeline {
	if LegacyEnv() {
		return PipelineLegacy
	}
	return PipelineGraph
}
