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

// Package pixop holds the types shared by the per-pixel colour transforms:
// the RGBA sample layout, the error taxonomy, progress reporting and the
// runtime choice between the node-graph and the legacy pipelines.
//
// The transforms themselves live in the contrib packages:
//
//	contrib/colorize   luminance to a fixed hue and saturation
//	contrib/equalize   histogram equalization through a CDF lookup table
//	contrib/filter     dispatcher that drives either pipeline
//
// # Pipelines
//
// Every transform is a pure per-sample kernel with two thin adapters. The
// node-graph path (contrib/graph) tiles the drawable into regions and runs
// them on a worker pool. The legacy path (contrib/legacy) walks the buffer
// row by row. Both call the same kernel, so the output does not depend on
// the path taken.
//
// The default pipeline is chosen once at startup: the node graph, unless
// PIXOP_LEGACY is set. CPU features do not take part in the choice;
// CPUName only reports the detected instruction set for logs.
package pixop
