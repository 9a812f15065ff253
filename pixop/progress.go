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

// Progress receives the completed fraction of a running transform.
// Implementations must be safe for concurrent use; regions finish on
// arbitrary worker goroutines. Cancellation goes through the context passed
// to the transform, not through Progress.
type Progress interface {
	SetProgress(fraction float64)
}

// NopProgress discards progress updates.
type NopProgress struct{}

func (NopProgress) SetProgress(float64) {}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(fraction float64)

func (f ProgressFunc) SetProgress(fraction float64) { f(fraction) }
