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

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition reports a drawable the transforms do not accept:
	// indexed colour, or not attached to a live image. No pixel is written.
	ErrPrecondition = errors.New("pixop: unsupported drawable")

	// ErrEmptyInput reports a histogram with zero samples, for which no
	// cumulative distribution can be normalised.
	ErrEmptyInput = errors.New("pixop: empty histogram")
)

// EngineError is returned when the selected pipeline fails while
// processing. It is passed to the caller unchanged; nothing is retried.
type EngineError struct {
	Pipeline  Pipeline
	Operation string
	Err       error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("pixop: %s pipeline: %s: %v", e.Pipeline, e.Operation, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Preconditionf returns an error wrapping ErrPrecondition with a reason.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}
