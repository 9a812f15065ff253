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

package colorize

import (
	"fmt"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/graph"
	"github.com/dkyang/gimp/pixop/contrib/image"
)

// OperationName is the graph operation registered by this package.
// Its node property is a Config.
const OperationName = "colorize"

func init() {
	graph.Register(graph.Class{
		Name:        OperationName,
		Categories:  "color",
		Description: "Colorize operation",
		New:         newOperation,
	})
}

type operation struct {
	config Config
}

func newOperation(props any) (graph.PointFilter, error) {
	switch c := props.(type) {
	case Config:
		return &operation{config: c}, nil
	case *Config:
		if c != nil {
			return &operation{config: *c}, nil
		}
	}
	return nil, fmt.Errorf("want colorize.Config, got %T", props)
}

func (o *operation) Process(in, out []float32, samples int, roi image.Rect) error {
	n := samples * pixop.NumChannels
	Process(&o.config, in[:n], out[:n])
	return nil
}
