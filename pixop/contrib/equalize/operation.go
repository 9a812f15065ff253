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

package equalize

import (
	"errors"
	"fmt"

	"github.com/dkyang/gimp/pixop"
	"github.com/dkyang/gimp/pixop/contrib/graph"
	"github.com/dkyang/gimp/pixop/contrib/image"
)

// OperationName is the graph operation registered by this package.
// Its node property is a *Table.
const OperationName = "equalize"

var errReleased = errors.New("equalize: table released")

func init() {
	graph.Register(graph.Class{
		Name:        OperationName,
		Categories:  "color",
		Description: "Equalize operation",
		New:         newOperation,
	})
}

// operation is the point filter behind an equalize node. It owns its table
// until the node is closed.
type operation struct {
	table *Table
}

func newOperation(props any) (graph.PointFilter, error) {
	t, ok := props.(*Table)
	if !ok || t == nil {
		return nil, fmt.Errorf("want *equalize.Table, got %T", props)
	}
	return &operation{table: t}, nil
}

func (o *operation) Process(in, out []float32, samples int, roi image.Rect) error {
	if o.table == nil {
		return errReleased
	}
	n := samples * pixop.NumChannels
	Process(o.table, in[:n], out[:n])
	return nil
}

func (o *operation) Close() error {
	o.table = nil
	return nil
}
