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

// Package graph is a minimal node-graph execution engine for point filters.
//
// Operations register a Class under a unique name, usually from an init
// function. A Node instantiates a class with its typed properties, and an
// Engine runs the node over a buffer, one kernel call per region of
// interest:
//
//	node, err := graph.NewNode("colorize", cfg)
//	if err != nil {
//	    return err
//	}
//	defer node.Close()
//
//	engine := &graph.Engine{Pool: pool}
//	err = engine.Apply(ctx, node, src, dst, progress)
package graph

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/dkyang/gimp/pixop/contrib/image"
)

// PointFilter is the per-region kernel of an operation.
//
// Process reads samples RGBA pixels from in and writes the same number to
// out; both runs are contiguous and private to the call. roi is the region
// the runs were read from. Implementations must only read shared immutable
// state, since the engine calls Process concurrently.
type PointFilter interface {
	Process(in, out []float32, samples int, roi image.Rect) error
}

// Class describes a registered operation.
type Class struct {
	Name        string
	Categories  string
	Description string

	// New builds a filter from the node properties. props is the value
	// passed to NewNode; New rejects values of the wrong type.
	New func(props any) (PointFilter, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Class)
)

// Register makes an operation available by name.
// It panics if the name is empty, New is nil, or the name is taken.
func Register(c Class) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c.Name == "" || c.New == nil {
		panic("graph: Register of incomplete operation class")
	}
	if _, dup := registry[c.Name]; dup {
		panic("graph: Register called twice for operation " + c.Name)
	}
	registry[c.Name] = c
}

// Lookup returns the class registered under name.
func Lookup(name string) (Class, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := registry[name]
	return c, ok
}

// Operations returns the sorted names of all registered operations.
func Operations() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Node is an instantiated operation.
type Node struct {
	class  Class
	filter PointFilter
}

// NewNode instantiates the operation registered under name with props.
func NewNode(operation string, props any) (*Node, error) {
	c, ok := Lookup(operation)
	if !ok {
		return nil, fmt.Errorf("graph: unknown operation %q", operation)
	}
	f, err := c.New(props)
	if err != nil {
		return nil, fmt.Errorf("graph: %s: %w", operation, err)
	}
	return &Node{class: c, filter: f}, nil
}

// Operation returns the name of the node's operation.
func (n *Node) Operation() string {
	return n.class.Name
}

// Class returns the node's operation class.
func (n *Node) Class() Class {
	return n.class
}

// Close releases the filter and, if it implements Close, the state it
// holds. The node cannot be applied afterwards. Close is idempotent.
func (n *Node) Close() error {
	f := n.filter
	n.filter = nil
	if c, ok := f.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Closed reports whether Close has been called.
func (n *Node) Closed() bool {
	return n.filter == nil
}
