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

// Package drawable defines the pixel-bearing surfaces the transforms
// operate on, and an in-memory Layer implementation with undo.
package drawable

import (
	"errors"
	"fmt"
	stdimage "image"
	"sync"

	"github.com/dkyang/gimp/pixop/contrib/image"
)

// Type is the pixel format of a drawable.
type Type int

const (
	RGB Type = iota
	RGBA
	Gray
	GrayA
	Indexed
	IndexedA
)

// String returns the name of the type.
func (t Type) String() string {
	switch t {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case Gray:
		return "Gray"
	case GrayA:
		return "GrayA"
	case Indexed:
		return "Indexed"
	case IndexedA:
		return "IndexedA"
	default:
		return "unknown"
	}
}

// IsIndexed reports whether pixels are palette indices.
func (t Type) IsIndexed() bool {
	return t == Indexed || t == IndexedA
}

// IsGray reports whether the drawable has a single intensity channel.
func (t Type) IsGray() bool {
	return t == Gray || t == GrayA
}

// HasAlpha reports whether the drawable carries an alpha channel.
func (t Type) HasAlpha() bool {
	return t == RGBA || t == GrayA || t == IndexedA
}

// Drawable is an addressable pixel surface owned by an image.
type Drawable interface {
	Name() string
	Type() Type

	// IsAttached reports whether the drawable belongs to a live image.
	IsAttached() bool

	// Buffer returns the current pixels. Callers must treat it as
	// read-only; changes go through Replace.
	Buffer() *image.Buffer

	// Replace swaps in new pixels of the same size, recording the old
	// ones as an undo step described by undoLabel.
	Replace(buf *image.Buffer, undoLabel string) error
}

var errNothingToUndo = errors.New("drawable: nothing to undo")

type undoStep struct {
	label string
	buf   *image.Buffer
}

// Layer is an in-memory Drawable. It is safe for concurrent use.
type Layer struct {
	mu       sync.RWMutex
	name     string
	typ      Type
	attached bool
	buf      *image.Buffer
	undo     []undoStep
}

// NewLayer returns a detached, transparent black layer.
func NewLayer(name string, typ Type, width, height int) *Layer {
	return &Layer{name: name, typ: typ, buf: image.NewBuffer(width, height)}
}

// FromImage returns a detached layer holding the pixels of img. The type is
// Gray for gray images, Indexed for paletted ones and RGB or RGBA otherwise.
func FromImage(name string, img stdimage.Image) *Layer {
	typ := RGBA
	switch img.(type) {
	case *stdimage.Gray, *stdimage.Gray16:
		typ = Gray
	case *stdimage.Paletted:
		typ = Indexed
	default:
		if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
			typ = RGB
		}
	}
	return &Layer{name: name, typ: typ, buf: image.FromImage(img)}
}

// Name implements Drawable.
func (l *Layer) Name() string {
	return l.name
}

// Type implements Drawable.
func (l *Layer) Type() Type {
	return l.typ
}

// Attach marks the layer as part of a live image.
func (l *Layer) Attach() {
	l.mu.Lock()
	l.attached = true
	l.mu.Unlock()
}

// Detach removes the layer from its image.
func (l *Layer) Detach() {
	l.mu.Lock()
	l.attached = false
	l.mu.Unlock()
}

// IsAttached implements Drawable.
func (l *Layer) IsAttached() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.attached
}

// Buffer implements Drawable.
func (l *Layer) Buffer() *image.Buffer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.buf
}

// Replace implements Drawable.
func (l *Layer) Replace(buf *image.Buffer, undoLabel string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !image.SameSize(buf, l.buf) {
		return fmt.Errorf("drawable: %s: replacement is %dx%d, want %dx%d",
			l.name, buf.Width(), buf.Height(), l.buf.Width(), l.buf.Height())
	}
	l.undo = append(l.undo, undoStep{label: undoLabel, buf: l.buf})
	l.buf = buf
	return nil
}

// Undo restores the pixels before the last Replace and returns its label.
func (l *Layer) Undo() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undo) == 0 {
		return "", errNothingToUndo
	}
	step := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.buf = step.buf
	return step.label, nil
}

// UndoLabels returns the labels of the undo stack, oldest first.
func (l *Layer) UndoLabels() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	labels := make([]string, len(l.undo))
	for i, s := range l.undo {
		labels[i] = s.label
	}
	return labels
}
