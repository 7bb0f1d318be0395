// Copyright 2024 Google LLC
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

// Package fmtlayout formats memories and nested layouts for a terminal.
package fmtlayout

import (
	"fmt"
	"strings"

	"github.com/gx-org/memlayout/base/nested"
	"github.com/gx-org/memlayout/memory"
)

type (
	// Styler decorates the text of a slot given its kind.
	// The text has already been padded to the width of a cell.
	Styler func(kind memory.Kind, text string) string

	// Option configures the output.
	Option func(*printer)

	printer struct {
		w     *strings.Builder
		style Styler
		width int
	}
)

const (
	indent    = "  "
	cellWidth = 4
)

// Plain returns the text unchanged.
func Plain(_ memory.Kind, text string) string {
	return text
}

// MarkKinds prefixes masked slots with ~ and empty slots with _ so that
// kinds can be told apart without colors.
func MarkKinds(kind memory.Kind, text string) string {
	switch kind {
	case memory.Masked:
		return "~" + text
	case memory.Empty:
		return "_" + text
	}
	return " " + text
}

// WithStyler sets the styler applied to every slot.
func WithStyler(style Styler) Option {
	return func(p *printer) {
		p.style = style
	}
}

// WithCellWidth sets the minimum width of a slot.
func WithCellWidth(width int) Option {
	return func(p *printer) {
		p.width = width
	}
}

func newPrinter(opts []Option) *printer {
	p := &printer{
		w:     &strings.Builder{},
		style: Plain,
		width: cellWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *printer) cell(s memory.Slot) string {
	return p.style(s.Kind, fmt.Sprintf("%-*s", p.width, s.String()))
}

func (p *printer) printVector(slots []memory.Slot) {
	p.w.WriteString("[")
	for _, s := range slots {
		p.w.WriteString(indent)
		p.w.WriteString(p.cell(s))
	}
	p.w.WriteString(indent + "]")
}

func (p *printer) printRec(a nested.Array[memory.Slot]) {
	if a.IsLeaf() {
		p.w.WriteString(p.cell(a.Value()))
		return
	}
	if a.Len() == 0 {
		return
	}
	if a.At(0).IsLeaf() {
		p.printVector(a.Flatten())
		return
	}
	p.w.WriteString("\n[\n")
	for i := range a.Len() {
		if i > 0 {
			p.w.WriteString("\n")
		}
		p.w.WriteString(indent)
		p.printRec(a.At(i))
	}
	p.w.WriteString("\n]\n")
}

// Sprint returns the representation of a nested layout.
// The innermost axis is printed on a single line and outer axes open a new
// bracketed block. An empty layout is printed as an empty string.
func Sprint(a nested.Array[memory.Slot], opts ...Option) string {
	p := newPrinter(opts)
	p.printRec(a)
	return p.w.String()
}

// SprintMemory returns the representation of a flat memory on a single line.
func SprintMemory(slots []memory.Slot, opts ...Option) string {
	p := newPrinter(opts)
	p.printVector(slots)
	return p.w.String()
}
