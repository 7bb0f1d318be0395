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

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gx-org/memlayout/layout/fmtlayout"
	"github.com/gx-org/memlayout/memory"
	"github.com/gx-org/memlayout/visualize"
)

var (
	colorFilled = lipgloss.Color("#20B9B4")
	colorMasked = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#2C4A54")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFilled)

	kindStyles = map[memory.Kind]lipgloss.Style{
		memory.Filled: lipgloss.NewStyle().Foreground(colorFilled),
		memory.Masked: lipgloss.NewStyle().Foreground(colorMasked).Strikethrough(true),
		memory.Empty:  lipgloss.NewStyle().Foreground(colorMuted),
	}
)

func styleKind(kind memory.Kind, text string) string {
	return kindStyles[kind].Render(text)
}

type printer struct {
	color bool
	opts  []fmtlayout.Option
}

func newPrinter(color bool) *printer {
	p := &printer{color: color}
	if color {
		p.opts = append(p.opts, fmtlayout.WithStyler(styleKind))
	} else {
		p.opts = append(p.opts, fmtlayout.WithStyler(fmtlayout.MarkKinds))
	}
	return p
}

func (p *printer) title(s string) string {
	if !p.color {
		return s
	}
	return titleStyle.Render(s)
}

func (p *printer) sprint(res *visualize.Result) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s\n%s\n", p.title("Memory:"), fmtlayout.SprintMemory(res.Memory, p.opts...))
	fmt.Fprintf(b, "%s %v\n", p.title("Layout:"), res.Shape)
	lay := fmtlayout.Sprint(res.Layout, p.opts...)
	if lay == "" {
		lay = "<memory does not cover the shape>"
	}
	fmt.Fprintf(b, "%s\n", strings.Trim(lay, "\n"))
	if res.Expression != nil {
		fmt.Fprintf(b, "%s %s\n", p.title("Expression:"), res.Expression)
	}
	if res.Valid != nil {
		fmt.Fprintf(b, "%s %s\n", p.title("Valid:"), res.Valid)
	}
	fmt.Fprintf(b, "%s %d filled, %d empty, %d masked\n",
		p.title("Summary:"),
		res.Summary.Filled, res.Summary.Empty, res.Summary.Masked)
	return b.String()
}
