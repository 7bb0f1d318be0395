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

// Package visualize runs the end-to-end computations of a memory layout:
// from a shape and a stride, or from an index expression over bounded
// variables, to the memory touched by the array and its nested layout.
package visualize

import (
	"log/slog"

	"github.com/gx-org/memlayout/base/nested"
	"github.com/gx-org/memlayout/base/uname"
	"github.com/gx-org/memlayout/expr"
	"github.com/gx-org/memlayout/expr/parser"
	"github.com/gx-org/memlayout/layout"
	"github.com/gx-org/memlayout/memory"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidExpression is returned when an expression fails the quick validation.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrInvalidLayout is returned when a computed layout does not match its shape.
	ErrInvalidLayout = errors.New("invalid layout")
)

type (
	// Variable declares a variable of an index expression.
	Variable struct {
		Name     string
		Min, Max int64
	}

	// StridesRequest describes an array by its shape and its stride.
	StridesRequest struct {
		Shape  []int
		Stride []int
		// Masks is optional. If set, it has one mask per axis.
		Masks []layout.Mask
	}

	// ExpressionRequest describes an array by an index expression.
	ExpressionRequest struct {
		// Variables of the expression, one per axis of the array.
		Variables []Variable
		// Expression computing the address of an element.
		Expression string
		// Valid is an optional expression evaluating to 1 for valid elements
		// and to 0 for masked elements.
		Valid string
	}

	// Result of a computation.
	Result struct {
		// Memory touched by the array.
		Memory []memory.Slot
		// Layout of the array.
		Layout nested.Array[memory.Slot]
		// Shape of the layout.
		Shape []int
		// Expression computing the address of an element.
		Expression expr.Node
		// Valid is the validity expression, nil if none was given.
		Valid expr.Node
		// Summary counts the elements of the layout by kind.
		Summary memory.Summary
	}

	// Option configures a computation.
	Option func(*options)

	options struct {
		logger *slog.Logger
		limits parser.Limits
	}
)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithLimits sets the resource limits used to parse expressions.
func WithLimits(limits parser.Limits) Option {
	return func(opts *options) {
		opts.limits = limits
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		limits: parser.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newResult(mem []memory.Slot, lay nested.Array[memory.Slot], shape []int) *Result {
	return &Result{
		Memory:  mem,
		Layout:  lay,
		Shape:   shape,
		Summary: memory.Summarize(lay.Flatten()),
	}
}

// indexVariables returns one variable idx<i> per axis, spanning the axis.
func indexVariables(shape []int) ([]*expr.Variable, error) {
	names := uname.New().Root("idx")
	vars := make([]*expr.Variable, len(shape))
	for i, n := range shape {
		var err error
		vars[i], err = expr.NewVariable(names.Next(), 0, int64(n-1))
		if err != nil {
			return nil, err
		}
	}
	return vars, nil
}

// Strides computes the memory and the layout of an array given its shape and its stride.
// The expression of the result is the index expression equivalent to the stride.
func Strides(req StridesRequest, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	mem, err := layout.Construct(req.Shape, req.Stride)
	if err != nil {
		return nil, err
	}
	lay := layout.Arrange(mem, req.Shape, req.Stride, req.Masks, layout.WithLogger(o.logger))
	res := newResult(mem, lay, req.Shape)
	vars, err := indexVariables(req.Shape)
	if err != nil {
		return nil, err
	}
	if res.Expression, err = layout.StrideExpression(vars, req.Stride); err != nil {
		return nil, err
	}
	o.logger.Debug("strides layout computed",
		"shape", req.Shape,
		"stride", req.Stride,
		"memory_size", len(mem),
		"filled", res.Summary.Filled,
		"masked", res.Summary.Masked)
	return res, nil
}

// Reshape arranges the memory of an array into a new shape and stride.
// The new shape needs to have the same number of elements as the current one.
// If the memory of the current array does not cover the new shape, the
// layout of the result is empty.
func Reshape(current, next StridesRequest, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	if err := layout.CompatibleWith(current.Shape, current.Stride)(next.Shape, next.Stride); err != nil {
		return nil, err
	}
	mem, err := layout.Construct(current.Shape, current.Stride)
	if err != nil {
		return nil, err
	}
	lay := layout.Arrange(mem, next.Shape, next.Stride, next.Masks, layout.WithLogger(o.logger))
	o.logger.Debug("reshape computed",
		"from", current.Shape,
		"to", next.Shape,
		"stride", next.Stride)
	return newResult(mem, lay, next.Shape), nil
}

func buildTable(vars []Variable) (*expr.Table, error) {
	evars := make([]*expr.Variable, len(vars))
	for i, v := range vars {
		var err error
		if evars[i], err = expr.NewVariable(v.Name, v.Min, v.Max); err != nil {
			return nil, err
		}
	}
	return expr.NewTable(evars...)
}

func (o *options) parse(src string, table *expr.Table) (expr.Node, error) {
	if ok, reason := parser.Validate(src, table); !ok {
		return nil, errors.Wrapf(ErrInvalidExpression, "%q: %s", src, reason)
	}
	return parser.Parse(src, table, parser.WithLimits(o.limits))
}

// Expression computes the memory and the layout of an array given an index
// expression over its variables.
// The layout has one axis per variable. The length of an axis is the number
// of values taken by its variable.
func Expression(req ExpressionRequest, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	if len(req.Variables) == 0 {
		return nil, errors.Wrap(ErrInvalidExpression, "no variable declared")
	}
	table, err := buildTable(req.Variables)
	if err != nil {
		return nil, err
	}
	e, err := o.parse(req.Expression, table)
	if err != nil {
		return nil, err
	}
	var valid expr.Node
	if req.Valid != "" {
		if valid, err = o.parse(req.Valid, table); err != nil {
			return nil, errors.WithMessage(err, "validity expression")
		}
	}
	vars := table.Variables()
	mem, err := layout.ConstructFromEnvironments(layout.Environments(vars), e)
	if err != nil {
		return nil, err
	}
	lay, err := layout.SubstituteLayout(mem, layout.EnvironmentLayout(vars), e, valid)
	if err != nil {
		return nil, err
	}
	shape := make([]int, len(vars))
	for i, v := range vars {
		shape[i] = int(v.Max() - v.Min() + 1)
	}
	if ok, reason := layout.ValidateLayout(shape, lay); !ok {
		return nil, errors.Wrapf(ErrInvalidLayout, "%s", reason)
	}
	res := newResult(mem, lay, shape)
	res.Expression = e
	res.Valid = valid
	o.logger.Debug("expression layout computed",
		"expression", e.String(),
		"shape", shape,
		"memory_size", len(mem),
		"filled", res.Summary.Filled,
		"masked", res.Summary.Masked)
	return res, nil
}
