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

// Package parser parses index expressions into expression trees.
//
// The grammar has no operator precedence: operators are applied from left
// to right within a parenthesis level, so "a + b * c" is "((a + b) * c)".
// Recognised operators are + - * / // % < <= > >= and & (also written "and").
package parser

import (
	"github.com/gx-org/memlayout/expr"
)

type (
	// Limits bound the resources used by the parser on adversarial inputs.
	Limits struct {
		// MaxDepth is the maximum nesting depth of parentheses.
		MaxDepth int `yaml:"max_depth" validate:"gte=0"`
		// MaxLength is the maximum length of the text of one parenthesis level.
		MaxLength int `yaml:"max_length" validate:"gte=1"`
		// MaxDigits is the maximum number of digits of a number literal.
		MaxDigits int `yaml:"max_digits" validate:"gte=1"`
		// MaxIdentifier is the maximum length of an identifier.
		MaxIdentifier int `yaml:"max_identifier" validate:"gte=1"`
		// MaxIterations is the maximum number of tokens of one parenthesis level.
		MaxIterations int `yaml:"max_iterations" validate:"gte=1"`
	}

	// Option configures the parser.
	Option func(*options)

	options struct {
		limits Limits
	}
)

// DefaultLimits returns the limits used when no option overrides them.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:      10,
		MaxLength:     200,
		MaxDigits:     10,
		MaxIdentifier: 10,
		MaxIterations: 100,
	}
}

// WithLimits sets the resource limits of the parser.
func WithLimits(limits Limits) Option {
	return func(opts *options) {
		opts.limits = limits
	}
}

// Parse an expression.
// If vars is not nil, all identifiers in the source need to be declared in
// the table. Identifiers are resolved against vars.
func Parse(src string, vars *expr.Table, opts ...Option) (expr.Node, error) {
	o := options{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&o)
	}
	norm := Normalize(src)
	if err := checkParentheses(norm); err != nil {
		return nil, err
	}
	if vars != nil {
		if err := ValidateVariables(norm, vars); err != nil {
			return nil, err
		}
	}
	s := &scanner{
		parser: &parser{src: norm, vars: vars, limits: o.limits},
		text:   norm,
	}
	return s.scan()
}

// ParseWithLimits parses an expression with specific resource limits.
func ParseWithLimits(src string, vars *expr.Table, limits Limits) (expr.Node, error) {
	return Parse(src, vars, WithLimits(limits))
}
