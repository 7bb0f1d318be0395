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

// Package config loads memory layout scenarios from YAML files.
//
// A scenario describes an array either by its shape and stride:
//
//	mode: strides
//	shape: [3, 4]
//	stride: [1, 4]
//	masks: [[0, 1], [1, 2]]
//
// or by an index expression over bounded variables:
//
//	mode: expr
//	variables:
//	  - {name: idx0, min: 0, max: 2}
//	  - {name: idx1, min: 0, max: 1}
//	expression: idx0 * 2 + idx1
//	valid: (idx0 < 2) and (idx1 < 1)
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gx-org/memlayout/base/uname"
	"github.com/gx-org/memlayout/expr"
	"github.com/gx-org/memlayout/expr/parser"
	"github.com/gx-org/memlayout/layout"
	"github.com/gx-org/memlayout/visualize"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	// ModeStrides describes an array by its shape and its stride.
	ModeStrides = "strides"
	// ModeExpr describes an array by an index expression.
	ModeExpr = "expr"
)

// ErrInvalidConfig is returned when a scenario fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

type (
	// Variable of an index expression.
	// A variable without a name is named idx<i> where i is its position.
	Variable struct {
		Name string `yaml:"name" validate:"required,identifier"`
		Min  int64  `yaml:"min"`
		Max  int64  `yaml:"max" validate:"gtefield=Min"`
	}

	// Scenario describes the array to visualize.
	Scenario struct {
		Mode string `yaml:"mode" validate:"required,oneof=strides expr"`

		Shape  []int   `yaml:"shape" validate:"required_if=Mode strides,dive,gt=0"`
		Stride []int   `yaml:"stride" validate:"required_if=Mode strides"`
		Masks  [][]int `yaml:"masks" validate:"omitempty,dive,len=2"`

		Variables  []Variable `yaml:"variables" validate:"required_if=Mode expr,dive"`
		Expression string     `yaml:"expression" validate:"required_if=Mode expr"`
		Valid      string     `yaml:"valid"`

		// Limits of the expression parser. Default limits are used if nil.
		Limits *parser.Limits `yaml:"limits" validate:"omitempty"`
	}
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("identifier", validateIdentifier)
}

func validateIdentifier(fl validator.FieldLevel) bool {
	return expr.IsIdentifier(fl.Field().String())
}

// Load reads and validates a scenario from a file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "configuration %s", path)
	}
	return s, nil
}

// Parse decodes and validates a scenario.
// Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	s := &Scenario{}
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "cannot decode scenario")
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) applyDefaults() {
	names := uname.New()
	for _, v := range s.Variables {
		if v.Name != "" {
			names.Register(v.Name)
		}
	}
	root := names.Root("idx")
	for i := range s.Variables {
		if s.Variables[i].Name == "" {
			s.Variables[i].Name = root.Next()
		}
	}
	if s.Limits == nil {
		limits := parser.DefaultLimits()
		s.Limits = &limits
	}
}

// Validate returns all the problems found in a scenario.
func (s *Scenario) Validate() error {
	var err error
	var fieldErrs validator.ValidationErrors
	if vErr := validate.Struct(s); errors.As(vErr, &fieldErrs) {
		for _, fe := range fieldErrs {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "%s: failed on %s=%s with value %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		}
	} else if vErr != nil {
		err = multierr.Append(err, errors.Wrap(vErr, "cannot validate scenario"))
	}
	if s.Mode == ModeStrides && len(s.Masks) > 0 && len(s.Masks) != len(s.Shape) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "got %d masks for %d axes", len(s.Masks), len(s.Shape)))
	}
	return err
}

// StridesRequest returns the request to compute the layout from a shape and a stride.
func (s *Scenario) StridesRequest() visualize.StridesRequest {
	req := visualize.StridesRequest{Shape: s.Shape, Stride: s.Stride}
	for _, m := range s.Masks {
		req.Masks = append(req.Masks, layout.Mask{Lo: m[0], Hi: m[1]})
	}
	return req
}

// ExpressionRequest returns the request to compute the layout from an index expression.
func (s *Scenario) ExpressionRequest() visualize.ExpressionRequest {
	req := visualize.ExpressionRequest{Expression: s.Expression, Valid: s.Valid}
	for _, v := range s.Variables {
		req.Variables = append(req.Variables, visualize.Variable{Name: v.Name, Min: v.Min, Max: v.Max})
	}
	return req
}

// Run computes the layout described by the scenario.
func (s *Scenario) Run(opts ...visualize.Option) (*visualize.Result, error) {
	switch s.Mode {
	case ModeStrides:
		return visualize.Strides(s.StridesRequest(), opts...)
	case ModeExpr:
		if s.Limits != nil {
			opts = append(opts, visualize.WithLimits(*s.Limits))
		}
		return visualize.Expression(s.ExpressionRequest(), opts...)
	}
	return nil, errors.Wrapf(ErrInvalidConfig, "mode %q not supported", s.Mode)
}
