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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gx-org/memlayout/expr/parser"
	"github.com/gx-org/memlayout/layout"
	"github.com/gx-org/memlayout/tools/config"
	"github.com/gx-org/memlayout/visualize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestParseStrides(t *testing.T) {
	s, err := config.Parse([]byte(`
mode: strides
shape: [3, 4]
stride: [1, 4]
masks: [[0, 1], [1, 2]]
`))
	require.NoError(t, err)
	assert.Equal(t, config.ModeStrides, s.Mode)
	assert.Equal(t, visualize.StridesRequest{
		Shape:  []int{3, 4},
		Stride: []int{1, 4},
		Masks:  []layout.Mask{{Lo: 0, Hi: 1}, {Lo: 1, Hi: 2}},
	}, s.StridesRequest())
	assert.Equal(t, parser.DefaultLimits(), *s.Limits)

	res, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, res.Layout.Axes())
	assert.Equal(t, 8, res.Summary.Masked)
}

func TestParseExpression(t *testing.T) {
	s, err := config.Parse([]byte(`
mode: expr
variables:
  - {min: 0, max: 2}
  - {name: idx0, min: 0, max: 1}
expression: idx1 * 2 + idx0
valid: (idx1 < 2) and (idx0 < 1)
limits:
  max_depth: 3
  max_length: 100
  max_digits: 4
  max_identifier: 8
  max_iterations: 50
`))
	require.NoError(t, err)
	assert.Equal(t, visualize.ExpressionRequest{
		Variables: []visualize.Variable{
			{Name: "idx1", Min: 0, Max: 2},
			{Name: "idx0", Min: 0, Max: 1},
		},
		Expression: "idx1 * 2 + idx0",
		Valid:      "(idx1 < 2) and (idx0 < 1)",
	}, s.ExpressionRequest())
	assert.Equal(t, 3, s.Limits.MaxDepth)

	res, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, res.Shape)
	assert.Equal(t, 2, res.Summary.Filled)
	assert.Equal(t, 4, res.Summary.Masked)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		numErrs int
	}{
		{
			name:    "empty",
			src:     ``,
			numErrs: 1,
		},
		{
			name:    "unknown mode",
			src:     `mode: tensor`,
			numErrs: 1,
		},
		{
			name: "missing strides",
			src: `
mode: strides
shape: [2, 0]
masks: [[0, 1, 2]]
`,
			numErrs: 4,
		},
		{
			name: "invalid variables",
			src: `
mode: expr
variables:
  - {name: 0idx, min: 0, max: 1}
  - {name: a, min: 3, max: 1}
expression: a
`,
			numErrs: 2,
		},
		{
			name: "invalid limits",
			src: `
mode: expr
variables: [{name: a, max: 1}]
expression: a
limits: {max_length: 0}
`,
			numErrs: 4,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Parse([]byte(test.src))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Len(t, multierr.Errors(err), test.numErrs, "%v", err)
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := config.Parse([]byte("mode: strides\nshapes: [2]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot decode scenario")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: strides\nshape: [2, 3]\nstride: [3, 1]\n"), 0o644))
	s, err := config.Load(path)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	assert.Len(t, res.Memory, 6)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
