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

package layout

import (
	"github.com/gx-org/memlayout/base/iter"
	"github.com/gx-org/memlayout/base/nested"
	"github.com/gx-org/memlayout/expr"
	"github.com/gx-org/memlayout/memory"
	"github.com/pkg/errors"
)

func bounds(vars []*expr.Variable) []iter.Bound {
	bs := make([]iter.Bound, len(vars))
	for i, v := range vars {
		bs[i] = iter.Bound{Min: int(v.Min()), Max: int(v.Max())}
	}
	return bs
}

func newEnv(vars []*expr.Variable, values []int) expr.Env {
	env := make(expr.Env, len(vars))
	for i, v := range vars {
		env[v.Name()] = expr.NewNumber(int64(values[i]))
	}
	return env
}

// Environments returns every assignment of the variables within their range.
// The first variable varies the slowest, which is the order in which the
// elements of an array indexed by the variables are stored.
func Environments(vars []*expr.Variable) []expr.Env {
	var envs []expr.Env
	for values := range iter.Product(bounds(vars)...) {
		envs = append(envs, newEnv(vars, values))
	}
	return envs
}

// EnvironmentLayout returns the assignments of the variables arranged into
// a nested array with one axis per variable.
func EnvironmentLayout(vars []*expr.Variable) nested.Array[expr.Env] {
	if len(vars) == 0 {
		return nested.Array[expr.Env]{}
	}
	return environmentLayout(vars, bounds(vars), nil)
}

func environmentLayout(vars []*expr.Variable, bs []iter.Bound, values []int) nested.Array[expr.Env] {
	axis := len(values)
	if axis == len(vars) {
		return nested.Leaf(newEnv(vars, values))
	}
	b := bs[axis]
	sub := make([]nested.Array[expr.Env], 0, b.Len())
	for v := b.Min; v <= b.Max; v++ {
		sub = append(sub, environmentLayout(vars, bs, append(values, v)))
	}
	return nested.Of(sub...)
}

func address(e expr.Node, env expr.Env) (int, error) {
	n, err := expr.Reduce(e, env)
	if err != nil {
		return 0, err
	}
	addr, ok := n.Int64()
	if !ok {
		return 0, errors.Wrapf(expr.ErrExpressionNotReduced, "%s evaluates to %s with %s: not an integer address", e, n, env)
	}
	return int(addr), nil
}

// ConstructFromEnvironments returns the memory touched by an index expression
// evaluated for each environment.
// As with Construct, the memory spans from 0 to the largest address and
// addresses not referenced by any environment are empty.
func ConstructFromEnvironments(envs []expr.Env, e expr.Node) ([]memory.Slot, error) {
	var b memory.Builder
	for _, env := range envs {
		addr, err := address(e, env)
		if err != nil {
			return nil, err
		}
		if err := b.Fill(addr); err != nil {
			return nil, errors.Wrapf(err, "%s with %s", e, env)
		}
	}
	return b.Slots(), nil
}

// SubstituteLayout replaces every environment of a layout by the slot of
// the memory at the address given by an index expression.
// If valid is not nil, it is evaluated for every environment and needs to
// be 0 or 1. The slot is masked when valid is 0.
func SubstituteLayout(slots []memory.Slot, layout nested.Array[expr.Env], e, valid expr.Node) (nested.Array[memory.Slot], error) {
	return nested.MapErr(layout, func(env expr.Env) (memory.Slot, error) {
		addr, err := address(e, env)
		if err != nil {
			return memory.Slot{}, err
		}
		if addr < 0 || addr >= len(slots) {
			return memory.Slot{}, errors.Wrapf(ErrAddressNotFound, "%s evaluates to %d with %s but the memory has %d slots", e, addr, env, len(slots))
		}
		slot := slots[addr]
		if valid == nil {
			return slot, nil
		}
		isValid, err := expr.Reduce(valid, env)
		if err != nil {
			return memory.Slot{}, err
		}
		v, ok := isValid.Int64()
		switch {
		case ok && v == 0:
			return slot.Mask(), nil
		case ok && v == 1:
			return slot, nil
		}
		return memory.Slot{}, errors.Wrapf(ErrNotBoolean, "%s evaluates to %s with %s", valid, isValid, env)
	})
}

// StrideExpression returns the index expression of an array given its
// stride, that is 0 + vars[0]*stride[0] + vars[1]*stride[1] + ...
func StrideExpression(vars []*expr.Variable, stride []int) (expr.Node, error) {
	if len(vars) != len(stride) {
		return nil, errors.Wrapf(ErrInvalidShape, "got %d variables for stride %v", len(vars), stride)
	}
	var e expr.Node = expr.NewNumber(0)
	for i, v := range vars {
		e = expr.Add(e, expr.Mul(v, expr.NewNumber(int64(stride[i]))))
	}
	return e, nil
}
