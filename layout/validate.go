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
	"slices"

	"github.com/gx-org/memlayout/base/nested"
	"github.com/gx-org/memlayout/fmterr"
	"github.com/gx-org/memlayout/memory"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validator checks a shape and its stride.
type Validator func(shape, stride []int) error

// ValidateShapeStrides returns all the problems of a shape and its stride:
// the shape needs at least one axis, the stride the same number of axes as
// the shape, and every axis length needs to be greater than zero.
func ValidateShapeStrides(shape, stride []int) error {
	var err error
	if len(shape) == 0 {
		err = multierr.Append(err, errors.Wrap(ErrInvalidShape, "shape has no axis"))
	}
	if len(shape) != len(stride) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidShape, "shape %v and stride %v have different lengths", shape, stride))
	}
	for axis, n := range shape {
		if n <= 0 {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidShape, "axis %d of shape %v has length %d: must be greater than zero", axis, shape, n))
		}
	}
	return err
}

var _ Validator = ValidateShapeStrides

// CompatibleWith returns a validator checking that a shape and its stride
// can replace a current shape and stride.
// Both pairs need to be valid and the number of elements cannot change.
func CompatibleWith(currentShape, currentStride []int) Validator {
	return func(shape, stride []int) error {
		err := ValidateShapeStrides(shape, stride)
		if currentErr := ValidateShapeStrides(currentShape, currentStride); currentErr != nil {
			err = multierr.Append(err, fmterr.PrefixWith("current shape: ")(currentErr))
		}
		if err != nil {
			return err
		}
		if got, want := NumElements(shape), NumElements(currentShape); got != want {
			return errors.Wrapf(ErrIncompatibleShape, "shape %v has %d elements but shape %v has %d elements", shape, got, currentShape, want)
		}
		return nil
	}
}

// ValidateLayout checks that a nested layout has the structure of a shape:
// every index of the shape exists and holds a slot.
// It returns false and the reason if the layout does not match.
func ValidateLayout(shape []int, layout nested.Array[memory.Slot]) (bool, string) {
	if err := checkLayout(shape, layout, nil); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func checkLayout(axes []int, layout nested.Array[memory.Slot], path []int) error {
	if len(axes) == 0 {
		if !layout.IsLeaf() {
			return errors.Wrapf(ErrLayoutMismatch, "index %v: got an array of length %d, want a slot", path, layout.Len())
		}
		return nil
	}
	if layout.IsLeaf() {
		return errors.Wrapf(ErrLayoutMismatch, "index %v: got slot %s, want an array of length %d", path, layout.Value(), axes[0])
	}
	var err error
	if layout.Len() != axes[0] {
		err = multierr.Append(err, errors.Wrapf(ErrLayoutMismatch, "index %v: got an array of length %d, want %d", path, layout.Len(), axes[0]))
	}
	for i := range min(layout.Len(), axes[0]) {
		err = multierr.Append(err, checkLayout(axes[1:], layout.At(i), slices.Concat(path, []int{i})))
	}
	return err
}
