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

// Package layout computes the memory slots touched by a multi-dimensional
// array and arranges them into the nested form of the array.
//
// An array is described either by a shape and a stride, in which case the
// element at index (i0, i1, ...) is at address i0*stride[0] + i1*stride[1] + ...,
// or by an index expression over bounded variables.
package layout

import (
	"log/slog"

	"github.com/gx-org/memlayout/base/iter"
	"github.com/gx-org/memlayout/base/nested"
	"github.com/gx-org/memlayout/memory"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidShape is returned when a shape or its stride is invalid.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrIncompatibleShape is returned when a shape cannot replace another one.
	ErrIncompatibleShape = errors.New("incompatible shape")

	// ErrInvalidMask is returned when masks do not match a shape.
	ErrInvalidMask = errors.New("invalid mask")

	// ErrMissingSlot is returned when a memory does not cover a shape.
	ErrMissingSlot = errors.New("missing slot")

	// ErrAddressNotFound is returned when an expression evaluates to an
	// address absent from a memory.
	ErrAddressNotFound = errors.New("address not found")

	// ErrNotBoolean is returned when a validity expression evaluates to
	// something else than 0 or 1.
	ErrNotBoolean = errors.New("validity is not a boolean")

	// ErrLayoutMismatch is returned when a nested layout does not match its shape.
	ErrLayoutMismatch = errors.New("layout does not match shape")
)

type (
	// Mask is an inclusive range of valid indices along one axis.
	// Elements outside of the range are masked.
	Mask struct {
		Lo, Hi int
	}

	// Option configures the arrangement of slots.
	Option func(*options)

	options struct {
		logger *slog.Logger
	}
)

// Contains returns true if the index is within the mask range.
func (m Mask) Contains(i int) bool {
	return m.Lo <= i && i <= m.Hi
}

// WithLogger sets the logger reporting failures that are not returned to the caller.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Construct returns the memory touched by an array given its shape and its stride.
// The memory starts at address 0 and ends at the largest address of an element.
// Addresses between the two which are not referenced by any element are empty.
// Several elements can share the same address when a stride is zero.
func Construct(shape, stride []int) ([]memory.Slot, error) {
	if err := ValidateShapeStrides(shape, stride); err != nil {
		return nil, err
	}
	var b memory.Builder
	for index := range iter.Indices(shape...) {
		if err := b.Fill(Address(index, stride)); err != nil {
			return nil, errors.Wrapf(err, "element %v with stride %v", index, stride)
		}
	}
	return b.Slots(), nil
}

// Arrange the slots of a memory into the nested form of an array.
// See ArrangeStrict for a description of the masks.
// Failures are logged and an empty array is returned, which lets a caller
// display a blank result while its shape and stride do not match the memory.
func Arrange(slots []memory.Slot, shape, stride []int, masks []Mask, opts ...Option) nested.Array[memory.Slot] {
	o := newOptions(opts)
	arranged, err := ArrangeStrict(slots, shape, stride, masks)
	if err != nil {
		o.logger.Warn("cannot arrange memory into shape",
			"shape", shape,
			"stride", stride,
			"memory_size", len(slots),
			"error", err)
		return nested.Array[memory.Slot]{}
	}
	return arranged
}

// ArrangeStrict arranges the slots of a memory into the nested form of an
// array and returns an error if the memory does not cover the array.
//
// masks is either nil or has one mask per axis. An element is masked if one
// of its indices is outside the mask of its axis. A masked element is
// replaced by a masked slot at the same address.
func ArrangeStrict(slots []memory.Slot, shape, stride []int, masks []Mask) (nested.Array[memory.Slot], error) {
	if err := ValidateShapeStrides(shape, stride); err != nil {
		return nested.Array[memory.Slot]{}, err
	}
	if masks != nil && len(masks) != len(shape) {
		return nested.Array[memory.Slot]{}, errors.Wrapf(ErrInvalidMask, "got %d masks for shape %v", len(masks), shape)
	}
	a := arranger{slots: slots, shape: shape, stride: stride, masks: masks}
	return a.arrange(0, 0, false)
}

type arranger struct {
	slots         []memory.Slot
	shape, stride []int
	masks         []Mask
}

func (a *arranger) arrange(axis, addr int, masked bool) (nested.Array[memory.Slot], error) {
	if axis == len(a.shape) {
		if addr < 0 || addr >= len(a.slots) {
			return nested.Array[memory.Slot]{}, errors.Wrapf(ErrMissingSlot, "no slot at address %d in a memory of size %d", addr, len(a.slots))
		}
		slot := a.slots[addr]
		if masked {
			slot = slot.Mask()
		}
		return nested.Leaf(slot), nil
	}
	values := make([]nested.Array[memory.Slot], a.shape[axis])
	for i := range values {
		childMasked := masked || (a.masks != nil && !a.masks[axis].Contains(i))
		var err error
		values[i], err = a.arrange(axis+1, addr+i*a.stride[axis], childMasked)
		if err != nil {
			return nested.Array[memory.Slot]{}, err
		}
	}
	return nested.Of(values...), nil
}
