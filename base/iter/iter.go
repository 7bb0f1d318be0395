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

// Package iter provides common iterators.
package iter

import "slices"

// Bound is an inclusive interval of integers.
type Bound struct {
	Min, Max int
}

// Len returns the number of integers in the interval.
func (b Bound) Len() int {
	if b.Max < b.Min {
		return 0
	}
	return b.Max - b.Min + 1
}

// Product iterates over the Cartesian product of a set of bounds.
// Tuples are yielded in row-major order, that is the last bound varies the fastest.
// Nothing is yielded if there is no bound or if one of the bounds is empty.
func Product(bounds ...Bound) func(yield func([]int) bool) {
	return func(yield func([]int) bool) {
		if len(bounds) == 0 {
			return
		}
		idx := make([]int, len(bounds))
		for i, b := range bounds {
			if b.Len() == 0 {
				return
			}
			idx[i] = b.Min
		}
		for {
			if !yield(slices.Clone(idx)) {
				return
			}
			axis := len(bounds) - 1
			for ; axis >= 0; axis-- {
				if idx[axis] < bounds[axis].Max {
					idx[axis]++
					break
				}
				idx[axis] = bounds[axis].Min
			}
			if axis < 0 {
				return
			}
		}
	}
}

// Indices iterates over all the indices of an array given its axis lengths.
func Indices(axes ...int) func(yield func([]int) bool) {
	bounds := make([]Bound, len(axes))
	for i, n := range axes {
		bounds[i] = Bound{Min: 0, Max: n - 1}
	}
	return Product(bounds...)
}

// Filter iterates over the elements of multiple slices
// and excludes elements for which the filter returns false.
func Filter[T any](f func(T) bool, slices ...[]T) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for _, slice := range slices {
			for _, el := range slice {
				if !f(el) {
					continue
				}
				if !yield(el) {
					return
				}
			}
		}
	}
}
