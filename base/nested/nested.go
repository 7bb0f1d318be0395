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

// Package nested implements arrays of arbitrary nesting depth.
//
// An array is either a leaf holding a single value or a list of sub-arrays.
// The zero value is an empty array.
package nested

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Array is a nested array of values.
type Array[T any] struct {
	leaf   bool
	value  T
	values []Array[T]
}

// Leaf returns a leaf holding a single value.
func Leaf[T any](v T) Array[T] {
	return Array[T]{leaf: true, value: v}
}

// Of returns an array of sub-arrays.
func Of[T any](values ...Array[T]) Array[T] {
	return Array[T]{values: values}
}

// Leaves returns an array of leaves.
func Leaves[T any](vals ...T) Array[T] {
	values := make([]Array[T], len(vals))
	for i, v := range vals {
		values[i] = Leaf(v)
	}
	return Of(values...)
}

// IsLeaf returns true if the array holds a single value.
func (a Array[T]) IsLeaf() bool {
	return a.leaf
}

// Value returns the value of a leaf.
// The zero value of T is returned if the array is not a leaf.
func (a Array[T]) Value() T {
	return a.value
}

// Len returns the number of sub-arrays.
func (a Array[T]) Len() int {
	return len(a.values)
}

// At returns the i-th sub-array.
func (a Array[T]) At(i int) Array[T] {
	return a.values[i]
}

// Get returns the array at an index path.
// It returns false if an index is out of range or traverses a leaf.
func (a Array[T]) Get(path ...int) (Array[T], bool) {
	cur := a
	for _, i := range path {
		if cur.leaf || i < 0 || i >= len(cur.values) {
			return Array[T]{}, false
		}
		cur = cur.values[i]
	}
	return cur, true
}

// Depth returns the nesting depth of the array, following its first elements.
func (a Array[T]) Depth() int {
	if a.leaf {
		return 0
	}
	if len(a.values) == 0 {
		return 1
	}
	return 1 + a.values[0].Depth()
}

// Axes returns the length of each axis, following the first element of each level.
func (a Array[T]) Axes() []int {
	var axes []int
	for cur := a; !cur.leaf; cur = cur.values[0] {
		axes = append(axes, len(cur.values))
		if len(cur.values) == 0 {
			break
		}
	}
	return axes
}

// All iterates over the leaves in row-major order.
// Each leaf is yielded with its index path.
func (a Array[T]) All() iter.Seq2[[]int, T] {
	return func(yield func([]int, T) bool) {
		a.all(nil, yield)
	}
}

func (a Array[T]) all(path []int, yield func([]int, T) bool) bool {
	if a.leaf {
		return yield(slices.Clone(path), a.value)
	}
	for i, sub := range a.values {
		if !sub.all(append(path, i), yield) {
			return false
		}
	}
	return true
}

// Flatten returns all the leaves in row-major order.
func (a Array[T]) Flatten() []T {
	var flat []T
	for _, v := range a.All() {
		flat = append(flat, v)
	}
	return flat
}

// Map returns a new array with the same structure where each leaf has been transformed by f.
func Map[T, U any](a Array[T], f func(T) U) Array[U] {
	if a.leaf {
		return Leaf(f(a.value))
	}
	values := make([]Array[U], len(a.values))
	for i, sub := range a.values {
		values[i] = Map(sub, f)
	}
	return Of(values...)
}

// MapErr is like Map but stops at the first error returned by f.
func MapErr[T, U any](a Array[T], f func(T) (U, error)) (Array[U], error) {
	if a.leaf {
		v, err := f(a.value)
		if err != nil {
			return Array[U]{}, err
		}
		return Leaf(v), nil
	}
	values := make([]Array[U], len(a.values))
	for i, sub := range a.values {
		var err error
		if values[i], err = MapErr(sub, f); err != nil {
			return Array[U]{}, err
		}
	}
	return Of(values...), nil
}

// String returns the array in a bracketed form, for example [[0x0 0x1] [0x2 0x3]].
func (a Array[T]) String() string {
	if a.leaf {
		return fmt.Sprint(a.value)
	}
	ss := make([]string, len(a.values))
	for i, sub := range a.values {
		ss[i] = sub.String()
	}
	return "[" + strings.Join(ss, " ") + "]"
}
