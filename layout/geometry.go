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
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"golang.org/x/exp/constraints"
)

// Address returns the address of an element given its index and the stride of its array.
func Address[T constraints.Integer](index, stride []T) T {
	var addr T
	for i, idx := range index {
		addr += idx * stride[i]
	}
	return addr
}

// NumElements returns the number of elements of an array given its axis lengths.
func NumElements(axes []int) int {
	sh := &shape.Shape{
		DType:       dtype.Int64,
		AxisLengths: axes,
	}
	return sh.Size()
}
