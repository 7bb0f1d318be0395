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

package expr

import (
	"fmt"
	"math/big"
)

// Range is an inclusive interval [Min, Max] of values.
// The bounds are shared with the node they come from and must not be modified.
type Range struct {
	Min, Max *big.Rat
}

// newRange builds a range, swapping the bounds if needed so that Min <= Max.
func newRange(min, max *big.Rat) Range {
	if min.Cmp(max) > 0 {
		min, max = max, min
	}
	return Range{Min: min, Max: max}
}

func boolRange() Range {
	return Range{Min: new(big.Rat), Max: big.NewRat(1, 1)}
}

// Contains returns true if v is in the range.
func (r Range) Contains(v *big.Rat) bool {
	return r.Min.Cmp(v) <= 0 && v.Cmp(r.Max) <= 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", ratString(r.Min), ratString(r.Max))
}
