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

// Package expr implements symbolic integer index expressions over bounded variables.
//
// Expression nodes are immutable once built. Each node carries the range of
// values it can take, computed at construction from the ranges of its operands.
package expr

import (
	"fmt"
	"math/big"
	"regexp"

	"github.com/pkg/errors"
)

type (
	// Node is a node of an expression tree.
	// The set of node types is closed: it is defined by this package only.
	Node interface {
		fmt.Stringer
		// Range of values the node can evaluate to.
		Range() Range
		node()
	}

	// Number is a literal number.
	Number struct {
		val *big.Rat
	}

	// Variable is a free symbol taking integer values in [Min, Max].
	Variable struct {
		name     string
		min, max int64
	}

	// SumExpr is the sum of a list of nodes.
	SumExpr struct {
		terms []Node
		rng   Range
	}

	// MulExpr is the product of two nodes.
	MulExpr struct {
		x, y Node
		rng  Range
	}

	// ModExpr is the remainder of the division of a node by a number.
	ModExpr struct {
		x   Node
		y   *Number
		rng Range
	}

	// FloorDivExpr is the floor of the division of a node by a number.
	FloorDivExpr struct {
		x   Node
		y   *Number
		rng Range
	}

	// DivExpr is the exact division of two nodes.
	DivExpr struct {
		x, y Node
		rng  Range
	}

	// LessExpr evaluates to 1 if x < y, 0 otherwise.
	LessExpr struct {
		x, y Node
	}

	// GreaterExpr evaluates to 1 if x > y, 0 otherwise.
	GreaterExpr struct {
		x, y Node
	}

	// AndExpr evaluates to 1 if both x and y are non-zero, 0 otherwise.
	AndExpr struct {
		x, y Node
	}
)

var (
	_ Node = (*Number)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*SumExpr)(nil)
	_ Node = (*MulExpr)(nil)
	_ Node = (*ModExpr)(nil)
	_ Node = (*FloorDivExpr)(nil)
	_ Node = (*DivExpr)(nil)
	_ Node = (*LessExpr)(nil)
	_ Node = (*GreaterExpr)(nil)
	_ Node = (*AndExpr)(nil)
)

func (*Number) node()       {}
func (*Variable) node()     {}
func (*SumExpr) node()      {}
func (*MulExpr) node()      {}
func (*ModExpr) node()      {}
func (*FloorDivExpr) node() {}
func (*DivExpr) node()      {}
func (*LessExpr) node()     {}
func (*GreaterExpr) node()  {}
func (*AndExpr) node()      {}

// NewNumber returns a literal integer.
func NewNumber(v int64) *Number {
	return &Number{val: new(big.Rat).SetInt64(v)}
}

// NewRat returns a literal rational number.
func NewRat(v *big.Rat) *Number {
	return &Number{val: new(big.Rat).Set(v)}
}

// Value returns a copy of the value of the number.
func (n *Number) Value() *big.Rat {
	return new(big.Rat).Set(n.val)
}

// IsInt returns true if the number is an integer.
func (n *Number) IsInt() bool {
	return n.val.IsInt()
}

// Int64 returns the value of the number as an int64.
// It returns false if the number is not an integer or does not fit in an int64.
func (n *Number) Int64() (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return n.val.Num().Int64(), true
}

// Range of the number: [value, value].
func (n *Number) Range() Range {
	return Range{Min: n.val, Max: n.val}
}

func (n *Number) String() string {
	return ratString(n.val)
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}

var identifierRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// IsIdentifier returns true if s is a valid variable name.
func IsIdentifier(s string) bool {
	return identifierRegexp.MatchString(s)
}

// NewVariable returns a new variable taking values in [min, max].
func NewVariable(name string, min, max int64) (*Variable, error) {
	if !IsIdentifier(name) {
		return nil, errors.Wrapf(ErrInvalidVariable, "name %q does not match %s", name, identifierRegexp)
	}
	if min > max {
		return nil, errors.Wrapf(ErrInvalidVariable, "%s: min %d is greater than max %d", name, min, max)
	}
	return &Variable{name: name, min: min, max: max}, nil
}

// Name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Min returns the smallest value the variable can take.
func (v *Variable) Min() int64 {
	return v.min
}

// Max returns the largest value the variable can take.
func (v *Variable) Max() int64 {
	return v.max
}

// Range of the variable.
func (v *Variable) Range() Range {
	return Range{Min: big.NewRat(v.min, 1), Max: big.NewRat(v.max, 1)}
}

func (v *Variable) String() string {
	return v.name
}

// NewSum returns the sum of a list of nodes.
func NewSum(terms ...Node) *SumExpr {
	rng := Range{Min: new(big.Rat), Max: new(big.Rat)}
	for _, term := range terms {
		tr := term.Range()
		rng.Min.Add(rng.Min, tr.Min)
		rng.Max.Add(rng.Max, tr.Max)
	}
	return &SumExpr{terms: terms, rng: rng}
}

// Terms returns the operands of the sum.
func (n *SumExpr) Terms() []Node {
	return append([]Node{}, n.terms...)
}

// Range of the sum: the sum of the minimums and the sum of the maximums.
func (n *SumExpr) Range() Range {
	return n.rng
}

func (n *SumExpr) String() string {
	return Render(n)
}

// NewMul returns the product of two nodes without folding constants.
// The range [min(x)*min(y), max(x)*max(y)] is only sound for non-negative operand ranges.
func NewMul(x, y Node) *MulExpr {
	xr, yr := x.Range(), y.Range()
	return &MulExpr{
		x: x, y: y,
		rng: newRange(
			new(big.Rat).Mul(xr.Min, yr.Min),
			new(big.Rat).Mul(xr.Max, yr.Max),
		),
	}
}

// X returns the left operand.
func (n *MulExpr) X() Node { return n.x }

// Y returns the right operand.
func (n *MulExpr) Y() Node { return n.y }

// Range of the product.
func (n *MulExpr) Range() Range { return n.rng }

func (n *MulExpr) String() string { return Render(n) }

// NewMod returns the remainder of x divided by y without folding constants.
func NewMod(x Node, y *Number) *ModExpr {
	return &ModExpr{x: x, y: y, rng: newRange(new(big.Rat), x.Range().Max)}
}

// X returns the left operand.
func (n *ModExpr) X() Node { return n.x }

// Y returns the divisor.
func (n *ModExpr) Y() *Number { return n.y }

// Range of the remainder: [0, max(x)].
func (n *ModExpr) Range() Range { return n.rng }

func (n *ModExpr) String() string { return Render(n) }

// NewFloorDiv returns floor(x / y) without folding constants.
func NewFloorDiv(x Node, y *Number) *FloorDivExpr {
	return &FloorDivExpr{x: x, y: y, rng: newRange(new(big.Rat), x.Range().Max)}
}

// X returns the left operand.
func (n *FloorDivExpr) X() Node { return n.x }

// Y returns the divisor.
func (n *FloorDivExpr) Y() *Number { return n.y }

// Range of the floor division: [0, max(x)].
func (n *FloorDivExpr) Range() Range { return n.rng }

func (n *FloorDivExpr) String() string { return Render(n) }

// NewDiv returns x / y without folding constants.
// A bound with a zero divisor keeps the bound of the dividend.
func NewDiv(x, y Node) *DivExpr {
	xr, yr := x.Range(), y.Range()
	return &DivExpr{
		x: x, y: y,
		rng: newRange(quoBound(xr.Min, yr.Min), quoBound(xr.Max, yr.Max)),
	}
}

func quoBound(x, y *big.Rat) *big.Rat {
	if y.Sign() == 0 {
		return new(big.Rat).Set(x)
	}
	return new(big.Rat).Quo(x, y)
}

// X returns the dividend.
func (n *DivExpr) X() Node { return n.x }

// Y returns the divisor.
func (n *DivExpr) Y() Node { return n.y }

// Range of the division.
func (n *DivExpr) Range() Range { return n.rng }

func (n *DivExpr) String() string { return Render(n) }

// NewLess returns x < y.
func NewLess(x, y Node) *LessExpr {
	return &LessExpr{x: x, y: y}
}

// X returns the left operand.
func (n *LessExpr) X() Node { return n.x }

// Y returns the right operand.
func (n *LessExpr) Y() Node { return n.y }

// Range of a comparison: [0, 1].
func (n *LessExpr) Range() Range { return boolRange() }

func (n *LessExpr) String() string { return Render(n) }

// NewGreater returns x > y.
func NewGreater(x, y Node) *GreaterExpr {
	return &GreaterExpr{x: x, y: y}
}

// X returns the left operand.
func (n *GreaterExpr) X() Node { return n.x }

// Y returns the right operand.
func (n *GreaterExpr) Y() Node { return n.y }

// Range of a comparison: [0, 1].
func (n *GreaterExpr) Range() Range { return boolRange() }

func (n *GreaterExpr) String() string { return Render(n) }

// NewAnd returns the logical conjunction of x and y.
func NewAnd(x, y Node) *AndExpr {
	return &AndExpr{x: x, y: y}
}

// X returns the left operand.
func (n *AndExpr) X() Node { return n.x }

// Y returns the right operand.
func (n *AndExpr) Y() Node { return n.y }

// Range of a conjunction: [0, 1].
func (n *AndExpr) Range() Range { return boolRange() }

func (n *AndExpr) String() string { return Render(n) }
