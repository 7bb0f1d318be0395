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
	"math/big"

	"github.com/pkg/errors"
)

var (
	one      = big.NewRat(1, 1)
	minusOne = big.NewRat(-1, 1)
)

// Add returns x + y.
func Add(x, y Node) Node {
	return NewSum(x, y)
}

// Mul returns x * y. The product is folded into a number if both operands are numbers.
func Mul(x, y Node) Node {
	xn, xok := x.(*Number)
	yn, yok := y.(*Number)
	if xok && yok {
		return &Number{val: new(big.Rat).Mul(xn.val, yn.val)}
	}
	return NewMul(x, y)
}

// Neg returns -x, that is (-1 * x).
func Neg(x Node) Node {
	return Mul(&Number{val: minusOne}, x)
}

func divisor(op string, y Node) (*Number, error) {
	yn, ok := y.(*Number)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "right operand of %s must be a number, got %s", op, y)
	}
	if yn.val.Sign() == 0 {
		return nil, errors.Wrapf(ErrDivisionByZero, "right operand of %s", op)
	}
	return yn, nil
}

// Mod returns x % y. The right operand y must be a number.
// The remainder is folded into a number if x is also a number.
func Mod(x, y Node) (Node, error) {
	yn, err := divisor("%", y)
	if err != nil {
		return nil, err
	}
	if xn, ok := x.(*Number); ok {
		return &Number{val: rem(xn.val, yn.val)}, nil
	}
	return NewMod(x, yn), nil
}

// FloorDiv returns x // y. The right operand y must be a number.
// The quotient is folded into a number if x is also a number.
func FloorDiv(x, y Node) (Node, error) {
	yn, err := divisor("//", y)
	if err != nil {
		return nil, err
	}
	if xn, ok := x.(*Number); ok {
		return &Number{val: floorQuo(xn.val, yn.val)}, nil
	}
	return NewFloorDiv(x, yn), nil
}

// Div returns x / y. The quotient is folded into a number if both operands are numbers.
func Div(x, y Node) (Node, error) {
	xn, xok := x.(*Number)
	yn, yok := y.(*Number)
	if !xok || !yok {
		return NewDiv(x, y), nil
	}
	if yn.val.Sign() == 0 {
		return nil, errors.Wrapf(ErrDivisionByZero, "%s / %s", xn, yn)
	}
	return &Number{val: new(big.Rat).Quo(xn.val, yn.val)}, nil
}

// Lt returns x < y.
func Lt(x, y Node) Node {
	return NewLess(x, y)
}

// Le returns x <= y, written as x < (y + 1).
func Le(x, y Node) Node {
	return NewLess(x, Add(y, &Number{val: one}))
}

// Gt returns x > y.
func Gt(x, y Node) Node {
	return NewGreater(x, y)
}

// Ge returns x >= y, written as x > (y + -1).
func Ge(x, y Node) Node {
	return NewGreater(x, Add(y, &Number{val: minusOne}))
}

// And returns the logical conjunction of x and y.
func And(x, y Node) Node {
	return NewAnd(x, y)
}

// quotient returns x / y and the numerator and denominator of the result
// with a positive denominator.
func quotient(x, y *big.Rat) (num, den *big.Int) {
	num = new(big.Int).Mul(x.Num(), y.Denom())
	den = new(big.Int).Mul(x.Denom(), y.Num())
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return num, den
}

// floorQuo returns floor(x / y).
func floorQuo(x, y *big.Rat) *big.Rat {
	num, den := quotient(x, y)
	// Euclidean division rounds towards -inf when the divisor is positive.
	return new(big.Rat).SetInt(new(big.Int).Div(num, den))
}

// rem returns x - y*trunc(x/y), the remainder with the sign of x.
func rem(x, y *big.Rat) *big.Rat {
	num, den := quotient(x, y)
	trunc := new(big.Rat).SetInt(new(big.Int).Quo(num, den))
	return new(big.Rat).Sub(x, trunc.Mul(trunc, y))
}

func boolNumber(b bool) *Number {
	if b {
		return NewNumber(1)
	}
	return NewNumber(0)
}
