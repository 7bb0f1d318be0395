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

	"github.com/pkg/errors"
)

// Substitute replaces every variable of an expression by its value in an
// environment and reduces the result. The environment must bind all the
// variables of the expression: the returned node is always a number.
func Substitute(n Node, env Env) (Node, error) {
	switch nT := n.(type) {
	case *Number:
		return nT, nil
	case *Variable:
		val, ok := env[nT.name]
		if !ok || val == nil {
			return nil, errors.Wrapf(ErrUnboundVariable, "variable %s not found in %s", nT.name, env)
		}
		return val, nil
	case *SumExpr:
		sum := new(big.Rat)
		for _, term := range nT.terms {
			val, err := Reduce(term, env)
			if err != nil {
				return nil, err
			}
			sum.Add(sum, val.val)
		}
		return &Number{val: sum}, nil
	case *MulExpr:
		return substituteBinary(nT.x, nT.y, env, func(x, y Node) (Node, error) {
			return Mul(x, y), nil
		})
	case *ModExpr:
		return substituteBinary(nT.x, nT.y, env, Mod)
	case *FloorDivExpr:
		return substituteBinary(nT.x, nT.y, env, FloorDiv)
	case *DivExpr:
		return substituteBinary(nT.x, nT.y, env, Div)
	case *LessExpr:
		return compare(nT.x, nT.y, env, func(c int) bool { return c < 0 })
	case *GreaterExpr:
		return compare(nT.x, nT.y, env, func(c int) bool { return c > 0 })
	case *AndExpr:
		x, y, err := reduceBoth(nT.x, nT.y, env)
		if err != nil {
			return nil, err
		}
		return boolNumber(x.val.Sign() != 0 && y.val.Sign() != 0), nil
	}
	panic(fmt.Sprintf("node type %T not supported", n))
}

// Reduce substitutes the variables of an expression and returns the resulting number.
func Reduce(n Node, env Env) (*Number, error) {
	subbed, err := Substitute(n, env)
	if err != nil {
		return nil, err
	}
	num, ok := subbed.(*Number)
	if !ok {
		return nil, errors.Wrapf(ErrExpressionNotReduced, "%s reduced to %s", n, subbed)
	}
	return num, nil
}

func reduceBoth(x, y Node, env Env) (*Number, *Number, error) {
	xn, err := Reduce(x, env)
	if err != nil {
		return nil, nil, err
	}
	yn, err := Reduce(y, env)
	if err != nil {
		return nil, nil, err
	}
	return xn, yn, nil
}

func substituteBinary(x, y Node, env Env, op func(x, y Node) (Node, error)) (Node, error) {
	xn, yn, err := reduceBoth(x, y, env)
	if err != nil {
		return nil, err
	}
	return op(xn, yn)
}

func compare(x, y Node, env Env, pred func(int) bool) (Node, error) {
	xn, yn, err := reduceBoth(x, y, env)
	if err != nil {
		return nil, err
	}
	return boolNumber(pred(xn.val.Cmp(yn.val))), nil
}
