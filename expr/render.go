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
	"strings"
)

// Render returns the canonical form of an expression: fully parenthesized
// infix notation where chained operators associate to the left.
func Render(n Node) string {
	switch nT := n.(type) {
	case *Number:
		return nT.String()
	case *Variable:
		return nT.name
	case *SumExpr:
		terms := make([]string, len(nT.terms))
		for i, term := range nT.terms {
			terms[i] = Render(term)
		}
		return "(" + strings.Join(terms, " + ") + ")"
	case *MulExpr:
		return binary(nT.x, "*", nT.y)
	case *ModExpr:
		return binary(nT.x, "%", nT.y)
	case *FloorDivExpr:
		return binary(nT.x, "//", nT.y)
	case *DivExpr:
		return binary(nT.x, "/", nT.y)
	case *LessExpr:
		return binary(nT.x, "<", nT.y)
	case *GreaterExpr:
		return binary(nT.x, ">", nT.y)
	case *AndExpr:
		return binary(nT.x, "&", nT.y)
	case nil:
		return "<nil>"
	}
	panic(fmt.Sprintf("node type %T not supported", n))
}

func binary(x Node, op string, y Node) string {
	return fmt.Sprintf("(%s %s %s)", Render(x), op, Render(y))
}
