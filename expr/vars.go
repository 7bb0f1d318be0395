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

import "fmt"

// FreeVariables returns the variables of an expression in the order in
// which they first appear when the expression is rendered.
func FreeVariables(n Node) []*Variable {
	var vars []*Variable
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch nT := n.(type) {
		case *Number:
		case *Variable:
			if !seen[nT.name] {
				seen[nT.name] = true
				vars = append(vars, nT)
			}
		case *SumExpr:
			for _, term := range nT.terms {
				walk(term)
			}
		case *MulExpr:
			walk(nT.x)
			walk(nT.y)
		case *ModExpr:
			walk(nT.x)
		case *FloorDivExpr:
			walk(nT.x)
		case *DivExpr:
			walk(nT.x)
			walk(nT.y)
		case *LessExpr:
			walk(nT.x)
			walk(nT.y)
		case *GreaterExpr:
			walk(nT.x)
			walk(nT.y)
		case *AndExpr:
			walk(nT.x)
			walk(nT.y)
		default:
			panic(fmt.Sprintf("node type %T not supported", n))
		}
	}
	walk(n)
	return vars
}
