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

package parser

import (
	"math/big"

	"github.com/gx-org/memlayout/expr"
	"github.com/gx-org/memlayout/fmterr"
)

type (
	// parser holds the state shared by all parenthesis levels.
	parser struct {
		src    string
		vars   *expr.Table
		limits Limits
	}

	// scanner scans one parenthesis level of the source.
	scanner struct {
		*parser
		// text of the level and its offset in the source.
		text   string
		offset int
		depth  int

		pos        int
		iterations int
		stack      []expr.Node

		// Pending operator and its position in text.
		op    string
		opPos int
	}

	// stateFn scans from the current position and returns the next state.
	// A nil state ends the scan.
	stateFn func(*scanner) (stateFn, error)
)

func (s *scanner) errorf(pos int, err error, format string, a ...any) error {
	return fmterr.Wrapf(s.src, s.offset+pos, err, format, a...)
}

func (s *scanner) limitError(pos int, limit string, value int) error {
	return s.errorf(pos, ErrResourceLimitExceeded, "%s of %d exceeded", limit, value)
}

func (s *scanner) scan() (expr.Node, error) {
	if s.depth > s.limits.MaxDepth {
		return nil, s.limitError(0, "maximum depth", s.limits.MaxDepth)
	}
	for state := scanToken; state != nil; {
		var err error
		if state, err = state(s); err != nil {
			return nil, err
		}
	}
	return s.result()
}

// scanToken dispatches on the character at the current position.
func scanToken(s *scanner) (stateFn, error) {
	if s.pos >= len(s.text) {
		return nil, nil
	}
	if s.iterations++; s.iterations > s.limits.MaxIterations {
		return nil, s.limitError(s.pos, "maximum number of iterations", s.limits.MaxIterations)
	}
	if s.pos >= s.limits.MaxLength {
		return nil, s.limitError(s.pos, "maximum length", s.limits.MaxLength)
	}
	c := s.text[s.pos]
	switch {
	case isDigit(c):
		return scanNumber, nil
	case isLetter(c):
		return scanIdentifier, nil
	case c == '(':
		return scanParens, nil
	case isOperatorChar(c) && c != '=':
		return scanOperator, nil
	}
	return nil, s.errorf(s.pos, ErrInvalidOperator, "unexpected character %q", c)
}

func scanNumber(s *scanner) (stateFn, error) {
	start := s.pos
	end := start
	for end < len(s.text) && isDigit(s.text[end]) {
		end++
		if end-start > s.limits.MaxDigits {
			return nil, s.limitError(start, "maximum number of digits", s.limits.MaxDigits)
		}
	}
	if end < len(s.text) && (s.text[end] == '.' || isLetter(s.text[end])) {
		return nil, s.errorf(end, ErrMalformedNumber, "unexpected %q after %s", s.text[end], s.text[start:end])
	}
	val, ok := new(big.Int).SetString(s.text[start:end], 10)
	if !ok {
		return nil, s.errorf(start, ErrMalformedNumber, "cannot parse %s", s.text[start:end])
	}
	s.pos = end
	return s.applyOperator(start, expr.NewRat(new(big.Rat).SetInt(val)))
}

func scanIdentifier(s *scanner) (stateFn, error) {
	start := s.pos
	end := start
	for end < len(s.text) && (isLetter(s.text[end]) || isDigit(s.text[end])) {
		end++
		if end-start > s.limits.MaxIdentifier {
			return nil, s.limitError(start, "maximum identifier length", s.limits.MaxIdentifier)
		}
	}
	name := s.text[start:end]
	v, ok := s.vars.Lookup(name)
	if !ok {
		return nil, s.errorf(start, ErrUnboundVariableInSource, "cannot resolve %s", name)
	}
	s.pos = end
	return s.applyOperator(start, v)
}

func scanParens(s *scanner) (stateFn, error) {
	start := s.pos
	count := 1
	end := start + 1
	for ; end < len(s.text); end++ {
		if end-start > s.limits.MaxLength {
			return nil, s.limitError(start, "maximum length", s.limits.MaxLength)
		}
		switch s.text[end] {
		case '(':
			count++
		case ')':
			count--
		}
		if count == 0 {
			break
		}
	}
	if count != 0 {
		return nil, s.errorf(start, ErrUnbalancedParentheses, "( not closed")
	}
	sub := &scanner{
		parser: s.parser,
		text:   s.text[start+1 : end],
		offset: s.offset + start + 1,
		depth:  s.depth + 1,
	}
	node, err := sub.scan()
	if err != nil {
		return nil, err
	}
	s.pos = end + 1
	return s.applyOperator(start, node)
}

var twoCharOperators = map[string]bool{
	"//": true,
	"<=": true,
	">=": true,
}

func scanOperator(s *scanner) (stateFn, error) {
	start := s.pos
	op := s.text[start : start+1]
	if start+2 <= len(s.text) && twoCharOperators[s.text[start:start+2]] {
		op = s.text[start : start+2]
	}
	if s.op != "" {
		return nil, s.errorf(start, ErrInvalidOperator, "operator %s cannot follow operator %s", op, s.op)
	}
	if len(s.stack) == 0 && op != "-" {
		return nil, s.errorf(start, ErrMalformedExpression, "operator %s has no left operand", op)
	}
	s.op, s.opPos = op, start
	s.pos += len(op)
	return scanToken, nil
}

// applyOperator pushes a value on the stack, combining it with the top of
// the stack if an operator is pending.
func (s *scanner) applyOperator(pos int, y expr.Node) (stateFn, error) {
	op := s.op
	s.op = ""
	if op == "" {
		s.stack = append(s.stack, y)
		return scanToken, nil
	}
	if op == "-" && len(s.stack) == 0 {
		s.stack = append(s.stack, expr.Neg(y))
		return scanToken, nil
	}
	x := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	node, err := s.combine(op, x, y, pos)
	if err != nil {
		return nil, err
	}
	s.stack = append(s.stack, node)
	return scanToken, nil
}

func (s *scanner) combine(op string, x, y expr.Node, pos int) (expr.Node, error) {
	switch op {
	case "+":
		return expr.NewSum(x, y), nil
	case "-":
		return expr.NewSum(x, expr.Neg(y)), nil
	case "*":
		return expr.NewMul(x, y), nil
	case "/":
		return expr.NewDiv(x, y), nil
	case "%", "//":
		yn, err := s.divisor(op, y, pos)
		if err != nil {
			return nil, err
		}
		if op == "%" {
			return expr.NewMod(x, yn), nil
		}
		return expr.NewFloorDiv(x, yn), nil
	case "<":
		return expr.Lt(x, y), nil
	case "<=":
		return expr.Le(x, y), nil
	case ">":
		return expr.Gt(x, y), nil
	case ">=":
		return expr.Ge(x, y), nil
	case "&":
		return expr.And(x, y), nil
	}
	return nil, fmterr.Internal(s.errorf(s.opPos, ErrInvalidOperator, "operator %s not supported", op))
}

func (s *scanner) divisor(op string, y expr.Node, pos int) (*expr.Number, error) {
	yn, ok := y.(*expr.Number)
	if !ok {
		return nil, s.errorf(pos, expr.ErrTypeMismatch, "right operand of %s must be a number, got %s", op, y)
	}
	if yn.Value().Sign() == 0 {
		return nil, s.errorf(pos, expr.ErrDivisionByZero, "right operand of %s", op)
	}
	return yn, nil
}

// result folds the stack into a single expression.
func (s *scanner) result() (expr.Node, error) {
	if len(s.stack) > 1 && s.op != "" {
		y := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if _, err := s.applyOperator(s.opPos, y); err != nil {
			return nil, err
		}
	}
	if s.op != "" {
		return nil, s.errorf(s.opPos, ErrMalformedExpression, "operator %s has no right operand", s.op)
	}
	switch len(s.stack) {
	case 0:
		return nil, s.errorf(0, ErrMalformedExpression, "empty expression")
	case 1:
		return s.stack[0], nil
	}
	return nil, s.errorf(len(s.text), ErrMalformedExpression, "%d values without operators between them", len(s.stack))
}
