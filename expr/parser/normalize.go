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
	"regexp"
	"strings"
	"unicode"

	"github.com/gx-org/memlayout/expr"
	"github.com/gx-org/memlayout/fmterr"
	"go.uber.org/multierr"
)

var identifierPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9]*`)

// Normalize returns the source as scanned by the parser:
// whitespaces are removed, every "and" is replaced by "&", and negative
// number literals in operand position are surrounded by parentheses.
func Normalize(src string) string {
	src = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
	src = strings.ReplaceAll(src, "and", "&")
	return wrapNegativeLiterals(src)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isOperatorChar(c byte) bool {
	return strings.IndexByte("+-*/%<>&=", c) >= 0
}

// wrapNegativeLiterals rewrites -<digits> into (-<digits>) where the minus
// sign cannot be a subtraction.
func wrapNegativeLiterals(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		unary := i == 0 || src[i-1] == '(' || isOperatorChar(src[i-1])
		if c != '-' || !unary || i+1 >= len(src) || !isDigit(src[i+1]) {
			b.WriteByte(c)
			continue
		}
		end := i + 1
		for end < len(src) && isDigit(src[end]) {
			end++
		}
		b.WriteString("(" + src[i:end] + ")")
		i = end - 1
	}
	return b.String()
}

// checkParentheses runs a counter over the source and returns an error
// if the count becomes negative or does not end at zero.
func checkParentheses(src string) error {
	count := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			count++
		case ')':
			count--
		}
		if count < 0 {
			return fmterr.Wrapf(src, i, ErrUnbalancedParentheses, "unexpected )")
		}
	}
	if count != 0 {
		return fmterr.Wrapf(src, len(src), ErrUnbalancedParentheses, "%d parentheses not closed", count)
	}
	return nil
}

// ValidateVariables returns an error for every identifier of a normalized
// source that is not declared in a table.
func ValidateVariables(src string, vars *expr.Table) error {
	var err error
	for _, loc := range identifierPattern.FindAllStringIndex(src, -1) {
		name := src[loc[0]:loc[1]]
		if _, ok := vars.Lookup(name); ok {
			continue
		}
		err = multierr.Append(err, fmterr.Wrapf(src, loc[0], ErrUnknownVariable, "%s is not declared in %v", name, vars.Names()))
	}
	return err
}

// Validate checks the parentheses and the variables of an expression
// without building the expression tree.
// It returns false and the reason if the expression is invalid.
func Validate(src string, vars *expr.Table) (bool, string) {
	norm := Normalize(src)
	if err := checkParentheses(norm); err != nil {
		return false, err.Error()
	}
	if vars == nil {
		return true, ""
	}
	if err := ValidateVariables(norm, vars); err != nil {
		return false, err.Error()
	}
	return true, ""
}
