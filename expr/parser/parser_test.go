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

package parser_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/memlayout/expr"
	"github.com/gx-org/memlayout/expr/parser"
	"github.com/gx-org/memlayout/fmterr"
	"github.com/pkg/errors"
)

type variable struct {
	name     string
	min, max int64
}

func newTable(t *testing.T, vars ...variable) *expr.Table {
	t.Helper()
	var vs []*expr.Variable
	for _, v := range vars {
		ev, err := expr.NewVariable(v.name, v.min, v.max)
		if err != nil {
			t.Fatal(err)
		}
		vs = append(vs, ev)
	}
	table, err := expr.NewTable(vs...)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestParseArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "(1 + 2 + 3)", want: "((1 + 2) + 3)"},
		{src: "1 + 2 + 3", want: "((1 + 2) + 3)"},
		{src: "1 * 2 * 3", want: "((1 * 2) * 3)"},
		{src: "1 * (2 * 3)", want: "(1 * (2 * 3))"},
		{src: "(( 1 + 2 ) * 3)", want: "((1 + 2) * 3)"},
		{src: "12 + 4", want: "(12 + 4)"},
		{src: "13 // 4", want: "(13 // 4)"},
		{src: "13 / 4", want: "(13 / 4)"},
		{src: "13 % 4", want: "(13 % 4)"},
		{src: "-3", want: "-3"},
		{src: "2 * -3", want: "(2 * -3)"},
		{src: "5 - 3", want: "(5 + -3)"},
		{src: "5 - -3", want: "(5 + 3)"},
		{src: "1 < 2 and 3", want: "((1 < 2) & 3)"},
		{src: "1 <= 2", want: "(1 < (2 + 1))"},
		{src: "1 >= 2", want: "(1 > (2 + -1))"},
		{src: "7 > 2", want: "(7 > 2)"},
	}
	for i, test := range tests {
		node, err := parser.Parse(test.src, nil)
		if err != nil {
			t.Errorf("test %d: cannot parse %q: %+v", i, test.src, err)
			continue
		}
		if got := node.String(); got != test.want {
			t.Errorf("test %d: parse(%q) = %q but want %q", i, test.src, got, test.want)
		}
	}
}

func TestParseVariables(t *testing.T) {
	abc := []variable{{"a", 0, 1}, {"b", 0, 1}, {"c", 0, 1}}
	idx01 := []variable{{"idx0", 0, 1}, {"idx1", 0, 1}}
	tests := []struct {
		src  string
		vars []variable
		want string
	}{
		{src: "(a + b)", vars: abc, want: "(a + b)"},
		{src: "(a + b) * c", vars: abc, want: "((a + b) * c)"},
		{src: "a + (b * c)", vars: abc, want: "(a + (b * c))"},
		{src: "a + 12", vars: abc, want: "(a + 12)"},
		{src: "(a + b) + b", vars: abc, want: "((a + b) + b)"},
		{src: "a - b", vars: abc, want: "(a + (-1 * b))"},
		{src: "a - 3", vars: abc, want: "(a + -3)"},
		{src: "-a", vars: abc, want: "(-1 * a)"},
		{src: "a <= 10", vars: []variable{{"a", 0, 20}}, want: "(a < (10 + 1))"},
		{src: "a >= 10", vars: []variable{{"a", 0, 20}}, want: "(a > (10 + -1))"},
		{src: "(a < 2) and (b < 1)", vars: abc, want: "((a < 2) & (b < 1))"},
		{src: "(idx0 + 2) * 3 + idx1", vars: idx01, want: "(((idx0 + 2) * 3) + idx1)"},
		{src: "idx0 + idx0 + 1", vars: idx01, want: "((idx0 + idx0) + 1)"},
		{src: "(idx0 * 2) % 3 // 4", vars: idx01, want: "(((idx0 * 2) % 3) // 4)"},
		{
			src:  "((((((idx0 * 2) % 3) + idx1) % 3) * 3) + ((((idx0 * 2) + idx1) // 3) * 3))",
			vars: idx01,
			want: "((((((idx0 * 2) % 3) + idx1) % 3) * 3) + ((((idx0 * 2) + idx1) // 3) * 3))",
		},
		{
			src:  "(((idx2%5)*5)+(idx0*125)+(idx1*25)+(idx3%5))",
			vars: []variable{{"idx0", 0, 1}, {"idx1", 0, 1}, {"idx2", 0, 1}, {"idx3", 0, 1}},
			want: "(((((idx2 % 5) * 5) + (idx0 * 125)) + (idx1 * 25)) + (idx3 % 5))",
		},
		{
			src: "((idx0*125)+(idx3*5)+(idx5*25)+(idx6*5)+idx4+idx7)",
			vars: []variable{
				{"idx0", 0, 1}, {"idx3", 0, 2}, {"idx4", 0, 2},
				{"idx5", 0, 4}, {"idx6", 0, 2}, {"idx7", 0, 2},
			},
			want: "((((((idx0 * 125) + (idx3 * 5)) + (idx5 * 25)) + (idx6 * 5)) + idx4) + idx7)",
		},
		{
			src:  "((idx2*45)+(idx5*9)+(idx6*3)+idx7)",
			vars: []variable{{"idx2", 0, 3}, {"idx5", 0, 4}, {"idx6", 0, 2}, {"idx7", 0, 2}},
			want: "((((idx2 * 45) + (idx5 * 9)) + (idx6 * 3)) + idx7)",
		},
	}
	for i, test := range tests {
		table := newTable(t, test.vars...)
		node, err := parser.Parse(test.src, table)
		if err != nil {
			t.Errorf("test %d: cannot parse %q: %+v", i, test.src, err)
			continue
		}
		if got := node.String(); got != test.want {
			t.Errorf("test %d: parse(%q) = %q but want %q", i, test.src, got, test.want)
		}
		// Rendering then parsing again is stable.
		again, err := parser.Parse(node.String(), table)
		if err != nil {
			t.Errorf("test %d: cannot parse rendered %q: %+v", i, node.String(), err)
			continue
		}
		if again.String() != node.String() {
			t.Errorf("test %d: render is not stable: %q then %q", i, node.String(), again.String())
		}
	}
}

func TestParseAndEvaluate(t *testing.T) {
	table := newTable(t, variable{"idx0", 0, 2}, variable{"idx1", 0, 1})
	node, err := parser.Parse("((((((idx0 * 2) % 3) + idx1) % 3) * 3) + ((((idx0 * 2) + idx1) // 3) * 3))", table)
	if err != nil {
		t.Fatal(err)
	}
	var got []int64
	for idx0 := int64(0); idx0 <= 2; idx0++ {
		for idx1 := int64(0); idx1 <= 1; idx1++ {
			env := expr.Env{"idx0": expr.NewNumber(idx0), "idx1": expr.NewNumber(idx1)}
			n, err := expr.Reduce(node, env)
			if err != nil {
				t.Fatal(err)
			}
			v, _ := n.Int64()
			got = append(got, v)
		}
	}
	want := []int64{0, 3, 6, 3, 6, 9}
	if !cmp.Equal(got, want) {
		t.Errorf("got %v but want %v", got, want)
	}
}

func TestParseRange(t *testing.T) {
	table := newTable(t, variable{"a", 0, 10}, variable{"b", 0, 10})
	node, err := parser.Parse("a * b * a", table)
	if err != nil {
		t.Fatal(err)
	}
	rng := node.Range()
	if rng.Min.Sign() != 0 || rng.Max.Cmp(big.NewRat(1000, 1)) != 0 {
		t.Errorf("got range %s but want [0, 1000]", rng)
	}
}

func TestParseErrors(t *testing.T) {
	ab := []variable{{"a", 0, 1}, {"b", 0, 1}}
	tests := []struct {
		src    string
		vars   []variable
		err    error
		offset int
	}{
		{src: "(a + b", vars: ab, err: parser.ErrUnbalancedParentheses, offset: 4},
		{src: "a + b)", vars: ab, err: parser.ErrUnbalancedParentheses, offset: 3},
		{src: ")a + b(", vars: ab, err: parser.ErrUnbalancedParentheses, offset: 0},
		{src: "a + c", vars: ab, err: parser.ErrUnknownVariable, offset: 2},
		{src: "1 + c", err: parser.ErrUnboundVariableInSource, offset: 2},
		{src: "1.5 + 2", err: parser.ErrMalformedNumber, offset: 1},
		{src: "2a", vars: ab, err: parser.ErrMalformedNumber, offset: 1},
		{src: "1 + * 2", err: parser.ErrInvalidOperator, offset: 2},
		{src: "1 # 2", err: parser.ErrInvalidOperator, offset: 1},
		{src: "* 2", err: parser.ErrMalformedExpression, offset: 0},
		{src: "1 +", err: parser.ErrMalformedExpression, offset: 1},
		{src: "", err: parser.ErrMalformedExpression, offset: 0},
		{src: "()", err: parser.ErrMalformedExpression, offset: 1},
		{src: "(1)(2)", err: parser.ErrMalformedExpression, offset: 6},
		{src: "a % b", vars: ab, err: expr.ErrTypeMismatch, offset: 2},
		{src: "a // (1 + 2)", vars: ab, err: expr.ErrTypeMismatch, offset: 3},
		{src: "a % 0", vars: ab, err: expr.ErrDivisionByZero, offset: 2},
		{src: "12345678901", err: parser.ErrResourceLimitExceeded, offset: 0},
		{src: "abcdefghijk + 1", vars: []variable{{"abcdefghijk", 0, 1}}, err: parser.ErrResourceLimitExceeded, offset: 0},
	}
	for i, test := range tests {
		var table *expr.Table
		if test.vars != nil {
			table = newTable(t, test.vars...)
		}
		_, err := parser.Parse(test.src, table)
		if !errors.Is(err, test.err) {
			t.Errorf("test %d: parse(%q) returned error %v but want %v", i, test.src, err, test.err)
			continue
		}
		var withPos fmterr.ErrorWithPos
		if !errors.As(err, &withPos) {
			t.Errorf("test %d: error %v has no position", i, err)
			continue
		}
		if withPos.Offset() != test.offset {
			t.Errorf("test %d: parse(%q): error at offset %d but want %d\n%s", i, test.src, withPos.Offset(), test.offset, fmterr.Highlight(err))
		}
	}
}

func TestResourceLimits(t *testing.T) {
	nested := func(depth int) string {
		return strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	}
	if _, err := parser.Parse(nested(10), nil); err != nil {
		t.Errorf("depth 10: unexpected error: %v", err)
	}
	_, err := parser.Parse(nested(11), nil)
	if !errors.Is(err, parser.ErrResourceLimitExceeded) {
		t.Errorf("depth 11: got error %v but want %v", err, parser.ErrResourceLimitExceeded)
	}
	if err != nil && !strings.Contains(err.Error(), "maximum depth") {
		t.Errorf("error %q does not name the limit", err.Error())
	}
	// Deep nesting fails without exhausting the stack.
	if _, err := parser.Parse(nested(100000), nil); !errors.Is(err, parser.ErrResourceLimitExceeded) {
		t.Errorf("depth 100000: got error %v but want %v", err, parser.ErrResourceLimitExceeded)
	}

	long := strings.Repeat("1+", 60) + "1"
	if _, err := parser.Parse(long, nil); !errors.Is(err, parser.ErrResourceLimitExceeded) {
		t.Errorf("got error %v but want %v", err, parser.ErrResourceLimitExceeded)
	}
	limits := parser.DefaultLimits()
	limits.MaxIterations = 1000
	limits.MaxLength = 1000
	if _, err := parser.Parse(long, nil, parser.WithLimits(limits)); err != nil {
		t.Errorf("unexpected error with larger limits: %v", err)
	}

	limits = parser.DefaultLimits()
	limits.MaxDepth = 1
	if _, err := parser.ParseWithLimits(nested(2), nil, limits); !errors.Is(err, parser.ErrResourceLimitExceeded) {
		t.Errorf("got error %v but want %v", err, parser.ErrResourceLimitExceeded)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: " a + b ", want: "a+b"},
		{src: "a<2 and b<1", want: "a<2&b<1"},
		{src: "-3 + 2", want: "(-3)+2"},
		{src: "a - 3", want: "a-3"},
		{src: "a * -3", want: "a*(-3)"},
		{src: "(-12)", want: "((-12))"},
		{src: "a >= -1", want: "a>=(-1)"},
		{src: "-a", want: "-a"},
	}
	for i, test := range tests {
		if got := parser.Normalize(test.src); got != test.want {
			t.Errorf("test %d: Normalize(%q) = %q but want %q", i, test.src, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	ab := newTable(t, variable{"a", 0, 1}, variable{"b", 0, 1})
	idx0 := newTable(t, variable{"idx0", 0, 1})
	tests := []struct {
		src   string
		vars  *expr.Table
		valid bool
	}{
		{src: "(a + b)", vars: ab, valid: true},
		{src: "(a + b) and a", vars: ab, valid: true},
		{src: "(a + c)", vars: nil, valid: true},
		{src: "(a + c)", vars: ab, valid: false},
		{src: "(idx0 + idx1)", vars: idx0, valid: false},
		{src: "(a + b", vars: ab, valid: false},
		{src: "a + b)", vars: nil, valid: false},
	}
	for i, test := range tests {
		valid, reason := parser.Validate(test.src, test.vars)
		if valid != test.valid {
			t.Errorf("test %d: Validate(%q) = %v (%q) but want %v", i, test.src, valid, reason, test.valid)
		}
		if valid && reason != "" {
			t.Errorf("test %d: valid expression with reason %q", i, reason)
		}
		if !valid && reason == "" {
			t.Errorf("test %d: invalid expression without a reason", i)
		}
	}
}

func TestValidateVariablesReportsAll(t *testing.T) {
	table := newTable(t, variable{"a", 0, 1})
	err := parser.ValidateVariables("a+b+c", table)
	if !errors.Is(err, parser.ErrUnknownVariable) {
		t.Fatalf("got error %v but want %v", err, parser.ErrUnknownVariable)
	}
	msg := err.Error()
	for _, name := range []string{"b is not declared", "c is not declared"} {
		if !strings.Contains(msg, name) {
			t.Errorf("error %q does not contain %q", msg, name)
		}
	}
}
