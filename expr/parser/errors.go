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

import "github.com/pkg/errors"

var (
	// ErrUnbalancedParentheses is returned when parentheses do not match.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")

	// ErrUnknownVariable is returned when an identifier of the source is not
	// declared in the variable table.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrUnboundVariableInSource is returned when the parser reaches an
	// identifier it cannot resolve.
	ErrUnboundVariableInSource = errors.New("unbound variable in source")

	// ErrMalformedNumber is returned for number literals that cannot be parsed.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrInvalidOperator is returned for unknown characters and operators
	// that cannot follow the previous token.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrMalformedExpression is returned when the tokens do not fold into a
	// single expression.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrResourceLimitExceeded is returned when the source exceeds one of the parser limits.
	ErrResourceLimitExceeded = errors.New("resource limit exceeded")
)
