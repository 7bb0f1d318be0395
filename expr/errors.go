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

import "github.com/pkg/errors"

var (
	// ErrTypeMismatch is returned when the right operand of a modulo or a
	// floor division is not a number.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnboundVariable is returned when a variable is absent from a substitution environment.
	ErrUnboundVariable = errors.New("unbound variable")

	// ErrExpressionNotReduced is returned when an expression does not reduce to a number.
	ErrExpressionNotReduced = errors.New("expression not reduced")

	// ErrDivisionByZero is returned when dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidVariable is returned when a variable declaration is invalid.
	ErrInvalidVariable = errors.New("invalid variable")

	// ErrDuplicateVariable is returned when two variables of a table share the same name.
	ErrDuplicateVariable = errors.New("duplicate variable")
)
