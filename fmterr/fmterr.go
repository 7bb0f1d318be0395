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

// Package fmterr provides errors attached to a position in an expression
// source and helpers to format them.
package fmterr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
)

type (
	// ErrorWithPos is an error attached to a position in an expression source.
	ErrorWithPos interface {
		error
		// Source in which the error occurred.
		Source() string
		// Offset of the error in the source, starting at 0.
		Offset() int
		// Err returns the underlying error.
		Err() error
	}

	errorWithPos struct {
		src    string
		offset int
		err    error
	}
)

// Position adds position information to an error.
func Position(src string, offset int, err error) ErrorWithPos {
	return errorWithPos{src: src, offset: offset, err: err}
}

// Errorf returns a formatted error at a position in a source.
func Errorf(src string, offset int, format string, a ...any) error {
	return Position(src, offset, errors.Errorf(format, a...))
}

// Wrapf wraps an error with a formatted message at a position in a source.
func Wrapf(src string, offset int, err error, format string, a ...any) error {
	return Position(src, offset, errors.Wrapf(err, format, a...))
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return fmt.Errorf("memlayout internal error. This is a bug. Please report it. Error:\n%+v", err)
}

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}

// Error returns a string description of the error.
func (err errorWithPos) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	return fmt.Sprintf("col %d: %s", err.offset+1, err.err.Error())
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithPos) Source() string {
	return err.src
}

func (err errorWithPos) Offset() int {
	return err.offset
}

func (err errorWithPos) Err() error {
	return err.err
}

// Highlight returns the source of a positioned error followed by a line
// pointing at the offending column.
// The error message is returned if the error has no position.
func Highlight(err error) string {
	var withPos ErrorWithPos
	if !errors.As(err, &withPos) {
		return err.Error()
	}
	offset := min(max(withPos.Offset(), 0), len(withPos.Source()))
	return fmt.Sprintf("%s\n%s^ %s",
		withPos.Source(),
		strings.Repeat(" ", offset),
		withPos.Err().Error(),
	)
}
