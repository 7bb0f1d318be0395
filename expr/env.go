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
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Env maps variable names to their values.
// An environment is one point in the iteration space of a set of variables.
type Env map[string]*Number

// String returns the environment with its names in alphabetical order.
func (env Env) String() string {
	names := slices.Sorted(maps.Keys(env))
	ss := make([]string, len(names))
	for i, name := range names {
		ss[i] = name + ": " + env[name].String()
	}
	return "{" + strings.Join(ss, ", ") + "}"
}

// Table is a set of variables with unique names.
// Variables are kept in their declaration order.
type Table struct {
	names []string
	vars  map[string]*Variable
}

// NewTable returns a table of variables.
// It returns an error if two variables have the same name.
func NewTable(vars ...*Variable) (*Table, error) {
	t := &Table{vars: make(map[string]*Variable, len(vars))}
	for _, v := range vars {
		if _, exist := t.vars[v.name]; exist {
			return nil, errors.Wrapf(ErrDuplicateVariable, "variable %s declared more than once", v.name)
		}
		t.names = append(t.names, v.name)
		t.vars[v.name] = v
	}
	return t, nil
}

// Lookup returns a variable given its name.
// A nil table has no variables.
func (t *Table) Lookup(name string) (*Variable, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.vars[name]
	return v, ok
}

// Variables returns the variables in declaration order.
func (t *Table) Variables() []*Variable {
	if t == nil {
		return nil
	}
	vars := make([]*Variable, len(t.names))
	for i, name := range t.names {
		vars[i] = t.vars[name]
	}
	return vars
}

// Names returns the names of the variables in declaration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}

// Len returns the number of variables in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}
