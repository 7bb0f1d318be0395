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

// Package uname provides unique names usable as expression identifiers.
package uname

import "strconv"

type (
	// Unique generates unique names.
	Unique struct {
		used map[string]bool
	}

	// Root generates indexed names from a common root.
	Root struct {
		unames *Unique
		root   string
		next   int
	}
)

// New name generator.
func New() *Unique {
	return &Unique{used: make(map[string]bool)}
}

// Register names already in use.
func (n *Unique) Register(names ...string) {
	for _, name := range names {
		n.used[name] = true
	}
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, the smallest
// available numerical suffix starting at 1 is appended.
func (n *Unique) Name(root string) string {
	name := root
	for i := 1; n.used[name]; i++ {
		name = root + strconv.Itoa(i)
	}
	n.used[name] = true
	return name
}

// Root returns a generator of names root0, root1, ...
func (n *Unique) Root(root string) *Root {
	return &Root{unames: n, root: root}
}

// Next returns the next available indexed name.
// Indices of registered names are skipped.
func (r *Root) Next() string {
	for {
		name := r.root + strconv.Itoa(r.next)
		r.next++
		if !r.unames.used[name] {
			r.unames.used[name] = true
			return name
		}
	}
}

// Root returns the root of the names.
func (r *Root) Root() string {
	return r.root
}
