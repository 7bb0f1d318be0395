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

package uname_test

import (
	"testing"

	"github.com/gx-org/memlayout/base/uname"
)

func TestName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{
			name: "a",
			want: "a",
		},
		{
			name: "a",
			want: "a1",
		},
		{
			name: "a",
			want: "a2",
		},
		{
			name: "b",
			want: "b",
		},
		{
			name: "b",
			want: "b2",
		},
		{
			name: "c",
			want: "c",
		},
	}
	unames := uname.New()
	unames.Register("b1")
	for i, test := range tests {
		got := unames.Name(test.name)
		if got != test.want {
			t.Errorf("test %d: for name %s, got %s but want %s", i, test.name, got, test.want)
		}
	}
}

func TestRoot(t *testing.T) {
	unames := uname.New()
	unames.Register("idx1", "a", "c0")
	idx := unames.Root("idx")
	c := unames.Root("c")
	tests := []struct {
		root *uname.Root
		want string
	}{
		{
			root: idx,
			want: "idx0",
		},
		{
			root: idx,
			want: "idx2",
		},
		{
			root: c,
			want: "c1",
		},
		{
			root: idx,
			want: "idx3",
		},
	}
	for i, test := range tests {
		got := test.root.Next()
		if got != test.want {
			t.Errorf("test %d: for root %s, got %s but want %s", i, test.root.Root(), got, test.want)
		}
	}
	if got := unames.Name("idx0"); got != "idx01" {
		t.Errorf("got %s but want idx01", got)
	}
}
