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

package iter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/memlayout/base/iter"
)

func TestProduct(t *testing.T) {
	tests := []struct {
		bounds []iter.Bound
		want   [][]int
	}{
		{
			bounds: []iter.Bound{{Min: 0, Max: 2}, {Min: 0, Max: 1}},
			want:   [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}},
		},
		{
			bounds: []iter.Bound{{Min: 1, Max: 1}, {Min: 3, Max: 4}, {Min: 0, Max: 1}},
			want:   [][]int{{1, 3, 0}, {1, 3, 1}, {1, 4, 0}, {1, 4, 1}},
		},
		{
			bounds: []iter.Bound{{Min: 0, Max: 3}},
			want:   [][]int{{0}, {1}, {2}, {3}},
		},
		{
			bounds: []iter.Bound{{Min: 0, Max: 3}, {Min: 1, Max: 0}},
		},
		{},
	}
	for i, test := range tests {
		var got [][]int
		for idx := range iter.Product(test.bounds...) {
			got = append(got, idx)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("test %d: unexpected product (-want +got):\n%s", i, diff)
		}
	}
}

func TestProductBreak(t *testing.T) {
	var got [][]int
	for idx := range iter.Indices(3, 3) {
		got = append(got, idx)
		if len(got) == 4 {
			break
		}
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}}
	if !cmp.Equal(got, want) {
		t.Errorf("got %v but want %v", got, want)
	}
}

func isEven(n int) bool {
	return n%2 == 0
}

func TestFilter(t *testing.T) {
	var got []int
	for el := range iter.Filter(isEven,
		[]int{0, 1, 2},
		[]int{3, 4, 5},
	) {
		got = append(got, el)
	}
	want := []int{0, 2, 4}
	if !cmp.Equal(got, want) {
		t.Errorf("got %v but want %v", got, want)
	}
}
