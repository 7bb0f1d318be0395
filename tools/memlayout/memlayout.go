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

// Binary memlayout prints how the elements of an array are laid out in memory.
//
// The layout is described either by a shape and a stride:
//
//	memlayout strides --shape 3,4 --stride 1,4 --masks 0:1,1:2
//
// by an index expression over bounded variables:
//
//	memlayout expr --var idx0=0:2 --var idx1=0:1 --expr "idx0 * 2 + idx1"
//
// or by a YAML scenario:
//
//	memlayout run --config scenario.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
