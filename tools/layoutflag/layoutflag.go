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

// Package layoutflag provides flag types for memory layout tools.
package layoutflag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gx-org/memlayout/layout"
	"github.com/gx-org/memlayout/visualize"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

func split(values string) []string {
	var list []string
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		list = append(list, value)
	}
	return list
}

func parseRange(s string) (lo, hi int64, err error) {
	loS, hiS, found := strings.Cut(s, ":")
	if !found {
		loS, hiS = "0", s
	}
	if lo, err = strconv.ParseInt(strings.TrimSpace(loS), 10, 64); err != nil {
		return 0, 0, errors.Errorf("invalid range %q: %v", s, err)
	}
	if hi, err = strconv.ParseInt(strings.TrimSpace(hiS), 10, 64); err != nil {
		return 0, 0, errors.Errorf("invalid range %q: %v", s, err)
	}
	return lo, hi, nil
}

type intList struct {
	list *[]int
}

var _ pflag.Value = (*intList)(nil)

func (il *intList) String() string {
	ss := make([]string, len(*il.list))
	for i, v := range *il.list {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

func (il *intList) Set(values string) error {
	for _, value := range split(values) {
		v, err := strconv.Atoi(value)
		if err != nil {
			return errors.Errorf("invalid integer %q", value)
		}
		*il.list = append(*il.list, v)
	}
	return nil
}

func (il *intList) Type() string {
	return "ints"
}

// IntList returns a flag to pass a list of integers, for example 2,3.
func IntList(fs *pflag.FlagSet, name, doc string) *[]int {
	var list []int
	fs.Var(&intList{&list}, name, doc)
	return &list
}

type maskList struct {
	list *[]layout.Mask
}

var _ pflag.Value = (*maskList)(nil)

func (ml *maskList) String() string {
	ss := make([]string, len(*ml.list))
	for i, m := range *ml.list {
		ss[i] = fmt.Sprintf("%d:%d", m.Lo, m.Hi)
	}
	return strings.Join(ss, ",")
}

func (ml *maskList) Set(values string) error {
	for _, value := range split(values) {
		lo, hi, err := parseRange(value)
		if err != nil {
			return err
		}
		*ml.list = append(*ml.list, layout.Mask{Lo: int(lo), Hi: int(hi)})
	}
	return nil
}

func (ml *maskList) Type() string {
	return "masks"
}

// MaskList returns a flag to pass one mask per axis as lo:hi ranges, for example 0:1,1:2.
func MaskList(fs *pflag.FlagSet, name, doc string) *[]layout.Mask {
	var list []layout.Mask
	fs.Var(&maskList{&list}, name, doc)
	return &list
}

type variableList struct {
	list *[]visualize.Variable
}

var _ pflag.Value = (*variableList)(nil)

func (vl *variableList) String() string {
	ss := make([]string, len(*vl.list))
	for i, v := range *vl.list {
		ss[i] = fmt.Sprintf("%s=%d:%d", v.Name, v.Min, v.Max)
	}
	return strings.Join(ss, ",")
}

func (vl *variableList) Set(values string) error {
	for _, value := range split(values) {
		name, rng, found := strings.Cut(value, "=")
		if !found {
			return errors.Errorf("invalid variable %q: want name=min:max", value)
		}
		lo, hi, err := parseRange(rng)
		if err != nil {
			return err
		}
		*vl.list = append(*vl.list, visualize.Variable{
			Name: strings.TrimSpace(name),
			Min:  lo,
			Max:  hi,
		})
	}
	return nil
}

func (vl *variableList) Type() string {
	return "variables"
}

// VariableList returns a flag to declare variables as name=min:max or
// name=max, for example idx0=0:2,idx1=1.
func VariableList(fs *pflag.FlagSet, name, doc string) *[]visualize.Variable {
	var list []visualize.Variable
	fs.Var(&variableList{&list}, name, doc)
	return &list
}
