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

// Package memory models a simulated linear memory as a sequence of
// address-indexed slots.
package memory

import (
	"strconv"

	"github.com/gx-org/memlayout/base/iter"
	"github.com/pkg/errors"
)

// Kind of a memory slot.
type Kind int

const (
	// Empty is a slot not referenced by any element.
	Empty Kind = iota
	// Filled is a slot holding an element.
	Filled
	// Masked is a slot holding an element excluded by a validity predicate.
	Masked
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Filled:
		return "filled"
	case Masked:
		return "masked"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Slot is one addressable unit of memory.
// Two slots are equal if they have the same kind and the same address.
type Slot struct {
	Kind    Kind
	Address int
}

// NewFilled returns a filled slot at a given address.
func NewFilled(addr int) Slot {
	return Slot{Kind: Filled, Address: addr}
}

// NewEmpty returns an empty slot at a given address.
func NewEmpty(addr int) Slot {
	return Slot{Kind: Empty, Address: addr}
}

// NewMasked returns a masked slot at a given address.
func NewMasked(addr int) Slot {
	return Slot{Kind: Masked, Address: addr}
}

// Mask returns a masked copy of the slot at the same address.
func (s Slot) Mask() Slot {
	return NewMasked(s.Address)
}

// String returns the label of the slot.
// The address is written with decimal digits after a 0x prefix.
func (s Slot) String() string {
	return "0x" + strconv.Itoa(s.Address)
}

// ErrNegativeAddress is returned when an element is placed before the start of the memory.
var ErrNegativeAddress = errors.New("negative address")

// Builder marks addresses as filled and builds a dense sequence of slots.
type Builder struct {
	filled []bool
}

// Fill marks an address as filled. Filling the same address twice is a no-op.
func (b *Builder) Fill(addr int) error {
	if addr < 0 {
		return errors.Wrapf(ErrNegativeAddress, "cannot fill address %d", addr)
	}
	if addr >= len(b.filled) {
		b.filled = append(b.filled, make([]bool, addr+1-len(b.filled))...)
	}
	b.filled[addr] = true
	return nil
}

// Slots returns one slot per address from 0 to the largest filled address.
// Addresses that have not been filled are empty.
func (b *Builder) Slots() []Slot {
	slots := make([]Slot, len(b.filled))
	for addr, filled := range b.filled {
		if filled {
			slots[addr] = NewFilled(addr)
		} else {
			slots[addr] = NewEmpty(addr)
		}
	}
	return slots
}

// FillGaps inserts empty slots for all the addresses strictly between two
// consecutive slots. The input must be sorted by address.
func FillGaps(sorted []Slot) []Slot {
	if len(sorted) == 0 {
		return nil
	}
	filled := []Slot{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		for addr := prev.Address + 1; addr < cur.Address; addr++ {
			filled = append(filled, NewEmpty(addr))
		}
		filled = append(filled, cur)
	}
	return filled
}

// Summary counts the slots of each kind.
type Summary struct {
	Filled, Empty, Masked int
}

// Summarize counts the slots of each kind.
func Summarize(slots []Slot) Summary {
	var s Summary
	s.Filled = count(slots, Filled)
	s.Empty = count(slots, Empty)
	s.Masked = count(slots, Masked)
	return s
}

func count(slots []Slot, kind Kind) int {
	n := 0
	for range iter.Filter(func(s Slot) bool { return s.Kind == kind }, slots) {
		n++
	}
	return n
}
