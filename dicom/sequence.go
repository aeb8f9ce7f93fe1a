// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"fmt"
	"strings"
)

// Sequence models a DICOM Sequence of Items: an ordered list of Data Sets
// nested inside an SQ Data Element. A Sequence takes ownership of appended
// items and mirrors the DataSet lifecycle: mutable while parsing, sealed by
// Lock.
type Sequence struct {
	items  []*DataSet
	locked bool
}

// NewSequence returns an empty mutable Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Append adds item to the end of the Sequence, taking ownership of it.
// Appending to a locked Sequence fails with ErrSealed.
func (seq *Sequence) Append(item *DataSet) error {
	if seq.locked {
		return fmt.Errorf("appending item: %w", ErrSealed)
	}
	seq.items = append(seq.items, item)
	return nil
}

// Get returns the item at index (0-based). An index outside [0, Count())
// fails with ErrInvalidIndex.
func (seq *Sequence) Get(index int) (*DataSet, error) {
	if index < 0 || index >= len(seq.items) {
		return nil, fmt.Errorf("%w: item %d of %d", ErrInvalidIndex, index, len(seq.items))
	}
	return seq.items[index], nil
}

// Count returns the number of items in the Sequence.
func (seq *Sequence) Count() int {
	return len(seq.items)
}

// Lock seals the Sequence and all of its items. The transition is one-way.
func (seq *Sequence) Lock() {
	seq.locked = true
	for _, item := range seq.items {
		item.Lock()
	}
}

// IsLocked reports whether the Sequence has been sealed.
func (seq *Sequence) IsLocked() bool {
	return seq.locked
}

func (seq *Sequence) String() string {
	return seq.string(0)
}

func (seq *Sequence) string(indentLvl int) string {
	lines := make([]string, 0, len(seq.items))
	for _, item := range seq.items {
		lines = append(lines, item.string(indentLvl+1))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n")
}
