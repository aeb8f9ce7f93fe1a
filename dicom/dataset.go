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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DataElement models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataElement struct {
	Tag DataElementTag

	// Value Representation
	VR *VR

	// ValueField represents the field within a Data Element that contains its
	// value(s). Can be any of the following types:
	// []string,
	// []byte,
	// []int16,
	// []uint16,
	// []int32,
	// []uint32,
	// []int64,
	// []uint64,
	// []float32,
	// []float64,
	// *Sequence
	ValueField interface{}

	// ValueLength is equal to the length of the ValueField in bytes as stored
	// in the file. Can be equal to 0xFFFFFFFF to represent an undefined
	// length:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32
}

func (e *DataElement) String() string {
	return e.string(0)
}

func (e *DataElement) string(indentLvl int) string {
	indent := strings.Repeat(">", indentLvl)
	length := fmt.Sprintf("%d", e.ValueLength)
	if e.ValueLength == UndefinedLength {
		length = "u"
	}
	head := fmt.Sprintf("%s%s %s #%s", indent, e.Tag, e.VR, length)
	if keyword := e.Tag.Keyword(); keyword != "" {
		head += " " + keyword
	}

	switch v := e.ValueField.(type) {
	case *Sequence:
		return head + v.string(indentLvl)
	case []string:
		return fmt.Sprintf("%s [%s]", head, strings.Join(v, "\\"))
	case []byte:
		return fmt.Sprintf("%s [%d bytes]", head, len(v))
	default:
		value := fmt.Sprint(v)
		value = strings.TrimPrefix(value, "[")
		value = strings.TrimSuffix(value, "]")
		return fmt.Sprintf("%s [%s]", head, strings.ReplaceAll(value, " ", "\\"))
	}
}

// DataSet models a DICOM Data Set as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// A DataSet is created mutable, accepts inserts of uniquely tagged elements,
// and becomes permanently read-only once Lock is called. Parsing locks every
// DataSet it returns, so concurrent readers may share parsed sets freely.
type DataSet struct {
	elements map[DataElementTag]*DataElement
	locked   bool
}

// NewDataSet returns an empty mutable DataSet.
func NewDataSet() *DataSet {
	return &DataSet{elements: map[DataElementTag]*DataElement{}}
}

// Insert adds element to the DataSet. Inserting into a locked DataSet fails
// with ErrSealed; inserting a tag that is already present fails with
// ErrDuplicateTag.
func (ds *DataSet) Insert(element *DataElement) error {
	if ds.locked {
		return fmt.Errorf("inserting %v: %w", element.Tag, ErrSealed)
	}
	if _, ok := ds.elements[element.Tag]; ok {
		return fmt.Errorf("inserting %v: %w", element.Tag, ErrDuplicateTag)
	}
	ds.elements[element.Tag] = element
	return nil
}

// Get returns the element stored under tag. The element remains owned by the
// DataSet. A missing tag fails with ErrMissingElement.
func (ds *DataSet) Get(tag DataElementTag) (*DataElement, error) {
	element, ok := ds.elements[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrMissingElement, tag)
	}
	return element, nil
}

// Contains reports whether the DataSet holds an element under tag.
func (ds *DataSet) Contains(tag DataElementTag) bool {
	_, ok := ds.elements[tag]
	return ok
}

// Count returns the number of elements in the DataSet.
func (ds *DataSet) Count() int {
	return len(ds.elements)
}

// SortedTags returns the tags of the DataSet in ascending order.
func (ds *DataSet) SortedTags() []DataElementTag {
	tags := maps.Keys(ds.elements)
	slices.Sort(tags)
	return tags
}

// SortedElements returns the elements of the DataSet in ascending tag order.
func (ds *DataSet) SortedElements() []*DataElement {
	elements := make([]*DataElement, 0, len(ds.elements))
	for _, tag := range ds.SortedTags() {
		elements = append(elements, ds.elements[tag])
	}
	return elements
}

// Lock seals the DataSet and, recursively, every Sequence nested within it.
// The transition is one-way.
func (ds *DataSet) Lock() {
	ds.locked = true
	for _, element := range ds.elements {
		if seq, ok := element.ValueField.(*Sequence); ok {
			seq.Lock()
		}
	}
}

// IsLocked reports whether the DataSet has been sealed.
func (ds *DataSet) IsLocked() bool {
	return ds.locked
}

func (ds *DataSet) String() string {
	return ds.string(0)
}

func (ds *DataSet) string(indentLvl int) string {
	lines := make([]string, 0, len(ds.elements))
	for _, element := range ds.SortedElements() {
		lines = append(lines, element.string(indentLvl))
	}
	return strings.Join(lines, "\n")
}

// Print writes a human-readable walk of the DataSet to the log sink, one
// line per element, starting at the given indent level.
func (ds *DataSet) Print(indentLvl int) {
	for _, element := range ds.SortedElements() {
		for _, line := range strings.Split(element.string(indentLvl), "\n") {
			logInfof("%s", line)
		}
	}
}
