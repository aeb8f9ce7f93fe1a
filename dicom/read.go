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
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// readDataElement reads one complete Data Element from the stream. It returns
// io.EOF in two cases: the stream is exhausted at an element boundary, or an
// Item Delimitation tag is found, which terminates the enclosing
// undefined-length item. The second case never occurs for a top level data
// set.
func readDataElement(dr *dcmReader, syntax transferSyntax) (*DataElement, error) {
	tag, err := dr.Tag(syntax.byteOrder())
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading tag: %w", err)
	}

	if tag == ItemDelimitationItemTag {
		length, err := dr.UInt32(syntax.byteOrder())
		if err != nil {
			return nil, fmt.Errorf("reading length of item delimitation: %w", err)
		}
		if length != 0 {
			return nil, fmt.Errorf("%w: item delimitation with length %d", ErrMalformedHeader, length)
		}
		return nil, io.EOF
	}

	return readDataElementBody(dr, tag, syntax)
}

// readDataElementBody reads the remainder of a Data Element whose tag has
// already been consumed.
func readDataElementBody(dr *dcmReader, tag DataElementTag, syntax transferSyntax) (*DataElement, error) {
	if !tag.IsValidTag() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTag, tag)
	}

	vr, err := syntax.readVR(dr, tag)
	if err != nil {
		return nil, fmt.Errorf("reading header of %v: %w", tag, err)
	}

	length, err := syntax.readValueLength(dr, vr)
	if err != nil {
		return nil, fmt.Errorf("reading header of %v: %w", tag, err)
	}

	logDebugf("read data element %v %s #%d", tag, vr, length)

	value, err := readValue(dr, tag, vr, length, syntax)
	if err != nil {
		return nil, fmt.Errorf("reading value of %v: %w", tag, err)
	}

	return &DataElement{Tag: tag, VR: vr, ValueField: value, ValueLength: length}, nil
}

func readValue(dr *dcmReader, tag DataElementTag, vr *VR, length uint32, syntax transferSyntax) (interface{}, error) {
	switch vr.kind {
	case textVR, uniqueIdentifierVR:
		return readText(dr, vr, length)
	case numberBinaryVR:
		return readNumberBinary(dr, vr, length, syntax.byteOrder())
	case bulkDataVR:
		return readBulkData(dr, tag, length)
	case sequenceVR:
		return readSequence(dr, length, syntax)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVR, vr)
	}
}

// readText reads a character string value: at most one trailing padding byte
// is stripped, the raw bytes pass through the character repertoire, and the
// result is split on backslashes into its multiplicity. An empty value yields
// VM 1 holding the empty string.
func readText(dr *dcmReader, vr *VR, length uint32) ([]string, error) {
	raw, err := dr.Bytes(int64(length))
	if err != nil {
		return nil, err
	}

	if n := len(raw); n > 0 {
		last := raw[n-1]
		if vr == UIVR {
			// UI values are padded to even length with a null byte
			if last == 0x00 || last == ' ' {
				raw = raw[:n-1]
			}
		} else if last < unicode.MaxASCII && unicode.IsSpace(rune(last)) {
			raw = raw[:n-1]
		}
	}

	value, err := decodeString(raw)
	if err != nil {
		return nil, err
	}

	strs := strings.Split(value, "\\")
	if vr.singleValue && len(strs) > 1 {
		return nil, fmt.Errorf("%w: VM %d for VR %s, want 1", ErrMalformedValue, len(strs), vr)
	}
	return strs, nil
}

func readNumberBinary(dr *dcmReader, vr *VR, length uint32, order binary.ByteOrder) (interface{}, error) {
	if length%vr.elementSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of the %s element size %d",
			ErrMalformedValue, length, vr, vr.elementSize)
	}
	vm := length / vr.elementSize

	var data interface{}
	switch vr {
	case SSVR:
		data = make([]int16, vm)
	case USVR:
		data = make([]uint16, vm)
	case SLVR:
		data = make([]int32, vm)
	case ULVR:
		data = make([]uint32, vm)
	case SVVR:
		data = make([]int64, vm)
	case UVVR:
		data = make([]uint64, vm)
	case FLVR:
		data = make([]float32, vm)
	case FDVR:
		data = make([]float64, vm)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVR, vr)
	}

	if err := binary.Read(dr.cr, order, data); err != nil {
		return nil, fmt.Errorf("reading %d values of VR %s: %w", vm, vr, err)
	}

	return data, nil
}

func readBulkData(dr *dcmReader, tag DataElementTag, length uint32) ([]byte, error) {
	if length == UndefinedLength {
		// Encapsulated Pixel Data is framed by items and accessed through the
		// File frame operations, never buffered as a single element value.
		return nil, fmt.Errorf("%w: undefined length for %v outside pixel data access",
			ErrMalformedHeader, tag)
	}
	return dr.Bytes(int64(length))
}

// readSequence reads an SQ value: a list of items each holding a nested data
// set. A sequence of defined length is consumed exactly to its byte count; a
// sequence of undefined length runs until its Sequence Delimitation item.
func readSequence(dr *dcmReader, length uint32, syntax transferSyntax) (*Sequence, error) {
	seq := NewSequence()

	if length == 0 {
		seq.Lock()
		return seq, nil
	}

	items := dr
	undefined := length == UndefinedLength
	if !undefined {
		items = dr.Limit(int64(length))
	}
	for i := 0; ; i++ {
		logDebugf("read item #%d of sequence", i)
		done, err := readSequenceItem(items, syntax, seq, undefined)
		if err != nil {
			return nil, fmt.Errorf("item #%d: %w", i, err)
		}
		if done {
			break
		}
	}

	seq.Lock()
	return seq, nil
}

// readSequenceItem reads one item of a sequence and appends it. It reports
// done when the sequence is exhausted, either through its Sequence
// Delimitation item or through the end of its defined length.
func readSequenceItem(dr *dcmReader, syntax transferSyntax, seq *Sequence, undefined bool) (bool, error) {
	tag, itemLength, err := readItemHeader(dr)
	if err == io.EOF {
		if undefined {
			return false, fmt.Errorf("unexpected EOF in undefined-length sequence: %w", io.ErrUnexpectedEOF)
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if tag == SequenceDelimitationItemTag {
		if itemLength != 0 {
			return false, fmt.Errorf("%w: sequence delimitation with length %d", ErrMalformedHeader, itemLength)
		}
		return true, nil
	}
	if tag != ItemTag {
		return false, fmt.Errorf("%w: %v where %v was expected", ErrUnexpectedTag, tag, ItemTag)
	}

	item := NewDataSet()
	elements := dr
	if itemLength != UndefinedLength {
		// A defined-length item is byte-counted only; an undefined-length item
		// runs until its Item Delimitation tag.
		elements = dr.Limit(int64(itemLength))
	}
	for {
		element, err := readDataElement(elements, syntax)
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
		if err := item.Insert(element); err != nil {
			return false, err
		}
	}

	item.Lock()
	return false, seq.Append(item)
}

// readItemHeader reads an item header: a tag followed by a 32-bit length.
// Only the Item, Item Delimitation and Sequence Delimitation tags are valid.
// io.EOF is returned untouched when the stream ends at the header boundary.
func readItemHeader(dr *dcmReader) (DataElementTag, uint32, error) {
	tag, err := dr.Tag(binary.LittleEndian)
	if err == io.EOF {
		return 0, 0, io.EOF
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reading item tag: %w", err)
	}

	length, err := dr.UInt32(binary.LittleEndian)
	if err != nil {
		return 0, 0, fmt.Errorf("reading length of item %v: %w", tag, err)
	}

	if !tag.IsItemRelated() {
		return tag, length, fmt.Errorf("%w: invalid item tag %v", ErrMalformedHeader, tag)
	}

	return tag, length, nil
}
