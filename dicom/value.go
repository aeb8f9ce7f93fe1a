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

// NewElement constructs a DataElement from a tag, a VR and a value. The value
// must be of the Go type matching the VR category: []string for character
// string VRs, the matching numeric slice for fixed-width numeric VRs, []byte
// for the binary buffer VRs and *Sequence for SQ. The VM-1 constraint of
// ST/LT/UR/UT is enforced here as it is during parsing.
func NewElement(tag DataElementTag, vr *VR, value interface{}) (*DataElement, error) {
	if !tag.IsValidTag() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTag, tag)
	}

	var length uint32
	switch vr.kind {
	case textVR, uniqueIdentifierVR:
		strs, ok := value.([]string)
		if !ok {
			return nil, fmt.Errorf("%w: %v value for VR %s, want []string", ErrBadArgument, tag, vr)
		}
		if len(strs) == 0 {
			return nil, fmt.Errorf("%w: %v has no value, want VM >= 1", ErrBadArgument, tag)
		}
		if vr.singleValue && len(strs) > 1 {
			return nil, fmt.Errorf("%w: %v has VM %d, VR %s requires VM 1",
				ErrMalformedValue, tag, len(strs), vr)
		}
		length = uint32(len(strings.Join(strs, "\\")))
	case numberBinaryVR:
		vm, err := numericLength(vr, value)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", tag, err)
		}
		length = vm * vr.elementSize
	case bulkDataVR:
		buf, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: %v value for VR %s, want []byte", ErrBadArgument, tag, vr)
		}
		length = uint32(len(buf))
	case sequenceVR:
		if _, ok := value.(*Sequence); !ok {
			return nil, fmt.Errorf("%w: %v value for VR SQ, want *Sequence", ErrBadArgument, tag)
		}
		length = UndefinedLength
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVR, vr)
	}

	return &DataElement{Tag: tag, VR: vr, ValueField: value, ValueLength: length}, nil
}

func numericLength(vr *VR, value interface{}) (uint32, error) {
	var vm int
	var ok bool
	switch vr {
	case SSVR:
		var v []int16
		v, ok = value.([]int16)
		vm = len(v)
	case USVR:
		var v []uint16
		v, ok = value.([]uint16)
		vm = len(v)
	case SLVR:
		var v []int32
		v, ok = value.([]int32)
		vm = len(v)
	case ULVR:
		var v []uint32
		v, ok = value.([]uint32)
		vm = len(v)
	case SVVR:
		var v []int64
		v, ok = value.([]int64)
		vm = len(v)
	case UVVR:
		var v []uint64
		v, ok = value.([]uint64)
		vm = len(v)
	case FLVR:
		var v []float32
		v, ok = value.([]float32)
		vm = len(v)
	case FDVR:
		var v []float64
		v, ok = value.([]float64)
		vm = len(v)
	}
	if !ok {
		return 0, fmt.Errorf("%w: value for VR %s has wrong element type", ErrBadArgument, vr)
	}
	return uint32(vm), nil
}

// ValueMultiplicity returns the number of values inside the element: the
// number of backslash-separated substrings for character string VRs, the
// number of array elements for numeric VRs, and 1 for binary buffers and
// sequences.
func (e *DataElement) ValueMultiplicity() int {
	switch v := e.ValueField.(type) {
	case []string:
		return len(v)
	case []int16:
		return len(v)
	case []uint16:
		return len(v)
	case []int32:
		return len(v)
	case []uint32:
		return len(v)
	case []int64:
		return len(v)
	case []uint64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		return 1
	}
}

// Strings returns the string values of a character string element. The
// returned slice is owned by the element.
func (e *DataElement) Strings() ([]string, error) {
	v, ok := e.ValueField.([]string)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a character string element", ErrBadArgument, e.Tag)
	}
	return v, nil
}

// StringValue returns the string value at index.
func (e *DataElement) StringValue(index int) (string, error) {
	v, err := e.Strings()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(v) {
		return "", fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// Bytes returns the raw value of a binary buffer element. The returned slice
// is owned by the element.
func (e *DataElement) Bytes() ([]byte, error) {
	v, ok := e.ValueField.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a binary buffer element", ErrBadArgument, e.Tag)
	}
	return v, nil
}

// Sequence returns the nested Sequence of an SQ element.
func (e *DataElement) Sequence() (*Sequence, error) {
	v, ok := e.ValueField.(*Sequence)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a sequence element", ErrBadArgument, e.Tag)
	}
	return v, nil
}

// Int16Value returns the value at index of an SS element.
func (e *DataElement) Int16Value(index int) (int16, error) {
	v, ok := e.ValueField.([]int16)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no int16 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// UInt16Value returns the value at index of a US element.
func (e *DataElement) UInt16Value(index int) (uint16, error) {
	v, ok := e.ValueField.([]uint16)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no uint16 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// Int32Value returns the value at index of an SL element.
func (e *DataElement) Int32Value(index int) (int32, error) {
	v, ok := e.ValueField.([]int32)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no int32 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// UInt32Value returns the value at index of a UL element.
func (e *DataElement) UInt32Value(index int) (uint32, error) {
	v, ok := e.ValueField.([]uint32)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no uint32 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// Int64Value returns the value at index of an SV element.
func (e *DataElement) Int64Value(index int) (int64, error) {
	v, ok := e.ValueField.([]int64)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no int64 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// UInt64Value returns the value at index of a UV element.
func (e *DataElement) UInt64Value(index int) (uint64, error) {
	v, ok := e.ValueField.([]uint64)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no uint64 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// Float32Value returns the value at index of an FL element.
func (e *DataElement) Float32Value(index int) (float32, error) {
	v, ok := e.ValueField.([]float32)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no float32 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}

// Float64Value returns the value at index of an FD element.
func (e *DataElement) Float64Value(index int) (float64, error) {
	v, ok := e.ValueField.([]float64)
	if !ok {
		return 0, fmt.Errorf("%w: %v holds no float64 values", ErrBadArgument, e.Tag)
	}
	if index < 0 || index >= len(v) {
		return 0, fmt.Errorf("%w: value %d of %v with VM %d", ErrInvalidIndex, index, e.Tag, len(v))
	}
	return v[index], nil
}
