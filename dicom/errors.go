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

import "errors"

// Sentinel errors returned by the parsing and file access functions. Errors
// returned from this package wrap one of these values with positional context,
// except I/O failures, which wrap the underlying stream error; callers should
// test with errors.Is.
var (
	// ErrNotDICOM indicates the input does not start with a DICOM Part 10
	// preamble followed by the "DICM" prefix.
	ErrNotDICOM = errors.New("dicom: not a DICOM file")

	// ErrMalformedHeader indicates an element or item header that violates the
	// encoding rules, e.g. non-zero reserved bytes in an explicit VR header or
	// an invalid item tag.
	ErrMalformedHeader = errors.New("dicom: malformed header")

	// ErrUnexpectedTag indicates a structurally valid tag in a position where
	// it is not allowed, e.g. a non-Item tag inside a sequence or a File Meta
	// Information element inside the main data set.
	ErrUnexpectedTag = errors.New("dicom: unexpected tag")

	// ErrInvalidVR indicates a 2-byte VR code outside the recognised set.
	ErrInvalidVR = errors.New("dicom: invalid value representation")

	// ErrInvalidTag indicates a tag that fails the dictionary validity check.
	ErrInvalidTag = errors.New("dicom: invalid tag")

	// ErrUnsupportedVR indicates a recognised VR that the value decoder cannot
	// handle.
	ErrUnsupportedVR = errors.New("dicom: unsupported value representation")

	// ErrDuplicateTag indicates an insert of a tag already present in the
	// data set.
	ErrDuplicateTag = errors.New("dicom: duplicate tag")

	// ErrSealed indicates a mutation of a locked data set or sequence.
	ErrSealed = errors.New("dicom: data set is sealed")

	// ErrMissingElement indicates a required data element was not found.
	ErrMissingElement = errors.New("dicom: missing data element")

	// ErrMalformedValue indicates a value that cannot be interpreted under its
	// VR, e.g. a non-numeric Number of Frames or a multi-valued ST element.
	ErrMalformedValue = errors.New("dicom: malformed value")

	// ErrNoOffsetTable indicates an encapsulated file whose Basic Offset Table
	// item is empty and that carries no Extended Offset Table.
	ErrNoOffsetTable = errors.New("dicom: no offset table")

	// ErrInvalidIndex indicates a value or item access outside the valid range.
	ErrInvalidIndex = errors.New("dicom: invalid index")

	// ErrBadArgument indicates an argument the caller must not pass, e.g. a
	// frame number of zero.
	ErrBadArgument = errors.New("dicom: bad argument")
)
