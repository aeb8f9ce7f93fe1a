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
)

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
	// JPEG2000LosslessUID is the JPEG 2000 Image Compression (Lossless Only) UID
	JPEG2000LosslessUID = "1.2.840.10008.1.2.4.90"
)

// IsEncapsulatedTransferSyntax reports whether uid selects an encapsulated
// (compressed, item-framed) Pixel Data layout. Only the implicit and explicit
// VR little endian syntaxes and the deflated explicit variant store Pixel
// Data natively; every other UID is treated as encapsulated.
func IsEncapsulatedTransferSyntax(uid string) bool {
	switch uid {
	case ImplicitVRLittleEndianUID, ExplicitVRLittleEndianUID, DeflatedExplicitVRLittleEndianUID:
		return false
	}
	return true
}

func lookupTransferSyntax(uid string) transferSyntax {
	if uid == ImplicitVRLittleEndianUID {
		return implicitVRLittleEndian
	}
	if uid == DeflatedExplicitVRLittleEndianUID {
		return deflatedExplicitVRLittleEndian
	}

	// any other syntax is read as explicit VR little endian according to
	// PS3.5 A.4
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
	return explicitVRLittleEndian
}

const (
	vrSize  = 2
	tagSize = 4
)

// transferSyntax owns the parts of element header decoding that differ
// between the implicit and explicit VR encodings. All nested elements of a
// data set inherit the syntax of their file.
type transferSyntax interface {
	byteOrder() binary.ByteOrder
	isDeflated() bool
	readVR(dr *dcmReader, tag DataElementTag) (*VR, error)
	readValueLength(dr *dcmReader, vr *VR) (uint32, error)
}

type implicitSyntax struct{}

func (implicitSyntax) byteOrder() binary.ByteOrder {
	return binary.LittleEndian
}

func (implicitSyntax) isDeflated() bool {
	return false
}

func (implicitSyntax) readVR(dr *dcmReader, tag DataElementTag) (*VR, error) {
	return tag.DictionaryVR(), nil
}

func (implicitSyntax) readValueLength(dr *dcmReader, vr *VR) (uint32, error) {
	return dr.UInt32(binary.LittleEndian)
}

type explicitSyntax struct {
	deflated bool
}

func (s explicitSyntax) byteOrder() binary.ByteOrder {
	return binary.LittleEndian
}

func (s explicitSyntax) isDeflated() bool {
	return s.deflated
}

func (s explicitSyntax) readVR(dr *dcmReader, tag DataElementTag) (*VR, error) {
	vrString, err := dr.String(vrSize)
	if err != nil {
		return nil, fmt.Errorf("reading VR of %v: %w", tag, err)
	}

	return lookupVRByName(vrString)
}

func (s explicitSyntax) readValueLength(dr *dcmReader, vr *VR) (uint32, error) {
	// For explicit VR, lengths are stored in a 16-bit field or, after 2
	// reserved bytes, in a 32-bit field, depending on the VR. The 2 cases are
	// defined at
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
	if vr.shortHeader {
		length, err := dr.UInt16(binary.LittleEndian)
		if err != nil {
			return 0, fmt.Errorf("reading 16 bit length: %w", err)
		}
		return uint32(length), nil
	}

	reserved, err := dr.UInt16(binary.LittleEndian)
	if err != nil {
		return 0, fmt.Errorf("reading reserved field: %w", err)
	}
	if reserved != 0x0000 {
		return 0, fmt.Errorf("%w: non-zero reserved bytes %#04x before 32 bit length of VR %s",
			ErrMalformedHeader, reserved, vr)
	}

	length, err := dr.UInt32(binary.LittleEndian)
	if err != nil {
		return 0, fmt.Errorf("reading 32 bit length: %w", err)
	}
	return length, nil
}

var (
	explicitVRLittleEndian         = explicitSyntax{deflated: false}
	deflatedExplicitVRLittleEndian = explicitSyntax{deflated: true}
	implicitVRLittleEndian         = implicitSyntax{}
)
