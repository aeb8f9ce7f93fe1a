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
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func decodeElement(t *testing.T, b []byte, syntax transferSyntax) (*DataElement, error) {
	t.Helper()
	return readDataElement(newDcmReader(bytes.NewReader(b)), syntax)
}

func TestReadDataElement(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		syntax transferSyntax
		want   *DataElement
	}{
		{
			"character string with vm > 1",
			(&testWriter{}).explicitShort(0x00080008, "CS", []byte("A\\B\\C ")).build(),
			explicitVRLittleEndian,
			&DataElement{0x00080008, CSVR, []string{"A", "B", "C"}, 6},
		},
		{
			"empty character string has vm 1 with the empty string",
			(&testWriter{}).explicitShort(0x00080060, "CS", nil).build(),
			explicitVRLittleEndian,
			&DataElement{0x00080060, CSVR, []string{""}, 0},
		},
		{
			"trailing null is stripped from UI values",
			(&testWriter{}).explicitShort(TransferSyntaxUIDTag, "UI", []byte("1.2.840.10008.1.2.1\x00")).build(),
			explicitVRLittleEndian,
			&DataElement{TransferSyntaxUIDTag, UIVR, []string{"1.2.840.10008.1.2.1"}, 20},
		},
		{
			"only one trailing space is insignificant",
			(&testWriter{}).explicitShort(0x00081030, "LO", []byte("a study  ")).build(),
			explicitVRLittleEndian,
			&DataElement{0x00081030, LOVR, []string{"a study "}, 9},
		},
		{
			"unsigned short, little endian, vm > 1",
			(&testWriter{}).explicitShort(0x00280010, "US", uint16Bytes(1, 2, 3)).build(),
			explicitVRLittleEndian,
			&DataElement{0x00280010, USVR, []uint16{1, 2, 3}, 6},
		},
		{
			"signed short, little endian",
			(&testWriter{}).explicitShort(0x00280106, "SS", []byte{0xFF, 0xFF}).build(),
			explicitVRLittleEndian,
			&DataElement{0x00280106, SSVR, []int16{-1}, 2},
		},
		{
			"64-bit float, little endian",
			(&testWriter{}).explicitShort(0x00189459, "FD", []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}).build(),
			explicitVRLittleEndian,
			&DataElement{0x00189459, FDVR, []float64{1.0}, 8},
		},
		{
			"unsigned very long, little endian",
			(&testWriter{}).explicitLong(0x00080301, "UV", []byte{1, 0, 0, 0, 0, 0, 0, 0}).build(),
			explicitVRLittleEndian,
			&DataElement{0x00080301, UVVR, []uint64{1}, 8},
		},
		{
			"OB is buffered as raw bytes",
			(&testWriter{}).explicitLong(0x00420011, "OB", []byte{0xCA, 0xFE, 0xBA, 0xBE}).build(),
			explicitVRLittleEndian,
			&DataElement{0x00420011, OBVR, []byte{0xCA, 0xFE, 0xBA, 0xBE}, 4},
		},
		{
			"implicit VR is resolved through the dictionary",
			(&testWriter{}).implicitElement(RowsTag, uint16Bytes(512)).build(),
			implicitVRLittleEndian,
			&DataElement{RowsTag, USVR, []uint16{512}, 2},
		},
		{
			"implicit VR of an unknown tag falls back to UN",
			(&testWriter{}).implicitElement(0x00AB1234, []byte{1, 2}).build(),
			implicitVRLittleEndian,
			&DataElement{0x00AB1234, UNVR, []byte{1, 2}, 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeElement(t, tc.in, tc.syntax)
			if err != nil {
				t.Fatalf("readDataElement(_) => %v, want nil error", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestReadDataElement_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		syntax transferSyntax
		want   error
	}{
		{
			"ST with vm > 1 is malformed",
			(&testWriter{}).explicitShort(0x00081080, "ST", []byte("A\\B")).build(),
			explicitVRLittleEndian,
			ErrMalformedValue,
		},
		{
			"UT with vm > 1 is malformed",
			(&testWriter{}).explicitLong(0x0040A160, "UT", []byte("A\\B ")).build(),
			explicitVRLittleEndian,
			ErrMalformedValue,
		},
		{
			"non-zero reserved bytes in a long explicit header",
			(&testWriter{}).tag(0x00420011).text("OB").uint16(0xBEEF).uint32(0).build(),
			explicitVRLittleEndian,
			ErrMalformedHeader,
		},
		{
			"unrecognised VR code",
			(&testWriter{}).explicitShort(0x00080008, "QQ", nil).build(),
			explicitVRLittleEndian,
			ErrInvalidVR,
		},
		{
			"numeric length that is not a multiple of the element size",
			(&testWriter{}).explicitShort(0x00280010, "US", []byte{1, 2, 3}).build(),
			explicitVRLittleEndian,
			ErrMalformedValue,
		},
		{
			"tag in a reserved group",
			(&testWriter{}).explicitShort(0x00010008, "CS", nil).build(),
			explicitVRLittleEndian,
			ErrInvalidTag,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeElement(t, tc.in, tc.syntax)
			if !errors.Is(err, tc.want) {
				t.Fatalf("readDataElement(_) => %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadDataElement_NumericRoundTrip(t *testing.T) {
	want := []uint32{0, 1, 0xFFFFFFFE, 12345}
	in := &testWriter{}
	for _, v := range want {
		in.uint32(v)
	}

	element, err := decodeElement(t,
		(&testWriter{}).explicitShort(0x00081161, "UL", in.build()).build(),
		explicitVRLittleEndian)
	if err != nil {
		t.Fatalf("readDataElement(_) => %v, want nil error", err)
	}
	if !reflect.DeepEqual(element.ValueField, want) {
		t.Fatalf("got %v, want %v", element.ValueField, want)
	}
	if element.ValueMultiplicity() != len(want) {
		t.Fatalf("got VM %v, want %v", element.ValueMultiplicity(), len(want))
	}
}

// nestedSequenceFixture builds an SQ of undefined length holding one item of
// undefined length, which in turn carries a CS element and a nested SQ two
// levels deep.
func nestedSequenceFixture() []byte {
	w := &testWriter{}
	w.explicitLongHeader(0x00081115, "SQ", UndefinedLength)
	w.item(ItemTag, UndefinedLength)
	w.explicitShort(0x00080060, "CS", []byte("SM"))
	w.explicitLongHeader(0x00081140, "SQ", UndefinedLength)
	w.item(ItemTag, UndefinedLength)
	w.explicitShort(0x00081155, "UI", []byte("1.2.840.10008.5.1.4.1.1.4\x00"))
	w.item(ItemDelimitationItemTag, 0)
	w.item(SequenceDelimitationItemTag, 0)
	w.item(ItemDelimitationItemTag, 0)
	w.item(SequenceDelimitationItemTag, 0)
	return w.build()
}

func TestReadDataElement_UndefinedLengthSequence(t *testing.T) {
	element, err := decodeElement(t, nestedSequenceFixture(), explicitVRLittleEndian)
	if err != nil {
		t.Fatalf("readDataElement(_) => %v, want nil error", err)
	}
	if element.VR != SQVR {
		t.Fatalf("got VR %v, want SQ", element.VR)
	}

	seq, err := element.Sequence()
	if err != nil {
		t.Fatalf("Sequence() => %v, want nil error", err)
	}
	if seq.Count() != 1 {
		t.Fatalf("got %v items, want 1", seq.Count())
	}
	item, err := seq.Get(0)
	if err != nil {
		t.Fatalf("Get(0) => %v, want nil error", err)
	}
	if got := item.SortedTags(); !reflect.DeepEqual(got, []DataElementTag{0x00080060, 0x00081140}) {
		t.Fatalf("got item tags %v, want [(0008,0060) (0008,1140)]", got)
	}

	nested, err := item.Get(0x00081140)
	if err != nil {
		t.Fatalf("Get((0008,1140)) => %v, want nil error", err)
	}
	nestedSeq, err := nested.Sequence()
	if err != nil {
		t.Fatalf("Sequence() => %v, want nil error", err)
	}
	if nestedSeq.Count() != 1 {
		t.Fatalf("got %v nested items, want 1", nestedSeq.Count())
	}
	nestedItem, _ := nestedSeq.Get(0)
	uid, err := nestedItem.Get(0x00081155)
	if err != nil {
		t.Fatalf("Get((0008,1155)) => %v, want nil error", err)
	}
	if got, _ := uid.StringValue(0); got != "1.2.840.10008.5.1.4.1.1.4" {
		t.Fatalf("got %q, want %q", got, "1.2.840.10008.5.1.4.1.1.4")
	}
	if !item.IsLocked() || !seq.IsLocked() {
		t.Fatalf("parsed sequences and items must be sealed")
	}
}

func TestReadDataElement_DefinedLengthSequence(t *testing.T) {
	item := (&testWriter{}).explicitShort(0x00080060, "CS", []byte("CT")).build()

	w := &testWriter{}
	w.explicitLongHeader(0x00081115, "SQ", uint32(2*(8+len(item))))
	w.item(ItemTag, uint32(len(item))).raw(item...)
	w.item(ItemTag, uint32(len(item))).raw(item...)

	element, err := decodeElement(t, w.build(), explicitVRLittleEndian)
	if err != nil {
		t.Fatalf("readDataElement(_) => %v, want nil error", err)
	}
	seq, err := element.Sequence()
	if err != nil {
		t.Fatalf("Sequence() => %v, want nil error", err)
	}
	if seq.Count() != 2 {
		t.Fatalf("got %v items, want 2", seq.Count())
	}
	for i := 0; i < seq.Count(); i++ {
		ds, _ := seq.Get(i)
		modality, err := ds.Get(0x00080060)
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if got, _ := modality.StringValue(0); got != "CT" {
			t.Fatalf("item %d: got %q, want %q", i, got, "CT")
		}
	}
}

func TestReadDataElement_EmptySequence(t *testing.T) {
	w := (&testWriter{}).explicitLongHeader(0x00081115, "SQ", 0)
	element, err := decodeElement(t, w.build(), explicitVRLittleEndian)
	if err != nil {
		t.Fatalf("readDataElement(_) => %v, want nil error", err)
	}
	seq, err := element.Sequence()
	if err != nil {
		t.Fatalf("Sequence() => %v, want nil error", err)
	}
	if seq.Count() != 0 {
		t.Fatalf("got %v items, want 0", seq.Count())
	}
}

func TestReadDataElement_SequenceWithInvalidItemTag(t *testing.T) {
	w := &testWriter{}
	w.explicitLongHeader(0x00081115, "SQ", UndefinedLength)
	w.item(0x00080060, 0)

	_, err := decodeElement(t, w.build(), explicitVRLittleEndian)
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("readDataElement(_) => %v, want %v", err, ErrMalformedHeader)
	}
}

func TestReadDataElement_ImplicitSequence(t *testing.T) {
	// (0008,1115) is an SQ in the dictionary; implicit items inherit the
	// implicit encoding
	item := (&testWriter{}).implicitElement(0x00080060, []byte("MR")).build()

	w := &testWriter{}
	w.tag(0x00081115).uint32(UndefinedLength)
	w.item(ItemTag, uint32(len(item))).raw(item...)
	w.item(SequenceDelimitationItemTag, 0)

	element, err := decodeElement(t, w.build(), implicitVRLittleEndian)
	if err != nil {
		t.Fatalf("readDataElement(_) => %v, want nil error", err)
	}
	if element.VR != SQVR {
		t.Fatalf("got VR %v, want SQ", element.VR)
	}
	seq, _ := element.Sequence()
	if seq.Count() != 1 {
		t.Fatalf("got %v items, want 1", seq.Count())
	}
	ds, _ := seq.Get(0)
	modality, err := ds.Get(0x00080060)
	if err != nil {
		t.Fatalf("Get((0008,0060)) => %v, want nil error", err)
	}
	if modality.VR != CSVR {
		t.Fatalf("got VR %v, want CS from the dictionary", modality.VR)
	}
}
