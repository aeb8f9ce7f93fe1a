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

import "testing"

func TestDataElementTag_String(t *testing.T) {
	got := ItemTag.String()
	want := "(FFFE,E000)"
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDataElementTag_GroupNumber(t *testing.T) {
	tag := DataElementTag(0xFEDCBA98)
	if tag.GroupNumber() != 0xFEDC {
		t.Fatalf("got %v, want %v", tag.GroupNumber(), 0xFEDC)
	}
}

func TestDataElementTag_ElementNumber(t *testing.T) {
	tag := DataElementTag(0xFEDCBA98)
	if tag.ElementNumber() != 0xBA98 {
		t.Fatalf("got %v, want %v", tag.ElementNumber(), 0xBA98)
	}
}

func TestDataElementTag_IsMetadataElement(t *testing.T) {
	if !TransferSyntaxUIDTag.IsMetadataElement() {
		t.Fatalf("(0002,0010) must be a metadata element")
	}
	if PixelDataTag.IsMetadataElement() {
		t.Fatalf("(7FE0,0010) must not be a metadata element")
	}
}

func TestDataElementTag_IsPrivate(t *testing.T) {
	tests := []struct {
		name string
		tag  DataElementTag
		want bool
	}{
		{
			"when group number is odd, the tag is considered private",
			DataElementTag(0x00090000),
			true,
		},
		{
			"when group number is even, the tag is considered non-private",
			PixelDataTag,
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.tag.IsPrivate()
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDataElementTag_IsValidTag(t *testing.T) {
	tests := []struct {
		name string
		tag  DataElementTag
		want bool
	}{
		{"regular tag", DataElementTag(0x00080060), true},
		{"metadata tag", TransferSyntaxUIDTag, true},
		{"pixel data tag", PixelDataTag, true},
		{"item tag", ItemTag, false},
		{"item delimitation tag", ItemDelimitationItemTag, false},
		{"sequence delimitation tag", SequenceDelimitationItemTag, false},
		{"trailing padding tag", TrailingPaddingTag, false},
		{"command group", DataElementTag(0x00000002), false},
		{"reserved group 0001", DataElementTag(0x00010010), false},
		{"group FFFF", DataElementTag(0xFFFF0001), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.IsValidTag(); got != tc.want {
				t.Fatalf("IsValidTag(%v) => %v, want %v", tc.tag, got, tc.want)
			}
		})
	}
}
