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

func TestDataElementTag_DictionaryVR(t *testing.T) {
	tests := []struct {
		name string
		tag  DataElementTag
		want *VR
	}{
		{
			"tags with a dictionary row resolve through the table",
			RowsTag,
			USVR,
		},
		{
			"sequence tags resolve to SQ",
			DataElementTag(0x00081115),
			SQVR,
		},
		{
			"when the tag is a group length element (gggg,0000) the VR is UL",
			DataElementTag(0x00080000),
			ULVR,
		},
		{
			"when the tag belongs to a private creator block (gggg,0010-00FF) " +
				"where gggg is odd, the VR is LO",
			DataElementTag(0x00090010),
			LOVR,
		},
		{
			"when lookup fails, UN is returned",
			DataElementTag(0xABCD1234),
			UNVR,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.DictionaryVR(); got != tc.want {
				t.Fatalf("DictionaryVR(%v) => %v, want %v", tc.tag, got, tc.want)
			}
		})
	}
}

func TestDataElementTag_Keyword(t *testing.T) {
	if got := NumberOfFramesTag.Keyword(); got != "NumberOfFrames" {
		t.Fatalf("got %q, want %q", got, "NumberOfFrames")
	}
	if got := DataElementTag(0xABCD1234).Keyword(); got != "" {
		t.Fatalf("got %q, want empty keyword", got)
	}
}

func TestIsValidVR(t *testing.T) {
	for _, name := range []string{
		"AE", "AS", "AT", "CS", "DA", "DS", "DT", "FL", "FD", "IS", "LO", "LT",
		"OB", "OD", "OF", "OL", "OV", "OW", "PN", "SH", "SL", "SQ", "SS", "ST",
		"SV", "TM", "UC", "UI", "UL", "UN", "UR", "US", "UT", "UV",
	} {
		if !IsValidVR(name) {
			t.Fatalf("IsValidVR(%q) => false, want true", name)
		}
	}
	for _, name := range []string{"XX", "", "us", "A", "AEX"} {
		if IsValidVR(name) {
			t.Fatalf("IsValidVR(%q) => true, want false", name)
		}
	}
}

func TestIsEncapsulatedTransferSyntax(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		want bool
	}{
		{"implicit VR little endian is native", ImplicitVRLittleEndianUID, false},
		{"explicit VR little endian is native", ExplicitVRLittleEndianUID, false},
		{"deflated explicit VR little endian is native", DeflatedExplicitVRLittleEndianUID, false},
		{"jpeg baseline is encapsulated", JPEGBaselineUID, true},
		{"jpeg 2000 lossless is encapsulated", JPEG2000LosslessUID, true},
		{"an unknown uid is treated as encapsulated", "1.2.840.10008.1.2.4.201", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEncapsulatedTransferSyntax(tc.uid); got != tc.want {
				t.Fatalf("IsEncapsulatedTransferSyntax(%q) => %v, want %v", tc.uid, got, tc.want)
			}
		})
	}
}
