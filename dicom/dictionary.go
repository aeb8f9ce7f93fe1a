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

// dictionaryEntry is one row of the static data dictionary.
type dictionaryEntry struct {
	vr      *VR
	keyword string
}

// dataDictionary is the subset of the registry of DICOM Data Elements
// (PS3.6 chapter 6) that this library itself interprets, plus the common
// patient/study/series/image module attributes so that implicit VR files and
// dumps resolve. Tags outside the table resolve through the rules of
// DictionaryVR.
var dataDictionary = map[DataElementTag]dictionaryEntry{
	FileMetaInformationGroupLengthTag: {ULVR, "FileMetaInformationGroupLength"},
	FileMetaInformationVersionTag:     {OBVR, "FileMetaInformationVersion"},
	MediaStorageSOPClassUIDTag:        {UIVR, "MediaStorageSOPClassUID"},
	MediaStorageSOPInstanceUIDTag:     {UIVR, "MediaStorageSOPInstanceUID"},
	TransferSyntaxUIDTag:              {UIVR, "TransferSyntaxUID"},
	DataElementTag(0x00020012):        {UIVR, "ImplementationClassUID"},
	DataElementTag(0x00020013):        {SHVR, "ImplementationVersionName"},
	DataElementTag(0x00020016):        {AEVR, "SourceApplicationEntityTitle"},

	SpecificCharacterSetTag:    {CSVR, "SpecificCharacterSet"},
	DataElementTag(0x00080008): {CSVR, "ImageType"},
	DataElementTag(0x00080016): {UIVR, "SOPClassUID"},
	DataElementTag(0x00080018): {UIVR, "SOPInstanceUID"},
	DataElementTag(0x00080020): {DAVR, "StudyDate"},
	DataElementTag(0x00080021): {DAVR, "SeriesDate"},
	DataElementTag(0x00080023): {DAVR, "ContentDate"},
	DataElementTag(0x00080030): {TMVR, "StudyTime"},
	DataElementTag(0x00080031): {TMVR, "SeriesTime"},
	DataElementTag(0x00080033): {TMVR, "ContentTime"},
	DataElementTag(0x00080050): {SHVR, "AccessionNumber"},
	DataElementTag(0x00080060): {CSVR, "Modality"},
	DataElementTag(0x00080070): {LOVR, "Manufacturer"},
	DataElementTag(0x00080090): {PNVR, "ReferringPhysicianName"},
	DataElementTag(0x00081030): {LOVR, "StudyDescription"},
	DataElementTag(0x0008103E): {LOVR, "SeriesDescription"},
	DataElementTag(0x00081090): {LOVR, "ManufacturerModelName"},
	DataElementTag(0x00081115): {SQVR, "ReferencedSeriesSequence"},
	DataElementTag(0x00081140): {SQVR, "ReferencedImageSequence"},
	DataElementTag(0x00081150): {UIVR, "ReferencedSOPClassUID"},
	DataElementTag(0x00081155): {UIVR, "ReferencedSOPInstanceUID"},
	DataElementTag(0x00089124): {SQVR, "DerivationImageSequence"},
	DataElementTag(0x00089215): {SQVR, "DerivationCodeSequence"},

	DataElementTag(0x00100010): {PNVR, "PatientName"},
	DataElementTag(0x00100020): {LOVR, "PatientID"},
	DataElementTag(0x00100030): {DAVR, "PatientBirthDate"},
	DataElementTag(0x00100040): {CSVR, "PatientSex"},

	DataElementTag(0x00180050): {DSVR, "SliceThickness"},
	DataElementTag(0x00181063): {DSVR, "FrameTime"},

	DataElementTag(0x0020000D): {UIVR, "StudyInstanceUID"},
	DataElementTag(0x0020000E): {UIVR, "SeriesInstanceUID"},
	DataElementTag(0x00200010): {SHVR, "StudyID"},
	DataElementTag(0x00200011): {ISVR, "SeriesNumber"},
	DataElementTag(0x00200013): {ISVR, "InstanceNumber"},
	DataElementTag(0x00200032): {DSVR, "ImagePositionPatient"},
	DataElementTag(0x00200037): {DSVR, "ImageOrientationPatient"},
	DataElementTag(0x00200052): {UIVR, "FrameOfReferenceUID"},

	SamplesPerPixelTag:           {USVR, "SamplesPerPixel"},
	PhotometricInterpretationTag: {CSVR, "PhotometricInterpretation"},
	PlanarConfigurationTag:       {USVR, "PlanarConfiguration"},
	NumberOfFramesTag:            {ISVR, "NumberOfFrames"},
	RowsTag:                      {USVR, "Rows"},
	ColumnsTag:                   {USVR, "Columns"},
	DataElementTag(0x00280030):   {DSVR, "PixelSpacing"},
	BitsAllocatedTag:             {USVR, "BitsAllocated"},
	BitsStoredTag:                {USVR, "BitsStored"},
	HighBitTag:                   {USVR, "HighBit"},
	PixelRepresentationTag:       {USVR, "PixelRepresentation"},
	DataElementTag(0x00281050):   {DSVR, "WindowCenter"},
	DataElementTag(0x00281051):   {DSVR, "WindowWidth"},
	DataElementTag(0x00281052):   {DSVR, "RescaleIntercept"},
	DataElementTag(0x00281053):   {DSVR, "RescaleSlope"},

	DataElementTag(0x00400555): {SQVR, "AcquisitionContextSequence"},
	DataElementTag(0x0040A043): {SQVR, "ConceptNameCodeSequence"},
	DataElementTag(0x0040A730): {SQVR, "ContentSequence"},

	DataElementTag(0x52009229): {SQVR, "SharedFunctionalGroupsSequence"},
	DataElementTag(0x52009230): {SQVR, "PerFrameFunctionalGroupsSequence"},

	ExtendedOffsetTableTag:     {OVVR, "ExtendedOffsetTable"},
	DataElementTag(0x7FE00002): {OVVR, "ExtendedOffsetTableLengths"},
	FloatPixelDataTag:          {OFVR, "FloatPixelData"},
	DoubleFloatPixelDataTag:    {ODVR, "DoubleFloatPixelData"},
	PixelDataTag:               {OWVR, "PixelData"},
}

// DictionaryVR returns the VR the data dictionary assigns to the tag. It is
// the VR used when decoding the implicit VR transfer syntax. A table entry
// wins; outside the table, group length elements (gggg,0000) are UL and
// private creator elements (gggg,0010-00FF with odd gggg) are LO. All other
// tags resolve to UN.
func (t DataElementTag) DictionaryVR() *VR {
	if entry, ok := dataDictionary[t]; ok {
		return entry.vr
	}
	if t.ElementNumber() == 0x0000 {
		return ULVR
	}
	if t.IsPrivate() && t.ElementNumber() >= 0x0010 && t.ElementNumber() <= 0x00FF {
		return LOVR
	}
	return UNVR
}

// Keyword returns the human-readable keyword the data dictionary assigns to
// the tag, or the empty string when the tag is not in the dictionary.
func (t DataElementTag) Keyword() string {
	if entry, ok := dataDictionary[t]; ok {
		return entry.keyword
	}
	return ""
}
