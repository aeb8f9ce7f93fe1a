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

// Package dicom reads the DICOM Part 10 file format: Media Storage and File
// Format for Media Interchange, as specified in
// [http://dicom.nema.org/medical/dicom/current/output/pdf/part10.pdf].
//
// The package parses a file into an in-memory model of sealed DataSets
// holding DataElements, with Sequences nesting further DataSets, and gives
// random access to individual frames of the Pixel Data element without
// decoding any pixel codec. A File is read in two phases: ReadFileMeta and
// ReadMetadata build the metadata model and locate the Pixel Data element;
// ReadBOT or BuildBOT then produce the offset table through which ReadFrame
// retrieves single frames. Frames of encapsulated (compressed) transfer
// syntaxes are returned still compressed, together with the transfer syntax
// UID identifying their codec.
package dicom
