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
	"os"
	"strconv"
	"strings"
)

// File is a handle on a DICOM Part 10 file. A File is opened for reading
// only; it owns the underlying stream and is not safe for concurrent use.
//
// The access pattern is two-phase: ReadFileMeta and ReadMetadata parse the
// File Meta Information and the main data set up to (but excluding) the Pixel
// Data element, whose position is recorded on the handle. ReadBOT or BuildBOT
// then produce the per-frame offset table that gives ReadFrame random access
// to individual frames.
type File struct {
	fp *os.File

	meta *DataSet

	// offset is the position of the first byte of the main data set, 0 until
	// the File Meta Information has been read
	offset int64

	// transferSyntaxUID is the value of (0002,0010), captured during the File
	// Meta Information read
	transferSyntaxUID string

	// pixelDataOffset is the position of the first byte of the Pixel Data
	// element header, 0 until the metadata read has seen it
	pixelDataOffset int64
}

// Open opens the DICOM file at path for reading.
func Open(path string) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		logErrorf("could not open file for reading: %s", path)
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &File{fp: fp}, nil
}

// Close closes the handle and the underlying stream.
func (f *File) Close() error {
	return f.fp.Close()
}

// TransferSyntaxUID returns the transfer syntax of the main data set. It is
// empty until the File Meta Information has been read.
func (f *File) TransferSyntaxUID() string {
	return f.transferSyntaxUID
}

// ReadFileMeta reads the File Meta Information: the 128-byte preamble, the
// "DICM" prefix and the group 0x0002 elements, which are always encoded in
// explicit VR little endian. The returned DataSet is sealed and holds the
// group elements following the Group Length and File Meta Information Version
// elements. The Transfer Syntax UID is captured on the handle.
func (f *File) ReadFileMeta() (*DataSet, error) {
	if _, err := f.fp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to start of file: %w", err)
	}
	dr := newDcmReader(f.fp)
	syntax := explicitVRLittleEndian

	if err := dr.Skip(128); err != nil {
		logErrorf("reading File Meta Information failed: file shorter than the preamble")
		return nil, fmt.Errorf("%w: file shorter than the 128-byte preamble", ErrNotDICOM)
	}
	prefix, err := dr.String(4)
	if err != nil {
		logErrorf("reading File Meta Information failed: prefix 'DICM' not found")
		return nil, fmt.Errorf("%w: file ends inside the prefix", ErrNotDICOM)
	}
	if prefix != "DICM" {
		logErrorf("reading File Meta Information failed: prefix 'DICM' not found")
		return nil, fmt.Errorf("%w: prefix %q at offset 128", ErrNotDICOM, prefix)
	}

	fileMeta := NewDataSet()

	// (0002,0000) File Meta Information Group Length bounds the remainder of
	// the group
	element, err := readDataElement(dr, syntax)
	if err != nil {
		logErrorf("reading File Meta Information failed: could not read Group Length: %v", err)
		return nil, fmt.Errorf("reading Group Length: %w", err)
	}
	if element.Tag != FileMetaInformationGroupLengthTag {
		return nil, fmt.Errorf("%w: %v where %v was expected",
			ErrUnexpectedTag, element.Tag, FileMetaInformationGroupLengthTag)
	}
	groupLength, err := element.UInt32Value(0)
	if err != nil {
		return nil, fmt.Errorf("reading Group Length: %w", err)
	}
	groupStart := dr.BytesRead()

	// (0002,0001) File Meta Information Version
	element, err = readDataElement(dr, syntax)
	if err != nil {
		logErrorf("reading File Meta Information failed: could not read File Meta Information Version: %v", err)
		return nil, fmt.Errorf("reading File Meta Information Version: %w", err)
	}
	if element.Tag != FileMetaInformationVersionTag {
		return nil, fmt.Errorf("%w: %v where %v was expected",
			ErrUnexpectedTag, element.Tag, FileMetaInformationVersionTag)
	}

	offset := int64(0)
	for dr.BytesRead()-groupStart < int64(groupLength) {
		tag, err := dr.Tag(binary.LittleEndian)
		if err != nil {
			logErrorf("reading File Meta Information failed: could not read element header: %v", err)
			return nil, fmt.Errorf("reading File Meta Information element: %w", err)
		}
		if tag.GroupNumber() != 0x0002 {
			// The group length overshot; the header belongs to the main data
			// set, so rewind it and end the group here.
			if _, err := f.fp.Seek(-tagSize, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("rewinding to end of File Meta Information: %w", err)
			}
			offset = dr.BytesRead() - tagSize
			break
		}

		element, err := readDataElementBody(dr, tag, syntax)
		if err != nil {
			logErrorf("reading File Meta Information failed: could not read %v: %v", tag, err)
			return nil, fmt.Errorf("reading %v: %w", tag, err)
		}
		if err := fileMeta.Insert(element); err != nil {
			logErrorf("reading File Meta Information failed: could not insert %v: %v", tag, err)
			return nil, err
		}
	}
	if offset == 0 {
		offset = dr.BytesRead()
	}

	element, err = fileMeta.Get(TransferSyntaxUIDTag)
	if err != nil {
		logErrorf("reading File Meta Information failed: no Transfer Syntax UID")
		return nil, fmt.Errorf("reading Transfer Syntax UID: %w", err)
	}
	uid, err := element.StringValue(0)
	if err != nil {
		return nil, fmt.Errorf("reading Transfer Syntax UID: %w", err)
	}

	f.offset = offset
	f.transferSyntaxUID = uid
	fileMeta.Lock()
	f.meta = fileMeta
	return fileMeta, nil
}

// ReadMetadata reads the main data set. The read stops at end of file, at the
// Data Set Trailing Padding element, or at a Pixel Data element, whose header
// position is recorded on the handle for the frame access operations. The
// returned DataSet is sealed. ReadFileMeta is performed first when it has not
// been already.
func (f *File) ReadMetadata() (*DataSet, error) {
	if f.offset == 0 {
		if _, err := f.ReadFileMeta(); err != nil {
			logErrorf("reading metadata failed: could not read File Meta Information")
			return nil, err
		}
	}

	syntax := lookupTransferSyntax(f.transferSyntaxUID)
	if syntax.isDeflated() {
		return nil, fmt.Errorf("%w: deflated transfer syntax %s",
			ErrUnsupportedVR, f.transferSyntaxUID)
	}

	if _, err := f.fp.Seek(f.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to main data set: %w", err)
	}
	dr := newDcmReader(f.fp)

	dataset := NewDataSet()
	for {
		tag, err := dr.Tag(syntax.byteOrder())
		if err == io.EOF {
			logInfof("stop reading data set, reached end of file")
			break
		}
		if err != nil {
			logErrorf("reading data set failed: could not read tag: %v", err)
			return nil, fmt.Errorf("reading tag: %w", err)
		}

		if tag == TrailingPaddingTag {
			logDebugf("stop reading data set at Data Set Trailing Padding")
			break
		}
		if tag.IsPixelData() {
			// Record the position of the first byte of the Pixel Data element
			// header; the value is only touched by the frame access
			// operations.
			f.pixelDataOffset = f.offset + dr.BytesRead() - tagSize
			logDebugf("stop reading data set at Pixel Data element %v", tag)
			break
		}
		if tag.GroupNumber() == 0x0002 {
			logErrorf("reading data set failed: encountered File Meta Information element %v", tag)
			return nil, fmt.Errorf("%w: File Meta Information element %v in main data set",
				ErrUnexpectedTag, tag)
		}

		element, err := readDataElementBody(dr, tag, syntax)
		if err != nil {
			logErrorf("reading data set failed: could not read %v: %v", tag, err)
			return nil, fmt.Errorf("reading %v: %w", tag, err)
		}
		if err := dataset.Insert(element); err != nil {
			logErrorf("reading data set failed: could not insert %v: %v", tag, err)
			return nil, err
		}
	}

	dataset.Lock()
	return dataset, nil
}

// numberOfFrames extracts (0028,0008) Number of Frames as a positive decimal.
func numberOfFrames(metadata *DataSet) (uint32, error) {
	element, err := metadata.Get(NumberOfFramesTag)
	if err != nil {
		return 0, err
	}
	value, err := element.StringValue(0)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: Number of Frames %q", ErrMalformedValue, value)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: Number of Frames is zero", ErrMalformedValue)
	}
	return uint32(n), nil
}

// pixelDescription carries the Image Pixel module attributes needed to size
// and describe frames.
type pixelDescription struct {
	rows                      uint16
	columns                   uint16
	samplesPerPixel           uint16
	bitsAllocated             uint16
	bitsStored                uint16
	pixelRepresentation       uint16
	planarConfiguration       uint16
	photometricInterpretation string
}

func newPixelDescription(metadata *DataSet) (*pixelDescription, error) {
	desc := &pixelDescription{}
	for _, attr := range []struct {
		tag DataElementTag
		dst *uint16
	}{
		{RowsTag, &desc.rows},
		{ColumnsTag, &desc.columns},
		{SamplesPerPixelTag, &desc.samplesPerPixel},
		{BitsAllocatedTag, &desc.bitsAllocated},
		{BitsStoredTag, &desc.bitsStored},
		{PixelRepresentationTag, &desc.pixelRepresentation},
		{PlanarConfigurationTag, &desc.planarConfiguration},
	} {
		element, err := metadata.Get(attr.tag)
		if err != nil {
			return nil, fmt.Errorf("getting image pixel description: %w", err)
		}
		value, err := element.UInt16Value(0)
		if err != nil {
			return nil, fmt.Errorf("getting image pixel description %v: %w", attr.tag, err)
		}
		*attr.dst = value
	}

	element, err := metadata.Get(PhotometricInterpretationTag)
	if err != nil {
		return nil, fmt.Errorf("getting image pixel description: %w", err)
	}
	desc.photometricInterpretation, err = element.StringValue(0)
	if err != nil {
		return nil, fmt.Errorf("getting image pixel description %v: %w", PhotometricInterpretationTag, err)
	}

	return desc, nil
}

// bytesPerSample returns the storage width of one sample. Bits Allocated is a
// multiple of 8 for all uncompressed syntaxes in circulation; single-bit data
// is treated as byte-packed.
func (desc *pixelDescription) bytesPerSample() int64 {
	bytes := int64(desc.bitsAllocated) / 8
	if bytes == 0 {
		bytes = 1
	}
	return bytes
}

// nativeFrameLength returns the byte length of one frame stored natively.
func (desc *pixelDescription) nativeFrameLength() int64 {
	return int64(desc.rows) * int64(desc.columns) * int64(desc.samplesPerPixel) * desc.bytesPerSample()
}

// seekPixelData positions the stream on the Pixel Data element recorded
// during the metadata read, consumes the element header and returns the
// reader for the element value.
func (f *File) seekPixelData(syntax transferSyntax) (*dcmReader, error) {
	if f.pixelDataOffset == 0 {
		return nil, fmt.Errorf("%w: Pixel Data position unknown, read the metadata first", ErrBadArgument)
	}
	if _, err := f.fp.Seek(f.pixelDataOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to Pixel Data element: %w", err)
	}
	dr := newDcmReader(f.fp)

	tag, err := dr.Tag(syntax.byteOrder())
	if err != nil {
		return nil, fmt.Errorf("reading Pixel Data tag: %w", err)
	}
	if !tag.IsPixelData() {
		return nil, fmt.Errorf("%w: %v where a Pixel Data element was expected", ErrUnexpectedTag, tag)
	}
	vr, err := syntax.readVR(dr, tag)
	if err != nil {
		return nil, fmt.Errorf("reading Pixel Data header: %w", err)
	}
	if _, err := syntax.readValueLength(dr, vr); err != nil {
		return nil, fmt.Errorf("reading Pixel Data header: %w", err)
	}
	return dr, nil
}

// ReadBOT reads the Basic Offset Table stored in an encapsulated Pixel Data
// element. When the mandatory BOT item carries no value, the offsets are
// taken from the (7FE0,0001) Extended Offset Table element instead; if that
// is absent as well the read fails with ErrNoOffsetTable and the table must
// be built with BuildBOT.
func (f *File) ReadBOT(metadata *DataSet) (*BOT, error) {
	logDebugf("reading Basic Offset Table")

	if !IsEncapsulatedTransferSyntax(f.transferSyntaxUID) {
		logErrorf("reading Basic Offset Table failed: transfer syntax %s is not encapsulated",
			f.transferSyntaxUID)
		return nil, fmt.Errorf("%w: transfer syntax %s carries no Basic Offset Table",
			ErrBadArgument, f.transferSyntaxUID)
	}

	numFrames, err := numberOfFrames(metadata)
	if err != nil {
		logErrorf("reading Basic Offset Table failed: %v", err)
		return nil, err
	}

	dr, err := f.seekPixelData(explicitVRLittleEndian)
	if err != nil {
		logErrorf("reading Basic Offset Table failed: %v", err)
		return nil, err
	}

	tag, itemLength, err := readItemHeader(dr)
	if err != nil {
		logErrorf("reading Basic Offset Table failed: could not read header of BOT item: %v", err)
		return nil, fmt.Errorf("reading header of Basic Offset Table item: %w", err)
	}
	if tag != ItemTag {
		logErrorf("reading Basic Offset Table failed: unexpected tag %v for BOT item", tag)
		return nil, fmt.Errorf("%w: %v for the Basic Offset Table item", ErrUnexpectedTag, tag)
	}

	// The BOT item must be present, but its value is optional
	if itemLength > 0 {
		logInfof("read Basic Offset Table value")
		offsets := make([]int64, numFrames)
		for i := range offsets {
			value, err := dr.UInt32(binary.LittleEndian)
			if err != nil {
				return nil, fmt.Errorf("reading Basic Offset Table value #%d: %w", i, err)
			}
			if DataElementTag(value) == ItemTag {
				logErrorf("reading Basic Offset Table failed: encountered item tag in table")
				return nil, fmt.Errorf("%w: item tag inside the Basic Offset Table", ErrMalformedValue)
			}
			offsets[i] = int64(value)
		}
		return NewBOT(offsets)
	}

	logInfof("Basic Offset Table is empty")
	element, err := metadata.Get(ExtendedOffsetTableTag)
	if err != nil {
		return nil, fmt.Errorf("%w: empty Basic Offset Table and no Extended Offset Table",
			ErrNoOffsetTable)
	}

	logInfof("found Extended Offset Table")
	blob, err := element.Bytes()
	if err != nil {
		return nil, fmt.Errorf("reading Extended Offset Table: %w", err)
	}
	if uint32(len(blob)/8) < numFrames {
		return nil, fmt.Errorf("%w: Extended Offset Table holds %d offsets, Number of Frames is %d",
			ErrMalformedValue, len(blob)/8, numFrames)
	}
	offsets := make([]int64, numFrames)
	for i := range offsets {
		offsets[i] = int64(binary.LittleEndian.Uint64(blob[8*i:]))
	}
	return NewBOT(offsets)
}

// BuildBOT derives the Basic Offset Table from the Pixel Data layout itself.
// For encapsulated transfer syntaxes the frame items are walked and their
// header positions recorded; for native ones the offsets follow from the
// fixed frame size.
func (f *File) BuildBOT(metadata *DataSet) (*BOT, error) {
	logDebugf("building Basic Offset Table")

	numFrames, err := numberOfFrames(metadata)
	if err != nil {
		logErrorf("building Basic Offset Table failed: %v", err)
		return nil, err
	}

	if !IsEncapsulatedTransferSyntax(f.transferSyntaxUID) {
		desc, err := newPixelDescription(metadata)
		if err != nil {
			logErrorf("building Basic Offset Table failed: %v", err)
			return nil, err
		}
		frameLength := desc.nativeFrameLength()
		offsets := make([]int64, numFrames)
		for i := range offsets {
			offsets[i] = int64(i) * frameLength
		}
		return NewBOT(offsets)
	}

	dr, err := f.seekPixelData(explicitVRLittleEndian)
	if err != nil {
		logErrorf("building Basic Offset Table failed: %v", err)
		return nil, err
	}

	tag, itemLength, err := readItemHeader(dr)
	if err != nil {
		logErrorf("building Basic Offset Table failed: could not read header of BOT item: %v", err)
		return nil, fmt.Errorf("reading header of Basic Offset Table item: %w", err)
	}
	if tag != ItemTag {
		logErrorf("building Basic Offset Table failed: unexpected tag %v for BOT item", tag)
		return nil, fmt.Errorf("%w: %v for the Basic Offset Table item", ErrUnexpectedTag, tag)
	}
	// Skip the BOT item value, which may be empty
	if itemLength > 0 {
		if err := dr.Skip(int64(itemLength)); err != nil {
			return nil, fmt.Errorf("skipping Basic Offset Table value: %w", err)
		}
	}

	start := dr.BytesRead()
	offsets := make([]int64, 0, numFrames)
	for {
		position := dr.BytesRead() - start
		tag, itemLength, err := readItemHeader(dr)
		if err == io.EOF {
			break
		}
		if err != nil {
			logErrorf("building Basic Offset Table failed: could not read header of frame item #%d: %v",
				len(offsets)+1, err)
			return nil, fmt.Errorf("reading header of frame item #%d: %w", len(offsets)+1, err)
		}
		if tag == SequenceDelimitationItemTag {
			break
		}
		if tag != ItemTag {
			logErrorf("building Basic Offset Table failed: frame item #%d has tag %v",
				len(offsets)+1, tag)
			return nil, fmt.Errorf("%w: %v for frame item #%d", ErrUnexpectedTag, tag, len(offsets)+1)
		}
		offsets = append(offsets, position)
		if err := dr.Skip(int64(itemLength)); err != nil {
			return nil, fmt.Errorf("skipping value of frame item #%d: %w", len(offsets), err)
		}
	}

	if uint32(len(offsets)) != numFrames {
		logErrorf("building Basic Offset Table failed: found %d frame items, Number of Frames is %d",
			len(offsets), numFrames)
		return nil, fmt.Errorf("%w: found %d frame items, Number of Frames is %d",
			ErrMalformedValue, len(offsets), numFrames)
	}
	return NewBOT(offsets)
}

// ReadFrame reads the frame with the given 1-based number. For encapsulated
// transfer syntaxes the returned Frame holds the still-compressed fragment
// value together with the transfer syntax identifying its codec.
func (f *File) ReadFrame(metadata *DataSet, bot *BOT, number uint32) (*Frame, error) {
	logDebugf("read frame item #%d", number)

	if number == 0 {
		logErrorf("reading frame item failed: frame number must be positive")
		return nil, fmt.Errorf("%w: frame number must be positive", ErrBadArgument)
	}
	frameOffset, err := bot.FrameOffset(number)
	if err != nil {
		return nil, err
	}
	if f.pixelDataOffset == 0 {
		return nil, fmt.Errorf("%w: Pixel Data position unknown, read the metadata first", ErrBadArgument)
	}

	encapsulated := IsEncapsulatedTransferSyntax(f.transferSyntaxUID)
	var firstFrameOffset int64
	if encapsulated {
		// Header of the Pixel Data element, the BOT item header and the BOT
		// value precede the first frame item
		firstFrameOffset = 12 + 8 + 4*int64(bot.NumFrames())
	} else {
		// Header of the Pixel Data element
		firstFrameOffset = 10
	}

	if _, err := f.fp.Seek(f.pixelDataOffset+firstFrameOffset+frameOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to frame item #%d: %w", number, err)
	}
	dr := newDcmReader(f.fp)

	desc, err := newPixelDescription(metadata)
	if err != nil {
		logErrorf("reading frame item failed: %v", err)
		return nil, err
	}

	var length int64
	if encapsulated {
		tag, itemLength, err := readItemHeader(dr)
		if err != nil {
			logErrorf("reading frame item failed: could not read header of frame item #%d: %v", number, err)
			return nil, fmt.Errorf("reading header of frame item #%d: %w", number, err)
		}
		if tag != ItemTag {
			logErrorf("reading frame item failed: no item tag at frame item #%d", number)
			return nil, fmt.Errorf("%w: %v at frame item #%d", ErrUnexpectedTag, tag, number)
		}
		length = int64(itemLength)
	} else {
		length = desc.nativeFrameLength()
	}

	value, err := dr.Bytes(length)
	if err != nil {
		logErrorf("reading frame item failed: could not read value of frame item #%d: %v", number, err)
		return nil, fmt.Errorf("reading value of frame item #%d: %w", number, err)
	}

	return NewFrame(number, value, desc.rows, desc.columns, desc.samplesPerPixel,
		desc.bitsAllocated, desc.bitsStored, desc.pixelRepresentation,
		desc.planarConfiguration, desc.photometricInterpretation, f.transferSyntaxUID)
}
