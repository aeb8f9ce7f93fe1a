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

import "fmt"

// BOT is a Basic Offset Table: the byte offset of each frame item relative to
// the first byte of the first frame item inside the Pixel Data element. A BOT
// is immutable after construction.
type BOT struct {
	offsets []int64
}

// NewBOT constructs a Basic Offset Table from per-frame offsets. At least one
// frame is required.
func NewBOT(offsets []int64) (*BOT, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: offset table must cover at least one frame", ErrBadArgument)
	}
	bot := &BOT{offsets: make([]int64, len(offsets))}
	copy(bot.offsets, offsets)
	return bot, nil
}

// NumFrames returns the number of frames the table covers.
func (bot *BOT) NumFrames() uint32 {
	return uint32(len(bot.offsets))
}

// FrameOffset returns the byte offset of the frame with the given 1-based
// number.
func (bot *BOT) FrameOffset(number uint32) (int64, error) {
	if number == 0 || number > uint32(len(bot.offsets)) {
		return 0, fmt.Errorf("%w: frame %d of %d", ErrInvalidIndex, number, len(bot.offsets))
	}
	return bot.offsets[number-1], nil
}

// Frame is one frame of the Pixel Data element together with the attributes
// needed to interpret or decode it. For encapsulated transfer syntaxes the
// data is the still-compressed fragment value; decompression is up to the
// caller. A Frame owns its buffer and strings and is immutable.
type Frame struct {
	number                    uint32
	data                      []byte
	rows                      uint16
	columns                   uint16
	samplesPerPixel           uint16
	bitsAllocated             uint16
	bitsStored                uint16
	pixelRepresentation       uint16
	planarConfiguration       uint16
	photometricInterpretation string
	transferSyntaxUID         string
}

// NewFrame constructs a Frame descriptor. The frame number is 1-based and the
// Frame takes ownership of data.
func NewFrame(number uint32, data []byte, rows, columns, samplesPerPixel,
	bitsAllocated, bitsStored, pixelRepresentation, planarConfiguration uint16,
	photometricInterpretation, transferSyntaxUID string) (*Frame, error) {
	if number == 0 {
		return nil, fmt.Errorf("%w: frame number must be positive", ErrBadArgument)
	}
	return &Frame{
		number:                    number,
		data:                      data,
		rows:                      rows,
		columns:                   columns,
		samplesPerPixel:           samplesPerPixel,
		bitsAllocated:             bitsAllocated,
		bitsStored:                bitsStored,
		pixelRepresentation:       pixelRepresentation,
		planarConfiguration:       planarConfiguration,
		photometricInterpretation: photometricInterpretation,
		transferSyntaxUID:         transferSyntaxUID,
	}, nil
}

// Number returns the 1-based frame number.
func (f *Frame) Number() uint32 { return f.number }

// Data returns the frame value. The buffer is owned by the Frame.
func (f *Frame) Data() []byte { return f.data }

// Length returns the frame value length in bytes.
func (f *Frame) Length() int { return len(f.data) }

// Rows returns the number of pixel rows.
func (f *Frame) Rows() uint16 { return f.rows }

// Columns returns the number of pixel columns.
func (f *Frame) Columns() uint16 { return f.columns }

// SamplesPerPixel returns the number of samples (color channels) per pixel.
func (f *Frame) SamplesPerPixel() uint16 { return f.samplesPerPixel }

// BitsAllocated returns the number of bits allocated per sample.
func (f *Frame) BitsAllocated() uint16 { return f.bitsAllocated }

// BitsStored returns the number of bits stored per sample.
func (f *Frame) BitsStored() uint16 { return f.bitsStored }

// PixelRepresentation returns 0 for unsigned and 1 for two's complement
// sample values.
func (f *Frame) PixelRepresentation() uint16 { return f.pixelRepresentation }

// PlanarConfiguration returns 0 for interleaved and 1 for per-plane sample
// layout.
func (f *Frame) PlanarConfiguration() uint16 { return f.planarConfiguration }

// PhotometricInterpretation returns the photometric interpretation of the
// frame, e.g. "MONOCHROME2" or "YBR_FULL_422".
func (f *Frame) PhotometricInterpretation() string { return f.photometricInterpretation }

// TransferSyntaxUID returns the transfer syntax the frame value is encoded
// in; it identifies the codec for encapsulated frames.
func (f *Frame) TransferSyntaxUID() string { return f.transferSyntaxUID }
