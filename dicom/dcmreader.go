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
)

// dcmReader is a wrapper around io.Reader, providing convenience methods for
// parsing tags, numbers and strings. The number of bytes consumed so far is
// tracked through the underlying countReader; it is the sole means by which
// callers detect the end of length-bounded constructs such as the File Meta
// Information group and defined-length items.
type dcmReader struct {
	cr *countReader
}

func newDcmReader(r io.Reader) *dcmReader {
	return &dcmReader{&countReader{r, 0}}
}

// BytesRead returns the number of bytes consumed from the underlying stream
// since the reader (or the root of a Limit chain) was created.
func (dr *dcmReader) BytesRead() int64 {
	return dr.cr.bytesRead
}

// Tag reads two consecutive little-endian 16-bit words and composes them into
// a DataElementTag.
func (dr *dcmReader) Tag(order binary.ByteOrder) (DataElementTag, error) {
	group, err := dr.UInt16(order)
	if err != nil {
		return 0, err
	}
	element, err := dr.UInt16(order)
	if err != nil {
		return 0, err
	}

	return DataElementTag(uint32(group)<<16 | uint32(element)), nil
}

// Limit returns a dcmReader that shares the same underlying io.Reader and
// returns EOF after n more bytes. The returned reader continues the byte
// accounting of dr.
func (dr *dcmReader) Limit(n int64) *dcmReader {
	return &dcmReader{limitCountReader(dr.cr, n)}
}

// Skip advances the input stream by n bytes
func (dr *dcmReader) Skip(n int64) error {
	_, err := io.CopyN(io.Discard, dr.cr, n)
	return err
}

// String returns a string of length n from the input stream
func (dr *dcmReader) String(n int64) (string, error) {
	b, err := dr.Bytes(n)
	return string(b), err
}

// Bytes returns a byte array of size n from the input stream
func (dr *dcmReader) Bytes(n int64) ([]byte, error) {
	b := make([]byte, n)
	gotN, err := io.ReadAtLeast(dr.cr, b, int(n))
	if err != nil && gotN != int(n) {
		return nil, fmt.Errorf("expected to read %d bytes but got %d: %w", n, gotN, err)
	}
	return b, err
}

// UInt64 returns a uint64 from the input stream
func (dr *dcmReader) UInt64(order binary.ByteOrder) (uint64, error) {
	var b uint64
	err := binary.Read(dr.cr, order, &b)
	return b, err
}

// UInt32 returns a uint32 from the input stream
func (dr *dcmReader) UInt32(order binary.ByteOrder) (uint32, error) {
	var b uint32
	err := binary.Read(dr.cr, order, &b)
	return b, err
}

// UInt16 returns a uint16 from the input stream
func (dr *dcmReader) UInt16(order binary.ByteOrder) (uint16, error) {
	var b uint16
	err := binary.Read(dr.cr, order, &b)
	return b, err
}

// countReader is an io.Reader that counts how many bytes have been read
type countReader struct {
	r         io.Reader
	bytesRead int64
}

func (cr *countReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.bytesRead += int64(n)
	return n, err
}

// limitCountReader returns a *countReader that reads from cr and stops with
// EOF after reading n bytes (or when cr reaches EOF). The returned reader
// starts with the current bytesRead of cr, and since it reads through cr,
// cr's own accounting stays up to date as well.
func limitCountReader(cr *countReader, n int64) *countReader {
	return &countReader{io.LimitReader(cr, n), cr.bytesRead}
}
