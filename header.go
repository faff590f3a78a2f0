// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// HeaderLen is the length of the LZMA alone header.
const HeaderLen = 13

// UnknownSize is stored in the size field of the header if the
// uncompressed size has not been recorded. The stream must then be
// terminated by an end-of-stream marker.
const UnknownSize uint64 = math.MaxUint64

// Header describes the LZMA alone header.
type Header struct {
	Properties
	DictSize uint32
	// Size is the uncompressed size or UnknownSize.
	Size uint64
}

// SizeKnown reports whether the header records the uncompressed size.
func (h Header) SizeKnown() bool {
	return h.Size != UnknownSize
}

// AppendBinary appends the 13 header bytes to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	if err := h.Properties.Verify(); err != nil {
		return b, err
	}
	b = append(b, h.Properties.Byte())
	b = binary.LittleEndian.AppendUint32(b, h.DictSize)
	b = binary.LittleEndian.AppendUint64(b, h.Size)
	return b, nil
}

// MarshalBinary returns the 13 header bytes.
func (h Header) MarshalBinary() (data []byte, err error) {
	return h.AppendBinary(make([]byte, 0, HeaderLen))
}

// UnmarshalBinary decodes the header. The slice must have exactly
// HeaderLen bytes.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) != HeaderLen {
		return fmt.Errorf("%w: header has length %d; want %d",
			ErrFormat, len(data), HeaderLen)
	}
	p, err := PropertiesFromByte(data[0])
	if err != nil {
		return err
	}
	size := binary.LittleEndian.Uint64(data[5:])
	if size > math.MaxInt64 && size != UnknownSize {
		return fmt.Errorf("%w: uncompressed size %d too large",
			ErrFormat, size)
	}
	*h = Header{
		Properties: p,
		DictSize:   binary.LittleEndian.Uint32(data[1:]),
		Size:       size,
	}
	return nil
}

// String returns a string representation of the header.
func (h Header) String() string {
	if !h.SizeKnown() {
		return fmt.Sprintf("%s dict=%d size=unknown",
			h.Properties, h.DictSize)
	}
	return fmt.Sprintf("%s dict=%d size=%d", h.Properties, h.DictSize,
		h.Size)
}

// readHeader reads the header from r and returns it together with the
// raw bytes.
func readHeader(r io.Reader) (h Header, data []byte, err error) {
	data = make([]byte, HeaderLen)
	if _, err = io.ReadFull(r, data); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return h, nil, fmt.Errorf("%w: truncated header: %w",
				ErrFormat, io.ErrUnexpectedEOF)
		}
		return h, nil, ioError(err)
	}
	if err = h.UnmarshalBinary(data); err != nil {
		return h, nil, err
	}
	return h, data, nil
}

// ReadHeader reads and decodes the LZMA alone header from r.
func ReadHeader(r io.Reader) (Header, error) {
	h, _, err := readHeader(r)
	return h, err
}
