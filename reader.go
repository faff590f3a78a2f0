// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Reader decompresses an LZMA alone container.
type Reader struct {
	h   Header
	lr  *lzma.Reader
	n   int64
	err error
}

// NewReader reads and checks the header and returns a reader for the
// uncompressed data. Dictionary sizes above MaxDictSize are rejected.
func NewReader(r io.Reader) (*Reader, error) {
	src := sourceReader{r: r}
	h, data, err := readHeader(src)
	if err != nil {
		return nil, err
	}
	if h.DictSize > MaxDictSize {
		return nil, fmt.Errorf(
			"%w: dictionary size %d exceeds maximum %d",
			ErrFormat, h.DictSize, MaxDictSize)
	}
	lr, err := lzma.NewReader(io.MultiReader(bytes.NewReader(data), src))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, formatError(err)
	}
	return &Reader{h: h, lr: lr}, nil
}

// Header returns the header of the container.
func (r *Reader) Header() Header {
	return r.h
}

// Read reads uncompressed data. If the header records the size, the
// stream must provide exactly that number of bytes.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err = r.lr.Read(p)
	r.n += int64(n)
	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		if r.h.SizeKnown() && uint64(r.n) != r.h.Size {
			err = fmt.Errorf(
				"%w: stream ends after %d bytes; header records %d",
				ErrFormat, r.n, r.h.Size)
		}
	default:
		err = formatError(err)
	}
	r.err = err
	return n, err
}

// Decode decompresses a complete LZMA alone container.
func Decode(container []byte) ([]byte, error) {
	r, err := NewReader(bytes.NewReader(container))
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
