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

// payloadWriter forwards the stream produced by the LZMA writer to w.
// The LZMA writer starts with its own header; payloadWriter compares it
// with the header that has already been written and drops it.
type payloadWriter struct {
	w      io.Writer
	header [HeaderLen]byte
	// number of header bytes seen
	seen int
	// The lzma package writes the size 0 as unknown size. If set, the
	// size field of the coder header may consist of 0xff bytes.
	zeroSize bool
}

// headerByteOK checks byte c of the coder header at position i.
func (pw *payloadWriter) headerByteOK(i int, c byte) bool {
	if c == pw.header[i] {
		return true
	}
	return pw.zeroSize && i >= 5 && c == 0xff
}

func (pw *payloadWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	if pw.seen < HeaderLen {
		k := HeaderLen - pw.seen
		if k > len(p) {
			k = len(p)
		}
		for i, c := range p[:k] {
			if !pw.headerByteOK(pw.seen+i, c) {
				return 0, fmt.Errorf(
					"%w: coder header %x differs from %x",
					ErrCoder, p[:k],
					pw.header[pw.seen:pw.seen+k])
			}
		}
		pw.seen += k
		p = p[k:]
	}
	if err = writeFull(pw.w, p); err != nil {
		return 0, err
	}
	return n, nil
}

// Writer compresses data into an LZMA alone container. The header is
// written by NewWriter. Close must be called to complete the container.
type Writer struct {
	h    Header
	lw   *lzma.Writer
	pw   *payloadWriter
	size int64
	n    int64
	err  error
}

// NewWriter writes the header to w and returns a writer for the
// uncompressed data. If the size is recorded, exactly size bytes must be
// written before Close is called. For SizeOmitted the size argument is
// ignored.
func NewWriter(w io.Writer, size int64, p Parameters) (*Writer, error) {
	if err := p.Verify(); err != nil {
		return nil, err
	}
	if p.SizeMode == SizeOmitted {
		size = -1
	} else if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d",
			ErrInvalidParameters, size)
	}
	zw := &Writer{h: p.header(size), size: size}
	data, err := zw.h.MarshalBinary()
	if err != nil {
		return nil, err
	}
	zw.pw = &payloadWriter{w: w, zeroSize: zw.h.Size == 0}
	copy(zw.pw.header[:], data)
	if err = writeFull(w, data); err != nil {
		return nil, err
	}
	zw.lw, err = p.writerConfig(size).NewWriter(zw.pw)
	if err != nil {
		return nil, coderError(err)
	}
	return zw, nil
}

// Header returns the header that has been written.
func (w *Writer) Header() Header {
	return w.h
}

// Written returns the number of uncompressed bytes accepted so far.
func (w *Writer) Written() int64 {
	return w.n
}

// Write compresses p. Writing more bytes than the recorded size is an
// error.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.size >= 0 && int64(len(p)) > w.size-w.n {
		p = p[:w.size-w.n]
		err = fmt.Errorf("%w: input exceeds recorded size %d",
			ErrIO, w.size)
	}
	n, werr := w.lw.Write(p)
	w.n += int64(n)
	if werr != nil {
		err = coderError(werr)
	}
	if err != nil {
		w.err = err
	}
	return n, err
}

// Close completes the LZMA stream and flushes it. It doesn't close the
// underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	w.err = errClosed
	if w.size >= 0 && w.n != w.size {
		return fmt.Errorf("%w: got %d bytes; header records %d",
			ErrIO, w.n, w.size)
	}
	if err := w.lw.Close(); err != nil {
		return coderError(err)
	}
	if w.pw.seen < HeaderLen {
		return fmt.Errorf("%w: coder wrote incomplete header",
			ErrCoder)
	}
	return nil
}

// Encode compresses raw into a complete LZMA alone container. Encode is
// deterministic: the same input and parameters produce the same output.
func Encode(raw []byte, p Parameters) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(HeaderLen + len(raw)/2 + 64)
	w, err := NewWriter(buf, int64(len(raw)), p)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(raw); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
