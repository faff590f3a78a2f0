// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Errors returned by the package are wrapping one of the following
// values. Use errors.Is to test for them.
var (
	// ErrInvalidParameters indicates compression parameters outside
	// of the range supported by the LZMA coder.
	ErrInvalidParameters = errors.New("alone: invalid parameters")
	// ErrIO indicates that the input couldn't be read or the output
	// couldn't be written completely.
	ErrIO = errors.New("alone: I/O failure")
	// ErrCoder indicates a failure reported by the LZMA coder.
	ErrCoder = errors.New("alone: coder failure")
	// ErrFormat indicates that the data is not a valid LZMA alone
	// container.
	ErrFormat = errors.New("alone: invalid format")
)

// errClosed is returned for operations on closed writers.
var errClosed = errors.New("alone: writer is closed")

func ioError(err error) error {
	if err == nil || errors.Is(err, ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// coderError classifies an error returned by the lzma package. Errors
// that originate from our own readers and writers have been marked
// already and are returned unchanged.
func coderError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrIO), errors.Is(err, ErrCoder),
		errors.Is(err, ErrInvalidParameters),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", ErrCoder, err)
}

// formatError classifies a decoding error of the lzma package.
func formatError(err error) error {
	switch {
	case err == nil, err == io.EOF:
		return err
	case errors.Is(err, ErrIO), errors.Is(err, ErrFormat),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", ErrFormat, err)
}

// sourceReader marks all read errors except io.EOF as I/O errors.
type sourceReader struct {
	r io.Reader
}

func (r sourceReader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	if err != nil && err != io.EOF {
		err = ioError(err)
	}
	return n, err
}

// sinkWriter marks all write errors as I/O errors.
type sinkWriter struct {
	w io.Writer
}

func (w sinkWriter) Write(p []byte) (n int, err error) {
	n, err = w.w.Write(p)
	return n, ioError(err)
}

// writeFull writes all of p to w. A writer returning less than len(p)
// bytes without an error is retried until it stops making progress.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return ioError(err)
		}
		if n <= 0 {
			return ioError(io.ErrShortWrite)
		}
		p = p[n:]
	}
	return nil
}
