// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/ulikunitz/alone/internal/xio"
)

// ctxReader stops reading once the context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r ctxReader) Read(p []byte) (n int, err error) {
	if err = r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// openRegular opens path and checks that it is a regular file.
func openRegular(path string) (f *os.File, fi os.FileInfo, err error) {
	if f, err = os.Open(path); err != nil {
		return nil, nil, ioError(err)
	}
	if fi, err = f.Stat(); err != nil {
		f.Close()
		return nil, nil, ioError(err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s is not a regular file",
			ErrIO, path)
	}
	return f, fi, nil
}

// finish commits out if err is nil and aborts it otherwise.
func finish(out *xio.File, err error) error {
	if err != nil {
		if aerr := out.Abort(); aerr != nil {
			return multierror.Append(err, ioError(aerr))
		}
		return err
	}
	return ioError(out.Commit())
}

// EncodeFile compresses the file src into the LZMA alone container dst.
// The source is opened before dst is touched. The container is written
// to a temporary file that replaces dst only after the container has
// been written completely; on errors or cancellation of ctx dst is left
// unchanged.
func EncodeFile(ctx context.Context, dst, src string, p Parameters) (h Header, err error) {
	if err = p.Verify(); err != nil {
		return h, err
	}
	in, fi, err := openRegular(src)
	if err != nil {
		return h, err
	}
	defer in.Close()

	out, err := xio.Create(dst, fi.Mode().Perm())
	if err != nil {
		return h, ioError(err)
	}
	defer func() { err = finish(out, err) }()

	w, err := NewWriter(out, fi.Size(), p)
	if err != nil {
		return h, err
	}
	r := ctxReader{ctx: ctx, r: sourceReader{r: in}}
	if _, err = io.Copy(w, r); err != nil {
		return h, err
	}
	if err = w.Close(); err != nil {
		return h, err
	}
	return w.Header(), nil
}

// DecodeFile decompresses the LZMA alone container src into the file
// dst. Like EncodeFile it replaces dst only after success.
func DecodeFile(ctx context.Context, dst, src string) (h Header, err error) {
	in, fi, err := openRegular(src)
	if err != nil {
		return h, err
	}
	defer in.Close()

	zr, err := NewReader(ctxReader{ctx: ctx, r: in})
	if err != nil {
		return h, err
	}

	out, err := xio.Create(dst, fi.Mode().Perm())
	if err != nil {
		return h, ioError(err)
	}
	defer func() { err = finish(out, err) }()

	if _, err = io.Copy(sinkWriter{w: out}, zr); err != nil {
		return h, err
	}
	return zr.Header(), nil
}

// Test decompresses the container in r and discards the output. It
// returns the header and the number of uncompressed bytes.
func Test(ctx context.Context, r io.Reader) (h Header, n int64, err error) {
	zr, err := NewReader(ctxReader{ctx: ctx, r: r})
	if err != nil {
		return h, 0, err
	}
	n, err = io.Copy(io.Discard, zr)
	return zr.Header(), n, err
}
