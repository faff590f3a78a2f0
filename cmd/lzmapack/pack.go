// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kr/pretty"

	"github.com/ulikunitz/alone"
	"github.com/ulikunitz/alone/internal/xlog"
)

// parameters converts the options into compression parameters. The
// preset defines the dictionary size; the other options override it.
func parameters(opts *options) (p alone.Parameters, err error) {
	preset := opts.preset
	if preset < 0 {
		preset = alone.DefaultPreset
	}
	p = alone.Preset(preset)
	if opts.lc >= 0 {
		p.LC = opts.lc
	}
	if opts.lp >= 0 {
		p.LP = opts.lp
	}
	if opts.pb >= 0 {
		p.PB = opts.pb
	}
	if opts.dict != "" {
		n, err := parseSize(opts.dict)
		if err != nil {
			return p, err
		}
		if n > math.MaxUint32 {
			return p, fmt.Errorf("dictionary size %s too large",
				opts.dict)
		}
		p.DictSize = uint32(n)
	}
	if opts.binaryTree {
		p.Matcher = alone.BinaryTree
	}
	if opts.noEOS {
		p.EOSMarker = false
	}
	if opts.unknownSize {
		p.SizeMode = alone.SizeOmitted
	}
	if err = p.Verify(); err != nil {
		return p, err
	}
	return p, nil
}

// sizeUnits lists the supported suffixes of parseSize. Longer suffixes
// come first.
var sizeUnits = []struct {
	suffix string
	shift  uint
}{
	{"KiB", 10}, {"MiB", 20}, {"GiB", 30},
	{"K", 10}, {"M", 20}, {"G", 30},
	{"k", 10},
}

// parseSize parses a byte size like 65536, 64K or 8MiB.
func parseSize(s string) (n uint64, err error) {
	num, shift := s, uint(0)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			num, shift = s[:len(s)-len(u.suffix)], u.shift
			break
		}
	}
	n, err = strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n > math.MaxUint64>>shift {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return n << shift, nil
}

// userPathError represents a path error presentable to a user. In
// difference to os.PathError it removes the information of the
// operation returning the error.
type userPathError struct {
	Path string
	Err  error
}

func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// userError converts a path error into an error message acceptable for
// users. The operation information of os.PathError, for instance that
// lstat failed, isn't relevant for them.
func userError(err error) error {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

// checkTarget checks that output can be written. An existing output file
// is only replaced with the force option.
func checkTarget(input, output string, opts *options) error {
	if _, err := os.Lstat(output); err == nil {
		if !opts.force {
			return &userPathError{Path: output,
				Err: errors.New("file exists")}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	ia, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	oa, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if ia == oa {
		return &userPathError{Path: output,
			Err: errors.New("input and output are the same file")}
	}
	return nil
}

func compress(ctx context.Context, output, input string, p alone.Parameters, opts *options) error {
	if err := checkTarget(input, output, opts); err != nil {
		return err
	}
	if xlog.Default().Enabled(xlog.Debug) {
		xlog.Debugf("parameters %s", pretty.Sprint(p))
	}
	h, err := alone.EncodeFile(ctx, output, input, p)
	if err != nil {
		return err
	}
	if fi, err := os.Stat(output); err == nil {
		xlog.Printf("%s: %d -> %d bytes (%s)", input, h.Size,
			fi.Size(), h)
	}
	return nil
}

func decompress(ctx context.Context, output, input string, opts *options) error {
	if err := checkTarget(input, output, opts); err != nil {
		return err
	}
	h, err := alone.DecodeFile(ctx, output, input)
	if err != nil {
		return err
	}
	xlog.Printf("%s: %s", input, h)
	return nil
}

func test(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	h, n, err := alone.Test(ctx, f)
	if err != nil {
		return err
	}
	xlog.Printf("%s: ok, %d bytes (%s)", path, n, h)
	return nil
}

func list(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	h, err := alone.ReadHeader(f)
	if err != nil {
		return err
	}
	size := "unknown"
	if h.SizeKnown() {
		size = strconv.FormatUint(h.Size, 10)
	}
	fmt.Fprintf(w, "file:              %s\n", path)
	fmt.Fprintf(w, "properties:        %s (%#02x)\n", h.Properties,
		h.Properties.Byte())
	fmt.Fprintf(w, "dictionary size:   %d\n", h.DictSize)
	fmt.Fprintf(w, "uncompressed size: %s\n", size)
	fmt.Fprintf(w, "compressed size:   %d\n", fi.Size()-alone.HeaderLen)
	return nil
}
