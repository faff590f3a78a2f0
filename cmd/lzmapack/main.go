// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Command lzmapack compresses a file, typically an executable image,
// into an LZMA alone container and restores it.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ogier/pflag"

	"github.com/ulikunitz/alone/internal/xlog"
)

const usageStr = `Usage: lzmapack [OPTION]... INPUT OUTPUT
       lzmapack -l|-t [OPTION]... FILE
Compress INPUT into the LZMA alone container OUTPUT or decompress it.

  -d, --decompress    decompress INPUT into OUTPUT
  -t, --test          test the integrity of FILE
  -l, --list          list the header of FILE
  -f, --force         overwrite an existing OUTPUT
  -q, --quiet         suppress all warnings
  -v, --verbose       report sizes and parameters
  -h, --help          give this help
  -0 ... -9           compression preset; default is 6

Compression parameters override the preset:

      --lc=N          literal context bits (0..8); default 3
      --lp=N          literal position bits (0..4); default 0
      --pb=N          position bits (0..4); default 2
      --dict=SIZE     dictionary size, e.g. 8MiB or 65536
      --bt            use the binary tree match finder
      --no-eos        omit the end-of-stream marker if the size is
                      recorded
      --unknown-size  don't record the uncompressed size

Exit status is 0 on success, 1 for usage errors, 2 if the operation
failed and 7 if it has been interrupted.
`

// exit codes
const (
	exitOK          = 0
	exitUsage       = 1
	exitFailure     = 2
	exitInterrupted = 7
)

// presetFilter removes the preset flags -0 ... -9 from the arguments
// because pflag cannot handle them. The last preset given wins.
func presetFilter(args []string) (filtered []string, preset int) {
	preset = -1
	filtered = make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			filtered = append(filtered, args[i:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			filtered = append(filtered, arg)
			continue
		}
		buf := new(bytes.Buffer)
		buf.Grow(len(arg))
		for _, c := range arg {
			if '0' <= c && c <= '9' {
				preset = int(c - '0')
				continue
			}
			buf.WriteRune(c)
		}
		if s := buf.String(); s != "-" {
			filtered = append(filtered, s)
		}
	}
	return filtered, preset
}

type options struct {
	decompress  bool
	test        bool
	list        bool
	force       bool
	quiet       bool
	verbose     bool
	help        bool
	preset      int
	lc, lp, pb  int
	dict        string
	binaryTree  bool
	noEOS       bool
	unknownSize bool
}

// parseOptions parses the command line arguments without the program
// name.
func parseOptions(cmdName string, args []string) (opts *options, files []string, err error) {
	args, preset := presetFilter(args)
	opts = &options{preset: preset}

	fs := pflag.NewFlagSet(cmdName, pflag.ContinueOnError)
	fs.SetInterspersed(true)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.BoolVarP(&opts.decompress, "decompress", "d", false, "")
	fs.BoolVarP(&opts.test, "test", "t", false, "")
	fs.BoolVarP(&opts.list, "list", "l", false, "")
	fs.BoolVarP(&opts.force, "force", "f", false, "")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "")
	fs.BoolVarP(&opts.help, "help", "h", false, "")
	fs.IntVar(&opts.lc, "lc", -1, "")
	fs.IntVar(&opts.lp, "lp", -1, "")
	fs.IntVar(&opts.pb, "pb", -1, "")
	fs.StringVar(&opts.dict, "dict", "", "")
	fs.BoolVar(&opts.binaryTree, "bt", false, "")
	fs.BoolVar(&opts.noEOS, "no-eos", false, "")
	fs.BoolVar(&opts.unknownSize, "unknown-size", false, "")
	if err = fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if opts.help {
		return opts, nil, nil
	}
	files = fs.Args()

	modes := 0
	for _, m := range []bool{opts.decompress, opts.test, opts.list} {
		if m {
			modes++
		}
	}
	switch {
	case modes > 1:
		return nil, nil, errors.New(
			"only one of -d, -t and -l can be given")
	case (opts.test || opts.list) && len(files) != 1:
		return nil, nil, errors.New("expected a single FILE")
	case !(opts.test || opts.list) && len(files) != 2:
		return nil, nil, errors.New("expected INPUT and OUTPUT")
	}
	return opts, files, nil
}

// run executes the command and returns the exit code.
func run(ctx context.Context, cmdName string, args []string, stdout io.Writer) int {
	opts, files, err := parseOptions(cmdName, args)
	if err != nil {
		xlog.Warn(err)
		xlog.Warnf("for help, type %s -h", cmdName)
		return exitUsage
	}
	if opts.help {
		fmt.Fprint(stdout, usageStr)
		return exitOK
	}
	switch {
	case opts.quiet:
		xlog.SetLevel(xlog.Silent)
	case opts.verbose:
		xlog.SetLevel(xlog.Debug)
	default:
		xlog.SetLevel(xlog.Warning)
	}

	switch {
	case opts.list:
		err = list(stdout, files[0])
	case opts.test:
		err = test(ctx, files[0])
	case opts.decompress:
		err = decompress(ctx, files[1], files[0], opts)
	default:
		p, perr := parameters(opts)
		if perr != nil {
			xlog.Warn(perr)
			return exitUsage
		}
		err = compress(ctx, files[1], files[0], p, opts)
	}
	if err != nil {
		if ctx.Err() != nil {
			xlog.Warn("interrupted")
			return exitInterrupted
		}
		xlog.Warn(userError(err))
		return exitFailure
	}
	return exitOK
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	xlog.SetOutput(os.Stderr, cmdName+": ")

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cmdName, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
