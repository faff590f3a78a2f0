// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package xio provides I/O helpers. The [File] type writes a file under
// a temporary name and moves it to its final path only after all data
// has been written, so that readers never see a partially written
// file.
package xio

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// ErrFinished is returned by operations on a File that has been
// committed or aborted.
var ErrFinished = errors.New("xio: file already committed or aborted")

// bufSize is the size of the write buffer of File.
const bufSize = 64 << 10

// File is a buffered writer for a file that appears at its path only
// after Commit. Either Commit or Abort must be called.
type File struct {
	path string
	f    *os.File
	bw   *bufio.Writer
}

// Create creates a temporary file in the directory of path. The file
// gets the permissions perm.
func Create(path string, perm os.FileMode) (*File, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, err
	}
	if err = f.Chmod(perm); err != nil {
		var errs *multierror.Error
		errs = multierror.Append(errs, err, f.Close(),
			os.Remove(f.Name()))
		return nil, errs.ErrorOrNil()
	}
	return &File{path: path, f: f, bw: bufio.NewWriterSize(f, bufSize)}, nil
}

// Path returns the final path of the file.
func (f *File) Path() string { return f.path }

// TempName returns the name of the temporary file.
func (f *File) TempName() string {
	if f.f == nil {
		return ""
	}
	return f.f.Name()
}

// Write writes data into the temporary file.
func (f *File) Write(p []byte) (n int, err error) {
	if f.f == nil {
		return 0, ErrFinished
	}
	return f.bw.Write(p)
}

// Commit flushes and syncs the temporary file and renames it to the
// final path, replacing an existing file. If any step fails, the
// temporary file is removed and the existing file isn't touched.
func (f *File) Commit() error {
	if f.f == nil {
		return ErrFinished
	}
	err := f.bw.Flush()
	if err == nil {
		err = f.f.Sync()
	}
	if err != nil {
		return f.abort(err)
	}
	tmp := f.f.Name()
	err = f.f.Close()
	f.f = nil
	if err == nil {
		err = os.Rename(tmp, f.path)
	}
	if err != nil {
		var errs *multierror.Error
		errs = multierror.Append(errs, err, removeIfExists(tmp))
		return errs.ErrorOrNil()
	}
	return nil
}

// Abort closes and removes the temporary file.
func (f *File) Abort() error {
	if f.f == nil {
		return ErrFinished
	}
	return f.abort(nil)
}

// abort removes the temporary file and combines cause with the errors
// of the cleanup.
func (f *File) abort(cause error) error {
	tmp := f.f.Name()
	var errs *multierror.Error
	errs = multierror.Append(errs, cause, f.f.Close(), removeIfExists(tmp))
	f.f = nil
	return errs.ErrorOrNil()
}

func removeIfExists(name string) error {
	err := os.Remove(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
