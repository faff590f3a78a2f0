// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package xio

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.lzma")

	f, err := Create(path, 0o640)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	tmp := f.TempName()
	assert.Equal(t, dir, filepath.Dir(tmp))
	assert.True(t, strings.HasPrefix(filepath.Base(tmp), ".image.lzma."))

	_, err = f.Write([]byte("hello, "))
	require.NoError(t, err)
	_, err = f.Write([]byte("world"))
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "file visible before commit")

	require.NoError(t, f.Commit())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", string(data))

	_, err = os.Stat(tmp)
	assert.ErrorIs(t, err, os.ErrNotExist)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
	}

	assert.ErrorIs(t, f.Commit(), ErrFinished)
	assert.ErrorIs(t, f.Abort(), ErrFinished)
	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrFinished)
}

func TestFileAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.lzma")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	f, err := Create(path, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, f.Abort())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.lzma")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	f, err := Create(path, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCreateMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "image.lzma")
	_, err := Create(path, 0o644)
	require.ErrorIs(t, err, os.ErrNotExist)
}
