// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestReaderHeader(t *testing.T) {
	data := testData(10000, 8)
	container, err := Encode(data, Preset(2))
	if err != nil {
		t.Fatalf("Encode error %s", err)
	}
	r, err := NewReader(bytes.NewReader(container))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	if h, want := r.Header(), Preset(2).header(int64(len(data))); h != want {
		t.Fatalf("Header() = %s; want %s", h, want)
	}
	g, err := io.ReadAll(iotest.OneByteReader(r))
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if !bytes.Equal(g, data) {
		t.Fatalf("decoded data differs")
	}
}

func TestReaderTruncated(t *testing.T) {
	data := testData(50000, 9)
	container, err := Encode(data, Default())
	if err != nil {
		t.Fatalf("Encode error %s", err)
	}
	for _, n := range []int{HeaderLen, HeaderLen + 1, HeaderLen + 4,
		len(container) / 2} {
		_, err = Decode(container[:n])
		if !errors.Is(err, ErrFormat) {
			t.Errorf("Decode(%d of %d bytes) error %v; want %v",
				n, len(container), err, ErrFormat)
		}
	}
}

func TestReaderSizeMismatch(t *testing.T) {
	p := Default()
	data := []byte("abcdefghijklmnopqrstuvwxyz")
	container, err := Encode(data, p)
	if err != nil {
		t.Fatalf("Encode error %s", err)
	}
	binary.LittleEndian.PutUint64(container[5:], uint64(len(data)+10))
	_, err = Decode(container)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("Decode error %v; want %v", err, ErrFormat)
	}
}

func TestReaderDictSize(t *testing.T) {
	container, err := Encode([]byte("abc"), Default())
	if err != nil {
		t.Fatalf("Encode error %s", err)
	}
	binary.LittleEndian.PutUint32(container[1:], MaxDictSize+1)
	if _, err = NewReader(bytes.NewReader(container)); !errors.Is(err,
		ErrFormat) {
		t.Fatalf("NewReader error %v; want %v", err, ErrFormat)
	}
}

func TestReaderIOError(t *testing.T) {
	data := testData(100000, 10)
	container, err := Encode(data, Default())
	if err != nil {
		t.Fatalf("Encode error %s", err)
	}
	errBroken := errors.New("broken pipe")
	r := io.MultiReader(bytes.NewReader(container[:len(container)/2]),
		errReader{errBroken})
	zr, err := NewReader(r)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	_, err = io.Copy(io.Discard, zr)
	if !errors.Is(err, ErrIO) || !errors.Is(err, errBroken) {
		t.Fatalf("Copy error %v; want %v wrapping %v", err, ErrIO,
			errBroken)
	}
	if _, err2 := zr.Read(make([]byte, 1)); err2 != err {
		t.Fatalf("Read after error returned %v; want %v", err2, err)
	}
}

func TestDecodeDefaultIgnoringSize(t *testing.T) {
	data := testData(100000, 1)
	container, err := Encode(data, Default())
	if err != nil {
		t.Fatalf("Encode error %s", err)
	}
	binary.LittleEndian.PutUint64(container[5:], UnknownSize)
	if g := decodeLZMA(t, container); !bytes.Equal(g, data) {
		t.Fatalf("lzma decoding differs from input")
	}
	g, err := Decode(container)
	if err != nil {
		t.Fatalf("Decode error %s", err)
	}
	if !bytes.Equal(g, data) {
		t.Fatalf("Decode differs from input")
	}
}
