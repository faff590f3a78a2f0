// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"fmt"

	"github.com/ulikunitz/xz/lzma"
)

// Limits of the dictionary size. The maximum is the one of the LZMA
// Utils.
const (
	MinDictSize = lzma.MinDictCap
	MaxDictSize = 1536 << 20
)

// DefaultDictSize is used if Parameters.DictSize is zero.
const DefaultDictSize = 8 << 20

// SizeMode selects whether the uncompressed size is recorded in the
// header.
type SizeMode int

const (
	// SizeRecorded stores the exact uncompressed size.
	SizeRecorded SizeMode = iota
	// SizeOmitted stores UnknownSize and terminates the stream with
	// an end-of-stream marker.
	SizeOmitted
)

func (m SizeMode) String() string {
	switch m {
	case SizeRecorded:
		return "recorded"
	case SizeOmitted:
		return "omitted"
	}
	return fmt.Sprintf("SizeMode(%d)", int(m))
}

// Matcher selects the match finder of the LZMA coder.
type Matcher int

const (
	// HashTable4 finds matches using a hash table over four-byte
	// sequences. It is the faster one.
	HashTable4 Matcher = iota
	// BinaryTree uses binary trees and finds longer matches.
	BinaryTree
)

func (m Matcher) String() string {
	switch m {
	case HashTable4:
		return "HashTable4"
	case BinaryTree:
		return "BinaryTree"
	}
	return fmt.Sprintf("Matcher(%d)", int(m))
}

func (m Matcher) algorithm() lzma.MatchAlgorithm {
	if m == BinaryTree {
		return lzma.BinaryTree
	}
	return lzma.HashTable4
}

// Parameters control the compression into an LZMA alone container. The
// zero value isn't valid because the properties are zero; use Default
// or Preset.
type Parameters struct {
	Properties
	// DictSize is the dictionary size written to the header. Zero
	// selects DefaultDictSize.
	DictSize uint32
	SizeMode SizeMode
	// EOSMarker requests an end-of-stream marker even if the size is
	// recorded. Decoders that ignore the size field need it. It is
	// always written for SizeOmitted.
	EOSMarker bool
	Matcher   Matcher
}

// presetDictExps maps the presets 0..9 to the exponents of two for the
// dictionary size.
var presetDictExps = [10]uint{18, 20, 21, 22, 22, 23, 23, 24, 25, 26}

// DefaultPreset is the preset returned by Default.
const DefaultPreset = 6

// Preset returns the parameters for the presets 0 to 9. The properties
// are always LC=3, LP=0 and PB=2; only the dictionary size grows with
// the preset. The size is recorded and the stream is terminated by an
// end-of-stream marker. The function panics for other values of n.
func Preset(n int) Parameters {
	if !(0 <= n && n < len(presetDictExps)) {
		panic(fmt.Errorf("alone: preset %d out of range 0..9", n))
	}
	return Parameters{
		Properties: Properties{LC: 3, LP: 0, PB: 2},
		DictSize:   1 << presetDictExps[n],
		EOSMarker:  true,
	}
}

// Default returns the parameters of DefaultPreset.
func Default() Parameters {
	return Preset(DefaultPreset)
}

// dictSize returns the effective dictionary size.
func (p Parameters) dictSize() uint32 {
	if p.DictSize == 0 {
		return DefaultDictSize
	}
	return p.DictSize
}

// Verify checks the parameters. All errors wrap ErrInvalidParameters.
func (p Parameters) Verify() error {
	if err := p.Properties.Verify(); err != nil {
		return err
	}
	if d := p.dictSize(); !(MinDictSize <= d && d <= MaxDictSize) {
		return fmt.Errorf("%w: dictionary size %d out of range %d..%d",
			ErrInvalidParameters, d, MinDictSize, MaxDictSize)
	}
	switch p.SizeMode {
	case SizeRecorded, SizeOmitted:
	default:
		return fmt.Errorf("%w: unsupported size mode %s",
			ErrInvalidParameters, p.SizeMode)
	}
	switch p.Matcher {
	case HashTable4, BinaryTree:
	default:
		return fmt.Errorf("%w: unsupported matcher %s",
			ErrInvalidParameters, p.Matcher)
	}
	return nil
}

// header returns the header for the given uncompressed size. The size is
// ignored if the size is not recorded.
func (p Parameters) header(size int64) Header {
	h := Header{Properties: p.Properties, DictSize: p.dictSize()}
	if p.SizeMode == SizeOmitted {
		h.Size = UnknownSize
	} else {
		h.Size = uint64(size)
	}
	return h
}

// writerConfig returns the configuration for the LZMA writer.
func (p Parameters) writerConfig(size int64) lzma.WriterConfig {
	cfg := lzma.WriterConfig{
		Properties: p.Properties.lzmaProperties(),
		DictCap:    int(p.dictSize()),
		Matcher:    p.Matcher.algorithm(),
		EOSMarker:  p.EOSMarker,
	}
	if p.SizeMode == SizeOmitted {
		cfg.EOSMarker = true
	} else {
		cfg.SizeInHeader = true
		cfg.Size = size
	}
	return cfg
}

// String returns a string representation of the parameters.
func (p Parameters) String() string {
	return fmt.Sprintf("%s dict=%d size=%s matcher=%s eos=%t",
		p.Properties, p.dictSize(), p.SizeMode, p.Matcher, p.EOSMarker)
}
