// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package alone

import (
	"fmt"

	"github.com/ulikunitz/xz/lzma"
)

// Ranges of the literal and position context bits.
const (
	MinLC = 0
	MaxLC = 8
	MinLP = 0
	MaxLP = 4
	MinPB = 0
	MaxPB = 4
)

// maxPropertiesByte is the largest valid properties byte (PB=4, LP=4,
// LC=8).
const maxPropertiesByte = (MaxPB*5+MaxLP)*9 + MaxLC

// Properties contains the literal context bits LC, the literal position
// bits LP and the position bits PB of the LZMA coder.
type Properties struct {
	LC int
	LP int
	PB int
}

// Byte returns the properties byte (PB*5+LP)*9+LC. The properties must
// be valid.
func (p Properties) Byte() byte {
	return byte((p.PB*5+p.LP)*9 + p.LC)
}

// PropertiesFromByte decodes a properties byte.
func PropertiesFromByte(b byte) (p Properties, err error) {
	if b > maxPropertiesByte {
		return Properties{}, fmt.Errorf(
			"%w: properties byte %#02x out of range", ErrFormat, b)
	}
	p.LC = int(b % 9)
	b /= 9
	p.LP = int(b % 5)
	p.PB = int(b / 5)
	return p, nil
}

// Verify checks the ranges of the properties.
func (p Properties) Verify() error {
	if !(MinLC <= p.LC && p.LC <= MaxLC) {
		return fmt.Errorf("%w: LC=%d out of range %d..%d",
			ErrInvalidParameters, p.LC, MinLC, MaxLC)
	}
	if !(MinLP <= p.LP && p.LP <= MaxLP) {
		return fmt.Errorf("%w: LP=%d out of range %d..%d",
			ErrInvalidParameters, p.LP, MinLP, MaxLP)
	}
	if !(MinPB <= p.PB && p.PB <= MaxPB) {
		return fmt.Errorf("%w: PB=%d out of range %d..%d",
			ErrInvalidParameters, p.PB, MinPB, MaxPB)
	}
	return nil
}

// String returns a string representation of the properties.
func (p Properties) String() string {
	return fmt.Sprintf("lc=%d lp=%d pb=%d", p.LC, p.LP, p.PB)
}

func (p Properties) lzmaProperties() *lzma.Properties {
	return &lzma.Properties{LC: p.LC, LP: p.LP, PB: p.PB}
}
