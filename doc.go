// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

/*
Package alone writes and reads LZMA files in the legacy single-stream
"alone" format, the format produced by lzma_alone and by LZMA Utils.

A container consists of a 13-byte header followed by the raw LZMA stream:

	byte 0      properties byte (pb*5+lp)*9+lc
	bytes 1-4   dictionary size, uint32 little-endian
	bytes 5-12  uncompressed size, uint64 little-endian, or all 0xff
	bytes 13..  LZMA stream

The entropy coding itself is done by the lzma package of
github.com/ulikunitz/xz. This package builds the header, checks that the
coder agrees with it and takes care that a container is either written
completely or reported as failed.

Encode and Decode work on byte slices, NewWriter and NewReader on
streams. EncodeFile and DecodeFile replace the destination file
atomically.
*/
package alone
