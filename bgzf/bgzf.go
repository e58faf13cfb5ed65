// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bgzf implements streaming decompression and compression of the
// Blocked GZip Format used by BAM and BCF, and a plain single-stream zlib
// fallback for ordinary ".gz" inputs. A bgzf.Reader re-emits decoded bytes
// through the same Source interface breader.Reader consumes, so the format
// decoders built on top of it are unaware that the underlying bytes were
// ever compressed.
//
// The wire format is parsed and built directly rather than through
// compress/gzip: the "BC" extra subfield and the fixed 18-byte header
// layout are easier to keep bit-exact than by driving compress/gzip's
// generic Header.Extra field.
package bgzf

import (
	"encoding/binary"

	"github.com/biogo/htsio"
)

// ErrBadBlock is returned on a BGZF header magic mismatch, CRC failure, or
// ISIZE disagreement.
var ErrBadBlock = htsio.ErrBadBlock

const (
	// BlockHeaderLen is the fixed size of a BGZF gzip member header: the
	// 10-byte gzip fixed header, the 2-byte XLEN field, and the 6-byte "BC"
	// extra subfield (SI1, SI2, SLEN, BSIZE).
	BlockHeaderLen = 18

	// blockFooterLen is the 4-byte CRC32 plus 4-byte ISIZE trailer.
	blockFooterLen = 8

	// MaxBlockSize is the largest permitted inflated payload of a single
	// BGZF block.
	MaxBlockSize = 0x10000

	// blockSize is the largest chunk of input data packed into one block
	// by the Writer; it is kept comfortably below MaxBlockSize so that
	// incompressible input still fits after deflation.
	blockSize = 0xff00
)

var bgzfExtraPrefix = [4]byte{'B', 'C', 2, 0}

// eofBlock is the canonical 28-byte empty BGZF block marking end of stream.
var eofBlock = []byte{
	0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff,
	0x06, 0x00, 0x42, 0x43, 0x02, 0x00, 0x1b, 0x00, 0x03, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// blockHeader is the parsed form of a BGZF block's fixed 18-byte header.
type blockHeader struct {
	bsize int // value of the BSIZE field; block length on the wire is bsize+1.
}

// parseBlockHeader validates a BGZF block header and returns the BSIZE
// field it carries.
func parseBlockHeader(b []byte) (blockHeader, error) {
	if b[0] != 0x1f || b[1] != 0x8b || b[2] != 8 || b[3]&0x04 == 0 {
		return blockHeader{}, ErrBadBlock
	}
	xlen := binary.LittleEndian.Uint16(b[10:12])
	if xlen != 6 {
		return blockHeader{}, ErrBadBlock
	}
	if [4]byte{b[12], b[13], b[14], b[15]} != bgzfExtraPrefix {
		return blockHeader{}, ErrBadBlock
	}
	bsize := int(binary.LittleEndian.Uint16(b[16:18]))
	return blockHeader{bsize: bsize}, nil
}

// cdataLen returns the length of the compressed payload of a block whose
// BSIZE field is h.bsize: BSIZE - XLEN - 19.
func (h blockHeader) cdataLen() int { return h.bsize - 6 - 19 }

// putBlockHeader writes an 18-byte BGZF block header with the given BSIZE
// into b, which must have length BlockHeaderLen.
func putBlockHeader(b []byte, bsize int) {
	b[0], b[1], b[2], b[3] = 0x1f, 0x8b, 8, 0x04
	b[4], b[5], b[6], b[7], b[8], b[9] = 0, 0, 0, 0, 0, 0xff // MTIME, XFL, OS
	binary.LittleEndian.PutUint16(b[10:12], 6)
	copy(b[12:16], bgzfExtraPrefix[:])
	binary.LittleEndian.PutUint16(b[16:18], uint16(bsize))
}
