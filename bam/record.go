// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bam

// Record is a single BAM alignment record. Every slice field except Cigar
// borrows directly from the buffered reader's window; Cigar is copied out
// of the window into scratch owned by the Reader. All slice fields are
// valid only until the next call to Next.
type Record struct {
	RefID     int32
	Pos       int32
	MapQ      uint8
	Bin       uint16
	Flag      uint16
	NextRefID int32
	NextPos   int32
	TLen      int32

	ReadName []byte    // borrowed, NUL-terminator excluded
	Cigar    []CigarOp // packed wire ops, decoded into reader-owned scratch
	Seq      []byte   // borrowed, 4-bit packed bases, (LSeq+1)/2 bytes
	Qual     []byte   // borrowed, one byte per base, 0xff if absent
	Aux      []byte   // borrowed, raw tag-value blob

	LSeq int32
}
