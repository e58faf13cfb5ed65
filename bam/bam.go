// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bam implements a streaming, borrowed-view decoder for the binary
// BAM alignment format over a BGZF-decoded byte stream. It covers
// sequential record iteration only: no SAM text encode/decode, no
// indexing, no merging.
package bam

import (
	"encoding/binary"
	"io"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/bgzf"
	"github.com/biogo/htsio/breader"
)

// Reader decodes a stream of BAM records. Header fields are parsed once at
// construction and are immutable thereafter.
type Reader struct {
	br *breader.Reader

	Text       []byte
	References []Reference

	pos int

	// cigarScratch is reused across Next calls so decoding the packed
	// little-endian CIGAR ops doesn't allocate per record; every other
	// Record field borrows the buffered window directly.
	cigarScratch []CigarOp
}

// NewReader returns a Reader decoding BAM records from src, which is
// expected to already be a BGZF-decoded byte stream (see bgzf.NewReader).
func NewReader(src breader.Source) (*Reader, error) {
	br, err := breader.New(src)
	if err != nil {
		return nil, err
	}
	r := &Reader{br: br}
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenConfig builds the BGZF-wrapped byte source cfg describes and returns
// a Reader over it, after parsing the BAM header. A path input
// is always treated as BGZF-compressed regardless of extension, since BAM's
// wire format mandates it; a stream input still needs cfg.Compressed set.
func OpenConfig(cfg breader.Config) (*Reader, error) {
	if cfg.Path != "" {
		f, err := breader.OpenFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		src, err := bgzf.DetectAndWrap(f, cfg.Threads)
		if err != nil {
			return nil, err
		}
		return NewReader(src)
	}
	src, err := breader.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	return NewReader(src)
}

// Open opens path as a BGZF-compressed BAM file and reads its header.
func Open(path string, threads int) (*Reader, error) {
	return OpenConfig(breader.Config{Path: path, Threads: threads})
}

// Next returns the next record, or io.EOF once the stream is exhausted.
// EOF between records is a clean end of stream; EOF mid-record is
// htsio.ErrTruncated.
func (r *Reader) Next() (Record, error) {
	r.br.DropUntil(r.pos)
	r.pos = 0

	lb := r.br.Read(4)
	if len(lb) == 0 {
		return Record{}, io.EOF
	}
	if len(lb) < 4 {
		return Record{}, htsio.ErrTruncated
	}
	blockSize := int(binary.LittleEndian.Uint32(lb[:4]))
	if blockSize < 32 {
		return Record{}, &htsio.MalformedError{Format: "bam", Reason: "block_size smaller than fixed record fields"}
	}

	need := 4 + blockSize
	win := r.br.Read(need)
	if len(win) < need {
		return Record{}, htsio.ErrTruncated
	}

	b := win[4:need]
	var rec Record
	rec.RefID = int32(binary.LittleEndian.Uint32(b[0:4]))
	rec.Pos = int32(binary.LittleEndian.Uint32(b[4:8]))
	lReadName := int(b[8])
	rec.MapQ = b[9]
	rec.Bin = binary.LittleEndian.Uint16(b[10:12])
	nCigarOp := int(binary.LittleEndian.Uint16(b[12:14]))
	rec.Flag = binary.LittleEndian.Uint16(b[14:16])
	lSeq := int32(binary.LittleEndian.Uint32(b[16:20]))
	rec.NextRefID = int32(binary.LittleEndian.Uint32(b[20:24]))
	rec.NextPos = int32(binary.LittleEndian.Uint32(b[24:28]))
	rec.TLen = int32(binary.LittleEndian.Uint32(b[28:32]))
	rec.LSeq = lSeq

	if lSeq < 0 {
		return Record{}, &htsio.MalformedError{Format: "bam", Reason: "negative l_seq"}
	}
	seqBytes := (int(lSeq) + 1) / 2
	if 32+lReadName+nCigarOp*4+seqBytes+int(lSeq) > len(b) {
		return Record{}, &htsio.MalformedError{Format: "bam", Reason: "variable-length fields exceed block_size"}
	}

	off := 32
	if lReadName > 0 {
		rec.ReadName = b[off : off+lReadName-1] // exclude NUL terminator
	}
	off += lReadName

	if cap(r.cigarScratch) < nCigarOp {
		r.cigarScratch = make([]CigarOp, nCigarOp)
	}
	r.cigarScratch = r.cigarScratch[:nCigarOp]
	for i := 0; i < nCigarOp; i++ {
		r.cigarScratch[i] = CigarOp(binary.LittleEndian.Uint32(b[off+i*4 : off+i*4+4]))
	}
	rec.Cigar = r.cigarScratch
	off += nCigarOp * 4

	rec.Seq = b[off : off+seqBytes]
	off += seqBytes

	rec.Qual = b[off : off+int(lSeq)]
	off += int(lSeq)

	rec.Aux = b[off:]

	r.pos = need
	return rec, nil
}

// Close releases the underlying byte source.
func (r *Reader) Close() error { return r.br.Close() }
