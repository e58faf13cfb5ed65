// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastq implements a streaming, borrowed-view decoder for the FASTQ
// sequence format, following the same shape as the fasta package: a
// four-line group per record over a breader.Reader.
package fastq

import (
	"io"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/breader"
)

// Record is a single FASTQ entry. Id, Seq and Qual borrow from the Reader's
// internal buffer and are valid only until the next call to Next.
type Record struct {
	Id   []byte
	Seq  []byte
	Qual []byte
}

// Reader decodes a stream of FASTQ records.
type Reader struct {
	br  *breader.Reader
	pos int
}

// NewReader returns a Reader decoding FASTQ records from src.
func NewReader(src breader.Source) (*Reader, error) {
	br, err := breader.New(src)
	if err != nil {
		return nil, err
	}
	return &Reader{br: br}, nil
}

// OpenConfig builds the byte source cfg describes and returns a Reader over
// it; see fasta.OpenConfig for the compression-detection rule.
func OpenConfig(cfg breader.Config) (*Reader, error) {
	src, err := breader.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	return NewReader(src)
}

// Open opens path as a FASTQ file, auto-detecting a compressed extension.
func Open(path string) (*Reader, error) {
	return OpenConfig(breader.Config{Path: path})
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}

// Next returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (Record, error) {
	r.br.DropUntil(r.pos)
	r.pos = 0

	win := r.br.Read(1)
	if len(win) == 0 {
		return Record{}, io.EOF
	}
	if win[0] != '@' {
		return Record{}, &htsio.MalformedError{Format: "fastq", Reason: "record does not start with '@'"}
	}

	idEnd := r.br.ReadUntil('\n', 1)
	if r.br.Eof(idEnd) {
		return Record{}, htsio.ErrTruncated
	}
	id := trimCR(r.br.StringView(1, idEnd))

	seqStart := idEnd + 1
	seqEnd := r.br.ReadUntil('\n', seqStart)
	if r.br.Eof(seqEnd) {
		return Record{}, htsio.ErrTruncated
	}
	seq := trimCR(r.br.StringView(seqStart, seqEnd))

	plusStart := seqEnd + 1
	w := r.br.Read(plusStart + 1)
	if plusStart >= len(w) || w[plusStart] != '+' {
		return Record{}, &htsio.MalformedError{Format: "fastq", Reason: "third line does not start with '+'"}
	}
	plusEnd := r.br.ReadUntil('\n', plusStart)
	if r.br.Eof(plusEnd) {
		return Record{}, htsio.ErrTruncated
	}

	qualStart := plusEnd + 1
	qualEnd := r.br.ReadUntil('\n', qualStart)
	qual := trimCR(r.br.StringView(qualStart, qualEnd))

	if len(seq) != len(qual) {
		return Record{}, &htsio.MalformedError{Format: "fastq", Reason: "sequence and quality lengths differ"}
	}

	if r.br.Eof(qualEnd) {
		r.pos = qualEnd
	} else {
		r.pos = qualEnd + 1
	}
	return Record{Id: id, Seq: seq, Qual: qual}, nil
}

// Close releases the underlying byte source.
func (r *Reader) Close() error { return r.br.Close() }
