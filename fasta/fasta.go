// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fasta implements a streaming, borrowed-view decoder for the FASTA
// sequence format, built directly on breader.Reader.
package fasta

import (
	"io"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/breader"
)

// Record is a single FASTA entry. Id, Desc and Seq borrow from the Reader's
// internal buffer and are valid only until the next call to Next.
type Record struct {
	Id   []byte
	Desc []byte
	Seq  []byte
}

type span struct{ a, b int }

// Reader decodes a stream of FASTA records. It is not safe for concurrent
// use, matching breader.Reader.
type Reader struct {
	br  *breader.Reader
	pos int // drop cursor: start of the next record's '>' within br's buffer

	// lines and stitch are reused across Next calls instead of being
	// allocated per record.
	lines  []span
	stitch []byte
}

// NewReader returns a Reader decoding FASTA records from src.
func NewReader(src breader.Source) (*Reader, error) {
	br, err := breader.New(src)
	if err != nil {
		return nil, err
	}
	return &Reader{br: br}, nil
}

// OpenConfig builds the byte source cfg describes (a path or a stream,
// with compression detected by extension for the former and by
// cfg.Compressed for the latter) and returns a Reader over it.
func OpenConfig(cfg breader.Config) (*Reader, error) {
	src, err := breader.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	return NewReader(src)
}

// Open opens path as a FASTA file, auto-detecting a compressed extension
// (".gz", ".bgzf") the way OpenConfig does.
func Open(path string) (*Reader, error) {
	return OpenConfig(breader.Config{Path: path})
}

// Next returns the next record, or io.EOF once the stream is exhausted. Any
// other error is a structural failure (htsio.MalformedError); the Reader is
// then only safe to Close.
func (r *Reader) Next() (Record, error) {
	r.br.DropUntil(r.pos)
	r.pos = 0

	win := r.br.Read(1)
	if len(win) == 0 {
		return Record{}, io.EOF
	}
	if win[0] != '>' {
		return Record{}, &htsio.MalformedError{Format: "fasta", Reason: "record does not start with '>'"}
	}

	lineEnd := r.br.ReadUntil('\n', 1)
	headerLine := trimCR(r.br.StringView(1, lineEnd))
	id, desc := splitHeaderLine(headerLine)

	r.lines = r.lines[:0]
	cur := lineEnd
	for !r.br.Eof(cur) {
		start := cur + 1
		w := r.br.Read(start + 1)
		if start >= len(w) {
			break
		}
		if w[start] == '>' {
			break
		}
		end := r.br.ReadUntil('\n', start)
		r.lines = append(r.lines, span{start, end})
		cur = end
	}

	if r.br.Eof(cur) {
		r.pos = cur
	} else {
		r.pos = cur + 1
	}

	var seq []byte
	switch len(r.lines) {
	case 0:
	case 1:
		seq = trimCR(r.br.StringView(r.lines[0].a, r.lines[0].b))
	default:
		r.stitch = r.stitch[:0]
		for _, sp := range r.lines {
			r.stitch = append(r.stitch, trimCR(r.br.StringView(sp.a, sp.b))...)
		}
		seq = r.stitch
	}
	return Record{Id: id, Desc: desc, Seq: seq}, nil
}

// splitHeaderLine splits a FASTA description line into the id (up to the
// first whitespace) and the remaining description.
func splitHeaderLine(line []byte) (id, desc []byte) {
	i := 0
	for i < len(line) && line[i] != ' ' && line[i] != '\t' {
		i++
	}
	id = line[:i]
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	desc = line[i:]
	return id, desc
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}

// Close releases the underlying byte source.
func (r *Reader) Close() error { return r.br.Close() }
