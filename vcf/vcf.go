// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vcf implements a streaming, borrowed-view decoder for the
// Variant Call Format, following the same "reader owns a breader.Reader,
// records borrow from it" shape as the fasta and fastq packages.
package vcf

import (
	"bytes"
	"io"
	"strconv"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/breader"
)

// HeaderPair is one "##key=value" meta-information line.
type HeaderPair struct {
	Key   string
	Value string
}

// Record is a single VCF data line. Alt, Filter, Info, Formats and Samples
// borrow their backing arrays from scratch storage owned by the Reader and
// are invalidated, along with Chrom/Id/Ref, by the next call to Next.
type Record struct {
	Chrom   []byte
	Pos     int32
	Id      []byte
	Ref     []byte
	Alt     [][]byte
	Qual    float32
	Filter  [][]byte
	Info    [][]byte
	Formats [][]byte
	Samples [][][]byte
}

// Reader decodes a stream of VCF records.
type Reader struct {
	br *breader.Reader

	Header    []HeaderPair
	Genotypes []string

	pos int

	// Scratch storage reused across Next calls: every slice-of-slices
	// field in Record points into these.
	alt       [][]byte
	filter    [][]byte
	info      [][]byte
	formats   [][]byte
	samples   [][][]byte
	sampleBuf [][]byte
}

// NewReader returns a Reader decoding VCF records from src, after parsing
// the "##"/"#CHROM" header block.
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

// OpenConfig builds the byte source cfg describes and returns a Reader over
// it, after parsing the header block; see fasta.OpenConfig for the
// compression-detection rule.
func OpenConfig(cfg breader.Config) (*Reader, error) {
	src, err := breader.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	return NewReader(src)
}

// Open opens path as a VCF file, auto-detecting a compressed extension
// (".vcf.gz" and similar).
func Open(path string) (*Reader, error) {
	return OpenConfig(breader.Config{Path: path})
}

func (r *Reader) readHeader() error {
	for {
		win := r.br.Read(2)
		if len(win) == 0 {
			return &htsio.MalformedHeaderError{Format: "vcf", Reason: "file has no #CHROM line"}
		}
		if win[0] != '#' {
			return &htsio.MalformedHeaderError{Format: "vcf", Reason: "expected header line"}
		}
		if len(win) < 2 || win[1] != '#' {
			// The #CHROM description line.
			end := r.br.ReadUntil('\n', 0)
			line := trimCR(r.br.StringView(0, end))
			cols := bytes.Split(line, []byte{'\t'})
			if len(cols) < 9 {
				return &htsio.MalformedHeaderError{Format: "vcf", Reason: "fewer than 9 fixed columns on #CHROM line"}
			}
			// Columns 10+ are sample names. Exactly 9 fixed columns
			// must precede the samples; that is a structural
			// requirement of the format, not a heuristic.
			for _, c := range cols[9:] {
				r.Genotypes = append(r.Genotypes, string(c))
			}
			if r.br.Eof(end) {
				r.pos = end
			} else {
				r.pos = end + 1
			}
			return nil
		}
		end := r.br.ReadUntil('\n', 0)
		line := trimCR(r.br.StringView(2, end))
		if k, v, ok := bytes.Cut(line, []byte{'='}); ok {
			r.Header = append(r.Header, HeaderPair{Key: string(k), Value: string(v)})
		} else {
			r.Header = append(r.Header, HeaderPair{Key: string(line)})
		}
		if r.br.Eof(end) {
			return &htsio.MalformedHeaderError{Format: "vcf", Reason: "file has no #CHROM line"}
		}
		r.br.DropUntil(end + 1)
	}
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

	end := r.br.ReadUntil('\n', 0)
	line := trimCR(r.br.StringView(0, end))
	if r.br.Eof(end) {
		r.pos = end
	} else {
		r.pos = end + 1
	}

	fields := bytes.SplitN(line, []byte{'\t'}, 10)
	if len(fields) != 10 {
		return Record{}, &htsio.MalformedError{Format: "vcf", Reason: "record does not have 10 tab-separated fields"}
	}

	pos, err := strconv.ParseInt(string(fields[1]), 10, 32)
	if err != nil {
		return Record{}, &htsio.ParseIntError{Field: "pos", Value: string(fields[1]), Err: err}
	}
	qual, err := strconv.ParseFloat(string(fields[5]), 32)
	if err != nil {
		return Record{}, &htsio.ParseFloatError{Field: "qual", Value: string(fields[5]), Err: err}
	}

	r.alt = splitInto(r.alt[:0], fields[4], ',', false)
	r.filter = splitInto(r.filter[:0], fields[6], ';', true)
	r.info = splitInto(r.info[:0], fields[7], ';', true)
	r.formats = splitInto(r.formats[:0], fields[8], ':', false)

	r.samples = r.samples[:0]
	r.sampleBuf = r.sampleBuf[:0]
	for _, col := range bytes.Split(fields[9], []byte{'\t'}) {
		start := len(r.sampleBuf)
		r.sampleBuf = splitInto(r.sampleBuf, col, ':', false)
		r.samples = append(r.samples, r.sampleBuf[start:])
	}

	return Record{
		Chrom:   fields[0],
		Pos:     int32(pos),
		Id:      fields[2],
		Ref:     fields[3],
		Alt:     r.alt,
		Qual:    float32(qual),
		Filter:  r.filter,
		Info:    r.info,
		Formats: r.formats,
		Samples: r.samples,
	}, nil
}

// splitInto appends the parts of field split on sep to dst. If dotIsEmpty
// is set and field is the literal "." sentinel, no parts are appended.
func splitInto(dst [][]byte, field []byte, sep byte, dotIsEmpty bool) [][]byte {
	if dotIsEmpty && len(field) == 1 && field[0] == '.' {
		return dst
	}
	for {
		i := bytes.IndexByte(field, sep)
		if i < 0 {
			return append(dst, field)
		}
		dst = append(dst, field[:i])
		field = field[i+1:]
	}
}

// Close releases the underlying byte source.
func (r *Reader) Close() error { return r.br.Close() }
