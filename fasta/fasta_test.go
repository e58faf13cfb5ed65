// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fasta

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/bgzf"
	"github.com/biogo/htsio/breader"
)

func TestMultiLineSequence(t *testing.T) {
	const in = ">r1 d\nACGT\nNNN\n>r2\nA\n"
	r, err := NewReader(breader.NewStream(strReader(in)))
	if err != nil {
		t.Fatal(err)
	}

	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Id) != "r1" || string(rec.Desc) != "d" || string(rec.Seq) != "ACGTNNN" {
		t.Fatalf("got %+v", recordStrings(rec))
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Id) != "r2" || string(rec.Desc) != "" || string(rec.Seq) != "A" {
		t.Fatalf("got %+v", recordStrings(rec))
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected repeated io.EOF, got %v", err)
	}
}

func TestSingleLineSequenceIsDirectBorrow(t *testing.T) {
	const in = ">only\nACGT\n"
	r, err := NewReader(breader.NewStream(strReader(in)))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Seq) != "ACGT" {
		t.Fatalf("seq = %q", rec.Seq)
	}
	// ">only\n" is 6 bytes, so the sequence line starts at offset 6 of the
	// buffered window.
	if win := r.br.Read(0); &rec.Seq[0] != &win[6] {
		t.Fatal("single-line sequence is not a borrow of the reader's buffer")
	}
}

func TestCRLFEndings(t *testing.T) {
	const in = ">r\r\nACGT\r\n"
	r, err := NewReader(breader.NewStream(strReader(in)))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Id) != "r" || string(rec.Seq) != "ACGT" {
		t.Fatalf("got %+v", recordStrings(rec))
	}
}

func TestMalformedMissingCaret(t *testing.T) {
	r, err := NewReader(breader.NewStream(strReader("ACGT\n")))
	if err != nil {
		t.Fatal(err)
	}
	var me *htsio.MalformedError
	if _, err := r.Next(); !errors.As(err, &me) {
		t.Fatalf("got %v, want MalformedError", err)
	}
}

func TestOpenConfigCompressedStream(t *testing.T) {
	const in = ">r1 d\nACGT\n"
	var buf bytes.Buffer
	w := bgzf.NewWriter(&buf)
	if _, err := w.Write([]byte(in)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenConfig(breader.Config{Stream: &buf, Compressed: true})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Id) != "r1" || string(rec.Seq) != "ACGT" {
		t.Fatalf("got %+v", recordStrings(rec))
	}
}

type recStrs struct{ Id, Desc, Seq string }

func recordStrings(r Record) recStrs {
	return recStrs{string(r.Id), string(r.Desc), string(r.Seq)}
}

func strReader(s string) *strings.Reader { return strings.NewReader(s) }
