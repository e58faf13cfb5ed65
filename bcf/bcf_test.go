// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcf

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/biogo/htsio/bgzf"
	"github.com/biogo/htsio/breader"
	"github.com/biogo/htsio/vcf"
)

// openWritten wraps the BGZF-compressed output of a Writer back into a
// Reader, the same layering OpenConfig builds for a .bcf path.
func openWritten(t *testing.T, buf *bytes.Buffer) *Reader {
	t.Helper()
	src := bgzf.NewReader(bytes.NewReader(buf.Bytes()), 1)
	r, err := NewReader(breader.NewStream(src))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n")
	if err != nil {
		t.Fatal(err)
	}

	qual := float32(30.5)
	records := []WriteRecord{
		{ChromId: 0, Pos: 99, Rlen: 1, Qual: &qual, Id: "rs1", Ref: "A", Alts: []string{"C", "G"}},
		{ChromId: 0, Pos: 200, Rlen: 1, Qual: nil, Id: ".", Ref: "A", Alts: nil},
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := openWritten(t, &buf)
	if string(r.HeaderText) == "" {
		t.Fatal("expected non-empty header text")
	}

	got, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got.Pos != 99 || string(got.Id) != "rs1" || string(got.Ref) != "A" {
		t.Fatalf("first record = %+v", got)
	}
	if len(got.Alts) != 2 || string(got.Alts[0]) != "C" || string(got.Alts[1]) != "G" {
		t.Fatalf("alts = %+v", got.Alts)
	}
	if got.Qual == nil || *got.Qual != qual {
		t.Fatalf("qual = %v", got.Qual)
	}

	got, err = r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got.Pos != 200 {
		t.Fatalf("second record pos = %d", got.Pos)
	}
	if got.Qual != nil {
		t.Fatalf("expected missing qual, got %v", *got.Qual)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestMissingQualBitPattern(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\n")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(WriteRecord{ChromId: 0, Pos: 0, Rlen: 1, Id: ".", Ref: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := openWritten(t, &buf)
	got, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got.Qual != nil {
		t.Fatalf("expected nil Qual for the missing bit pattern, got %v", *got.Qual)
	}
}

func TestVCFToBCFRoundTrip(t *testing.T) {
	const header = "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\n"
	const body = "chr1\t100\trs1\tA\tC,G\t30.5\tPASS\tDP=10\tGT\t0/1\n"

	vr, err := vcf.NewReader(breader.NewStream(strings.NewReader(header + body)))
	if err != nil {
		t.Fatal(err)
	}
	src, err := vr.Next()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, header)
	if err != nil {
		t.Fatal(err)
	}
	alts := make([]string, len(src.Alt))
	for i, a := range src.Alt {
		alts[i] = string(a)
	}
	qual := src.Qual
	if err := w.Write(WriteRecord{
		ChromId: 0,
		Pos:     src.Pos - 1, // BCF positions are 0-based on the wire
		Rlen:    int32(len(src.Ref)),
		Qual:    &qual,
		Id:      string(src.Id),
		Ref:     string(src.Ref),
		Alts:    alts,
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := openWritten(t, &buf)
	got, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got.Pos != 99 || string(got.Id) != "rs1" || string(got.Ref) != "A" {
		t.Fatalf("got %+v", got)
	}
	if len(got.Alts) != 2 || string(got.Alts[0]) != "C" || string(got.Alts[1]) != "G" {
		t.Fatalf("alts = %v", got.Alts)
	}
	if got.Qual == nil || *got.Qual != 30.5 {
		t.Fatalf("qual = %v", got.Qual)
	}
	// The documented encoder limitation: filters and per-sample data are
	// not carried to the wire.
	if len(got.Filters) != 0 || got.NFmt != 0 || len(got.Format) != 0 || len(got.Samples) != 0 {
		t.Fatalf("expected empty filters and per-sample fields, got %+v", got)
	}
}
