// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vcf

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/breader"
)

const testHeader = "##fileformat=VCFv4.2\n##source=test\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tSAMP1\tSAMP2\n"

func open(t *testing.T, body string) *Reader {
	t.Helper()
	r, err := NewReader(breader.NewStream(strings.NewReader(testHeader + body)))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestHeaderAndGenotypes(t *testing.T) {
	r := open(t, "")
	if len(r.Header) != 2 || r.Header[0].Key != "fileformat" || r.Header[0].Value != "VCFv4.2" {
		t.Fatalf("header = %+v", r.Header)
	}
	if want := []string{"SAMP1", "SAMP2"}; len(r.Genotypes) != 2 || r.Genotypes[0] != want[0] || r.Genotypes[1] != want[1] {
		t.Fatalf("genotypes = %v", r.Genotypes)
	}
}

func TestBasicRecord(t *testing.T) {
	r := open(t, "chr1\t100\trs1\tA\tC,G\t30.5\tPASS\tDP=10\tGT\t0/1\t1/1\n")
	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Chrom) != "chr1" || rec.Pos != 100 || string(rec.Id) != "rs1" || string(rec.Ref) != "A" {
		t.Fatalf("got %+v", rec)
	}
	if len(rec.Alt) != 2 || string(rec.Alt[0]) != "C" || string(rec.Alt[1]) != "G" {
		t.Fatalf("alt = %v", rec.Alt)
	}
	if rec.Qual != 30.5 {
		t.Fatalf("qual = %v", rec.Qual)
	}
	if len(rec.Filter) != 1 || string(rec.Filter[0]) != "PASS" {
		t.Fatalf("filter = %v", rec.Filter)
	}
	if len(rec.Info) != 1 || string(rec.Info[0]) != "DP=10" {
		t.Fatalf("info = %v", rec.Info)
	}
	if len(rec.Formats) != 1 || string(rec.Formats[0]) != "GT" {
		t.Fatalf("formats = %v", rec.Formats)
	}
	if len(rec.Samples) != 2 || string(rec.Samples[0][0]) != "0/1" || string(rec.Samples[1][0]) != "1/1" {
		t.Fatalf("samples = %v", rec.Samples)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestDotSentinelIsEmptySequence(t *testing.T) {
	r := open(t, "chr1\t1\t.\tA\tC\t10\t.\t.\tGT\t0/0\t0/0\n")
	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Filter) != 0 {
		t.Fatalf("filter = %v, want empty", rec.Filter)
	}
	if len(rec.Info) != 0 {
		t.Fatalf("info = %v, want empty", rec.Info)
	}
}

func TestShortLineIsMalformed(t *testing.T) {
	r := open(t, "chr1\t1\t.\tA\tC\t10\tPASS\n")
	var me *htsio.MalformedError
	if _, err := r.Next(); !errors.As(err, &me) {
		t.Fatalf("got %v, want MalformedError", err)
	}
}

func TestBadPosIsParseIntError(t *testing.T) {
	r := open(t, "chr1\tNaN\t.\tA\tC\t10\tPASS\t.\tGT\t0/0\t0/0\n")
	var pe *htsio.ParseIntError
	if _, err := r.Next(); !errors.As(err, &pe) {
		t.Fatalf("got %v, want ParseIntError", err)
	}
}

func TestMultipleRecords(t *testing.T) {
	r := open(t, "chr1\t1\t.\tA\tC\t1\tPASS\t.\tGT\t0/0\t0/0\nchr1\t2\t.\tA\tC\t1\tPASS\t.\tGT\t0/0\t0/0\n")
	var positions []int32
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		positions = append(positions, rec.Pos)
	}
	if len(positions) != 2 || positions[0] != 1 || positions[1] != 2 {
		t.Fatalf("positions = %v", positions)
	}
}
