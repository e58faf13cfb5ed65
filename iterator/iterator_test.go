// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterator_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/biogo/htsio/breader"
	"github.com/biogo/htsio/fasta"
	"github.com/biogo/htsio/iterator"
)

func TestSeqOverFasta(t *testing.T) {
	r, err := fasta.NewReader(breader.NewStream(strings.NewReader(">a\nAC\n>b\nGT\n")))
	if err != nil {
		t.Fatal(err)
	}
	it := iterator.New(r.Next)
	var ids []string
	for it.Next() {
		ids = append(ids, string(it.Record().Id))
	}
	if err := it.Err(); err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("ids = %v", ids)
	}
	// A stopped iterator stays stopped.
	if it.Next() {
		t.Fatal("expected exhausted iterator to stay exhausted")
	}
}

func TestSeqSurfacesStructuralError(t *testing.T) {
	fail := errors.New("broken")
	calls := 0
	it := iterator.New(func() (int, error) {
		calls++
		if calls < 3 {
			return calls, nil
		}
		return 0, fail
	})
	var got []int
	for it.Next() {
		got = append(got, it.Record())
	}
	if !errors.Is(it.Err(), fail) {
		t.Fatalf("err = %v, want %v", it.Err(), fail)
	}
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestSeqCleanEOF(t *testing.T) {
	it := iterator.New(func() (int, error) { return 0, io.EOF })
	if it.Next() {
		t.Fatal("expected immediate stop")
	}
	if it.Err() != nil {
		t.Fatalf("err = %v, want nil on clean end of stream", it.Err())
	}
}
