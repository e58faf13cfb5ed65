// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package breader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource(t *testing.T) {
	path := writeTemp(t, "in.txt", "one\ntwo\n")
	src, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	r, err := New(src)
	if err != nil {
		t.Fatal(err)
	}
	end := r.ReadUntil('\n', 0)
	if got := string(r.StringView(0, end)); got != "one" {
		t.Fatalf("first line = %q", got)
	}
}

func TestMmapSourceViewAll(t *testing.T) {
	path := writeTemp(t, "in.txt", "mapped contents")
	src, err := OpenMmap(path)
	if err != nil {
		t.Skipf("mmap unavailable: %v", err)
	}
	defer src.Close()
	all, err := src.ViewAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(all) != "mapped contents" {
		t.Fatalf("ViewAll = %q", all)
	}

	// A Reader over an AllViewer adopts the whole view up front: no
	// source reads, immediate EOF sentinel semantics.
	r, err := New(src)
	if err != nil {
		t.Fatal(err)
	}
	end := r.ReadUntil('\n', 0)
	if !r.Eof(end) {
		t.Fatal("expected EOF sentinel on unterminated mapped input")
	}
	if got := string(r.StringView(0, end)); got != "mapped contents" {
		t.Fatalf("view = %q", got)
	}
}

func TestOpenSourcePlainPathIsDirect(t *testing.T) {
	path := writeTemp(t, "reads.fa", ">r\nACGT\n")
	src, err := OpenSource(Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(r.Read(7)); got != ">r\nACGT" && got != ">r\nACGT\n" {
		t.Fatalf("window = %q", got)
	}
	r.Close()
}
