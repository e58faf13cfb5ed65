// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package breader

import (
	"io"
	"os"

	"github.com/biogo/htsio"
)

// FileSource is a byte source backed by repeated positional reads against an
// open file descriptor.
type FileSource struct {
	f   *os.File
	off int64
}

// OpenFile opens path for reading and returns a FileSource over it.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &htsio.IOError{Op: "open", Err: err}
	}
	return &FileSource{f: f}, nil
}

// Read implements Source, issuing a pread(2)-style positional read at the
// source's current logical offset.
func (s *FileSource) Read(p []byte) (int, error) {
	n, err := s.f.ReadAt(p, s.off)
	s.off += int64(n)
	if err != nil && err != io.EOF {
		return n, &htsio.IOError{Op: "read", Err: err}
	}
	return n, err
}

// Close closes the underlying file descriptor.
func (s *FileSource) Close() error {
	return s.f.Close()
}
