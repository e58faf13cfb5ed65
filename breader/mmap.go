// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package breader

import (
	"io"

	"golang.org/x/exp/mmap"

	"github.com/biogo/htsio"
)

// MmapSource is a byte source backed by a whole-file memory mapping.
// ViewAll returns a copy of the entire mapping so that a Reader built over
// it can adopt the whole file as its buffer up front.
type MmapSource struct {
	r   *mmap.ReaderAt
	off int64
}

// OpenMmap maps path for reading and returns an MmapSource over it.
func OpenMmap(path string) (*MmapSource, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, &htsio.IOError{Op: "mmap", Err: err}
	}
	return &MmapSource{r: r}, nil
}

// Read implements Source by copying from the mapping at the current logical
// offset.
func (s *MmapSource) Read(p []byte) (int, error) {
	if s.off >= int64(s.r.Len()) {
		// mmap.ReaderAt rejects reads of an empty mapping outright, so
		// report end of source before asking it.
		return 0, io.EOF
	}
	n, err := s.r.ReadAt(p, s.off)
	s.off += int64(n)
	if err != nil && err != io.EOF {
		return n, &htsio.IOError{Op: "read", Err: err}
	}
	return n, err
}

// ViewAll returns the entire mapped file as a single contiguous range,
// copied out of the mapping into a newly allocated slice.
func (s *MmapSource) ViewAll() ([]byte, error) {
	n := s.r.Len()
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	_, err := s.r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return nil, &htsio.IOError{Op: "read", Err: err}
	}
	return buf, nil
}

// Close unmaps the file.
func (s *MmapSource) Close() error {
	return s.r.Close()
}
