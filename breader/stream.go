// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package breader

import (
	"io"

	"github.com/biogo/htsio"
)

// StreamSource adapts a caller-provided io.Reader. The stream is borrowed:
// StreamSource has no Close method, and the caller retains ownership.
type StreamSource struct {
	r io.Reader
}

// NewStream wraps r as a Source. r is not closed by the returned Source or
// by any Reader built over it.
func NewStream(r io.Reader) *StreamSource {
	return &StreamSource{r: r}
}

// Read implements Source.
func (s *StreamSource) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &htsio.IOError{Op: "read", Err: err}
	}
	return n, err
}
