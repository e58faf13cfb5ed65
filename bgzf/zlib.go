// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// ZlibReader decodes an ordinary ".gz"-style single-stream gzip input that
// is not BGZF-blocked, used when a compressed input turns out not to be a
// valid BGZF member stream: a ".gz" file shares BGZF's member magic but is
// a single unblocked deflate stream.
type ZlibReader struct {
	src io.Reader
	zr  io.ReadCloser
}

// NewZlibReader returns a Reader decoding a single gzip stream from src as
// one continuous inflate, with no block structure.
func NewZlibReader(src io.Reader) (*ZlibReader, error) {
	zr, err := gzip.NewReader(src)
	if err != nil {
		return nil, ErrBadBlock
	}
	return &ZlibReader{src: src, zr: zr}, nil
}

// Read implements breader.Source.
func (r *ZlibReader) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

// Close releases the zlib decoder and the underlying source, if closeable.
func (r *ZlibReader) Close() error {
	err := r.zr.Close()
	if c, ok := r.src.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
