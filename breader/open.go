// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package breader

import (
	"io"
	"strings"

	"github.com/biogo/htsio/bgzf"
)

// Config is the construction input shared by every format reader in this
// module: either a filesystem path or a caller-owned stream, a Compressed
// flag consulted only for the stream case, and an advisory BGZF worker
// count for the formats built on it.
type Config struct {
	Path       string
	Stream     io.Reader
	Compressed bool
	Threads    int
}

// compressedExts are the path suffixes implying a compressed (BGZF- or
// gzip-wrapped) byte stream.
var compressedExts = []string{".gz", ".bgzf", ".bam", ".bcf"}

func compressedExt(path string) bool {
	for _, ext := range compressedExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// OpenSource builds the byte source cfg describes: a plain or
// BGZF/zlib-wrapped file or stream. A format reader's NewReader can be
// handed the result directly.
//
// For a path input, compression is decided by extension and cfg.Compressed
// is ignored. For a stream input, cfg.Compressed decides it, and the actual
// compressed framing (BGZF block stream vs a plain single-member gzip
// file) is still sniffed from the stream's first bytes, since the
// construction input carries no extension to tell them apart.
//
// Plain (uncompressed) path inputs are memory-mapped when the platform
// allows; a Reader built over the mapping copies the whole file into its
// buffer once, up front, and the text decoders borrow fields from that
// copy, not from the mapping itself. Compressed paths use positional
// reads, since the BGZF inflater consumes the file serially anyway.
func OpenSource(cfg Config) (Source, error) {
	if cfg.Path != "" {
		if !compressedExt(cfg.Path) {
			if m, err := OpenMmap(cfg.Path); err == nil {
				return m, nil
			}
			return OpenFile(cfg.Path)
		}
		f, err := OpenFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return bgzf.DetectAndWrap(f, cfg.Threads)
	}
	s := NewStream(cfg.Stream)
	if !cfg.Compressed {
		return s, nil
	}
	return bgzf.DetectAndWrap(s, cfg.Threads)
}
