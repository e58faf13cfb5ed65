// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
)

// Writer packs written bytes into BGZF blocks of at most blockSize bytes of
// input each, deflating with klauspost/compress/flate the same way Reader
// inflates with it, and terminates the stream with the canonical empty
// block on Close.
type Writer struct {
	w       io.Writer
	fw      *flate.Writer
	pending []byte
	closed  bool
}

// NewWriter returns a Writer emitting BGZF blocks to w.
func NewWriter(w io.Writer) *Writer {
	fw, _ := flate.NewWriter(io.Discard, flate.DefaultCompression)
	return &Writer{w: w, fw: fw}
}

// Write buffers p, flushing complete blockSize-sized chunks as BGZF blocks.
func (w *Writer) Write(p []byte) (int, error) {
	n := len(p)
	w.pending = append(w.pending, p...)
	for len(w.pending) >= blockSize {
		if err := w.flushBlock(w.pending[:blockSize]); err != nil {
			return 0, err
		}
		w.pending = w.pending[blockSize:]
	}
	return n, nil
}

// flushBlock deflates data into exactly one BGZF member and writes it.
func (w *Writer) flushBlock(data []byte) error {
	var cdata flateBuffer
	w.fw.Reset(&cdata)
	if _, err := w.fw.Write(data); err != nil {
		return err
	}
	if err := w.fw.Close(); err != nil {
		return err
	}

	var hdr [BlockHeaderLen]byte
	bsize := BlockHeaderLen + len(cdata.b) + blockFooterLen - 1
	putBlockHeader(hdr[:], bsize)
	if _, err := w.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.w.Write(cdata.b); err != nil {
		return err
	}
	var tail [blockFooterLen]byte
	putUint32(tail[:4], crc32.ChecksumIEEE(data))
	putUint32(tail[4:], uint32(len(data)))
	_, err := w.w.Write(tail[:])
	return err
}

// Close flushes any buffered bytes smaller than one full block and writes
// the terminal empty BGZF block, exactly mirroring the read side's
// io.EOF-on-empty-final-block contract.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if len(w.pending) > 0 {
		if err := w.flushBlock(w.pending); err != nil {
			return err
		}
		w.pending = nil
	}
	_, err := w.w.Write(eofBlock)
	return err
}

// flateBuffer is a minimal growable byte sink, avoiding a bytes.Buffer
// import solely for this accumulation.
type flateBuffer struct{ b []byte }

func (f *flateBuffer) Write(p []byte) (int, error) {
	f.b = append(f.b, p...)
	return len(p), nil
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
