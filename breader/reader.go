// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package breader implements the layered buffered-reader core described in
// htsio's design: a growable byte buffer over an arbitrary byte source that
// supports delimiter scanning and zero-copy substring borrowing. It is the
// foundation every format decoder in this module is built on.
package breader

import (
	"bytes"
	"io"
)

// minGrowth is the minimum number of bytes pulled from the source on each
// fill, matching the "chunks of at least 4KiB" growth policy.
const minGrowth = 4096

// maxFill caps a single fill so a length field lying about a truncated
// source exhausts the source before it exhausts memory.
const maxFill = 1 << 20

// Source is the pull-model byte source a Reader draws from. Sources are
// owned exclusively by the Reader wrapping them; bgzf.Reader is itself a
// Source, which is how compressed inputs slot under the same decoders.
type Source interface {
	io.Reader
}

// AllViewer is implemented by seekable sources, such as a memory-mapped
// file, that can hand back their entire contents as one contiguous range
// without an intervening copy through Reader's growable buffer.
type AllViewer interface {
	ViewAll() ([]byte, error)
}

// Reader owns a growable buffer over a Source and exposes the primitives
// format decoders use to locate record boundaries and borrow fields without
// copying. It is not safe for concurrent use.
//
// The buffer holds a contiguous prefix of unconsumed bytes from the source
// at logical offsets [0, Len()). DropUntil discards a prefix and renumbers
// every later offset; the Epoch counter increments whenever that happens so
// callers can detect a borrow that outlived the buffer shape that produced
// it.
type Reader struct {
	src   Source
	buf   []byte
	eof   bool
	epoch int
}

// New returns a Reader drawing from src. If src implements AllViewer (a
// memory-mapped file, for example) its entire content is pulled in
// immediately and reused as the buffer's backing array, avoiding a copy.
func New(src Source) (*Reader, error) {
	r := &Reader{src: src}
	if v, ok := src.(AllViewer); ok {
		b, err := v.ViewAll()
		if err != nil {
			return nil, err
		}
		r.buf = b
		r.eof = true
	}
	return r, nil
}

// Read ensures the buffer holds at least min bytes unless the source is
// exhausted first, and returns the current valid window. It is idempotent
// and monotonic in buffer size: repeated calls with a smaller min return the
// same window without touching the source.
func (r *Reader) Read(min int) []byte {
	for len(r.buf) < min && !r.eof {
		need := min - len(r.buf)
		if need > maxFill {
			need = maxFill
		}
		r.fill(need)
	}
	return r.buf
}

// Len returns the number of bytes currently buffered.
func (r *Reader) Len() int { return len(r.buf) }

// fill grows the buffer by at least need bytes from the source, or marks
// eof if the source cannot supply that many.
func (r *Reader) fill(need int) {
	if need < minGrowth {
		need = minGrowth
	}
	cur := len(r.buf)
	if cap(r.buf)-cur < need {
		newCap := cap(r.buf) * 2
		if newCap < cur+need {
			newCap = cur + need
		}
		nb := make([]byte, cur, newCap)
		copy(nb, r.buf)
		r.buf = nb
	}
	r.buf = r.buf[:cur+need]
	n, err := io.ReadFull(r.src, r.buf[cur:])
	r.buf = r.buf[:cur+n]
	if err != nil {
		// io.ReadFull returns ErrUnexpectedEOF on a short final read and
		// io.EOF when nothing at all was read; either way the source is
		// exhausted and every later offset becomes findable only up to
		// the bytes already buffered.
		r.eof = true
	}
}

// ReadUntil returns the smallest index i >= from such that buffer[i] ==
// delim, growing the buffer from the source as needed. If no such index
// exists and the source is exhausted, it returns the EOF sentinel: the
// final buffered length, for which Eof reports true.
func (r *Reader) ReadUntil(delim byte, from int) int {
	search := from
	for {
		if i := bytes.IndexByte(r.buf[search:], delim); i >= 0 {
			return search + i
		}
		if r.eof {
			return len(r.buf)
		}
		search = len(r.buf)
		r.fill(minGrowth)
	}
}

// DropUntil logically discards bytes [0, n). Every previously returned
// borrow (from StringView, or ReadUntil/Read offsets taken before the
// call) becomes invalid, and offsets previously >= n renumber to i - n.
func (r *Reader) DropUntil(n int) {
	if n <= 0 {
		return
	}
	copy(r.buf, r.buf[n:])
	r.buf = r.buf[:len(r.buf)-n]
	r.epoch++
}

// Eof reports whether i equals the final buffered size after the source has
// been exhausted, i.e. whether i is the EOF sentinel returned by ReadUntil.
func (r *Reader) Eof(i int) bool { return r.eof && i == len(r.buf) }

// StringView borrows bytes [a, b). The returned slice is valid only until
// the next DropUntil or buffer-growing operation (Read/ReadUntil past the
// currently buffered window).
func (r *Reader) StringView(a, b int) []byte { return r.buf[a:b] }

// Epoch returns a counter that increments every time a prior borrow from
// this Reader is invalidated by DropUntil. A caller can record the value
// when it takes a borrow and compare it later to tell whether the borrow
// is still valid. The record types in the format packages do not store or
// check it, so reading a record view after the next Next call is not
// detected.
func (r *Reader) Epoch() int { return r.epoch }

// Close releases the underlying source, if it is closeable.
func (r *Reader) Close() error {
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
