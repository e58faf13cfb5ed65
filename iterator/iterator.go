// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iterator provides the uniform "next record or stop" façade shared
// by every format reader in this module: any reader whose Next method
// returns (view, io.EOF) at the end of the stream can be driven by a Seq.
package iterator

import "io"

// NextFunc advances a reader by one record. It returns io.EOF when the
// stream is exhausted; any other error is a structural failure, after which
// the caller's reader is only safe to close.
type NextFunc[T any] func() (T, error)

// Seq is a single-pass iterator over borrowed record views produced by a
// NextFunc. A Seq may not be restarted; callers re-open the underlying
// reader to iterate again.
type Seq[T any] struct {
	next NextFunc[T]
	cur  T
	err  error
	done bool
}

// New wraps next in a Seq.
func New[T any](next NextFunc[T]) *Seq[T] {
	return &Seq[T]{next: next}
}

// Next advances the iterator, making the next record available through
// Record. It returns false once iteration has stopped, either because the
// stream ended or because a structural error occurred; Err distinguishes
// the two cases.
func (s *Seq[T]) Next() bool {
	if s.done {
		return false
	}
	s.cur, s.err = s.next()
	if s.err != nil {
		s.done = true
		if s.err == io.EOF {
			s.err = nil
		}
		var zero T
		s.cur = zero
		return false
	}
	return true
}

// Record returns the view produced by the most recent call to Next that
// returned true. Like all record views in this module, it is invalidated by
// the following call to Next.
func (s *Seq[T]) Record() T { return s.cur }

// Err returns the first non-EOF error encountered during iteration.
func (s *Seq[T]) Err() error { return s.err }
