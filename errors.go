// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package htsio provides the streaming, borrowed-view record iterators for
// FASTA, FASTQ, VCF, BAM and BCF implemented in the sibling format packages,
// and the shared error taxonomy they all return.
package htsio

import (
	"errors"
	"strconv"
)

// Sentinel errors returned by the byte sources, the BGZF adapter and the
// format decoders. Use errors.Is to test a returned error against one of
// these, or errors.As for the carrying types below that attach detail.
var (
	// ErrUnknownExtension is returned when a path-based Open call cannot
	// choose a decoder from the file extension.
	ErrUnknownExtension = errors.New("htsio: unknown file extension")

	// ErrBadBlock is returned by the BGZF/zlib adapter on a header magic,
	// CRC, or length mismatch.
	ErrBadBlock = errors.New("htsio: bad bgzf block")

	// ErrTruncated is returned when a stream ends mid-record or mid-header.
	ErrTruncated = errors.New("htsio: truncated stream")
)

// IOError wraps a failure reported by an underlying byte source.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return "htsio: " + e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// MalformedHeaderError reports a structural violation of a format's header
// contract, such as a VCF description line with fewer than nine columns.
type MalformedHeaderError struct {
	Format string
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return "htsio: " + e.Format + ": malformed header: " + e.Reason
}

// MalformedError reports a record-level structural violation: a wrong field
// count, a missing delimiter, or a bad magic byte.
type MalformedError struct {
	Format string
	Reason string
}

func (e *MalformedError) Error() string {
	return "htsio: " + e.Format + ": malformed record: " + e.Reason
}

// ParseIntError reports failure to convert a field to a signed integer.
type ParseIntError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseIntError) Error() string {
	return "htsio: parse int: field " + e.Field + ": " + strconv.Quote(e.Value) + ": " + e.Err.Error()
}
func (e *ParseIntError) Unwrap() error { return e.Err }

// ParseFloatError reports failure to convert a field to a 32-bit float.
type ParseFloatError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseFloatError) Error() string {
	return "htsio: parse float: field " + e.Field + ": " + strconv.Quote(e.Value) + ": " + e.Err.Error()
}
func (e *ParseFloatError) Unwrap() error { return e.Err }

// EncodingError is returned by a writer when a value exceeds the encodable
// domain of its target format, such as a BCF string longer than 127 bytes.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string { return "htsio: encoding: " + e.Reason }
