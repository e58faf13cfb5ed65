// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bcf implements a streaming, borrowed-view decoder and a writer
// for the binary BCF v2.2 variant format over a BGZF stream, on top of the
// same breader/bgzf layering bam uses.
package bcf

import (
	"encoding/binary"
	"math"

	"github.com/biogo/htsio"
)

// Type bytes used by the BCF typed-value descriptor.
const (
	typeInt8   = 1
	typeInt16  = 2
	typeInt32  = 3
	typeFloat  = 5
	typeChar   = 7
	overflowN  = 0xF
	missingQNA = 0x7F800001 // canonical missing-float bit pattern
)

// MissingQual is the canonical bit pattern used for an absent QUAL value.
var MissingQual = math.Float32frombits(missingQNA)

// TypedValue is a decoded BCF typed value: exactly one of Ints, Floats or
// Str is populated, selected by Type.
type TypedValue struct {
	Type   byte
	Ints   []int32
	Floats []float32
	Str    []byte
}

// decodeDescriptor reads a BCF typed-value descriptor byte at b[0],
// expanding the 0xF "overflow" count into the int32 that follows it. It
// returns the value's type, element count and the number of bytes the
// descriptor (including any overflow count) occupied.
func decodeDescriptor(b []byte) (typ byte, count int, n int, err error) {
	if len(b) == 0 {
		return 0, 0, 0, htsio.ErrTruncated
	}
	desc := b[0]
	typ = desc & 0xf
	c := int(desc >> 4)
	n = 1
	if c == overflowN {
		ov, m, err := decodeTypedValue(b[1:])
		if err != nil {
			return 0, 0, 0, err
		}
		if len(ov.Ints) == 0 {
			return 0, 0, 0, &htsio.MalformedError{Format: "bcf", Reason: "overflow count is not an integer"}
		}
		c = int(ov.Ints[0])
		n += m
	}
	if c < 0 {
		return 0, 0, 0, &htsio.MalformedError{Format: "bcf", Reason: "negative typed-value count"}
	}
	return typ, c, n, nil
}

// typeWidth returns the wire width in bytes of one element of typ.
func typeWidth(typ byte) int {
	switch typ {
	case typeInt8, typeChar:
		return 1
	case typeInt16:
		return 2
	case typeInt32, typeFloat:
		return 4
	default:
		return 0
	}
}

// decodeElements decodes count elements of typ from data, which must hold
// exactly count*typeWidth(typ) bytes.
func decodeElements(typ byte, count int, data []byte) (TypedValue, error) {
	v := TypedValue{Type: typ}
	switch typ {
	case 0:
		// A bare 0x00 descriptor (type 0, count 0) is the BCF "missing
		// value" encoding used for an empty filter/info vector.
	case typeChar:
		v.Str = data
	case typeInt8:
		v.Ints = make([]int32, count)
		for i := 0; i < count; i++ {
			v.Ints[i] = int32(int8(data[i]))
		}
	case typeInt16:
		v.Ints = make([]int32, count)
		for i := 0; i < count; i++ {
			v.Ints[i] = int32(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	case typeInt32:
		v.Ints = make([]int32, count)
		for i := 0; i < count; i++ {
			v.Ints[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		}
	case typeFloat:
		v.Floats = make([]float32, count)
		for i := 0; i < count; i++ {
			v.Floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
	default:
		return TypedValue{}, &htsio.MalformedError{Format: "bcf", Reason: "unknown typed-value type"}
	}
	return v, nil
}

// decodeTypedValue decodes one descriptor-prefixed typed value from b,
// returning the value and the number of bytes consumed.
func decodeTypedValue(b []byte) (TypedValue, int, error) {
	typ, count, hdrLen, err := decodeDescriptor(b)
	if err != nil {
		return TypedValue{}, 0, err
	}
	need := hdrLen + count*typeWidth(typ)
	if need > len(b) {
		return TypedValue{}, 0, htsio.ErrTruncated
	}
	v, err := decodeElements(typ, count, b[hdrLen:need])
	if err != nil {
		return TypedValue{}, 0, err
	}
	return v, need, nil
}

// smallestIntType returns the narrowest BCF integer type byte that can
// represent v.
func smallestIntType(v int32) byte {
	switch {
	case v >= math.MinInt8+1 && v <= math.MaxInt8:
		return typeInt8
	case v >= math.MinInt16+1 && v <= math.MaxInt16:
		return typeInt16
	default:
		return typeInt32
	}
}

// appendTypedInts appends a descriptor-prefixed integer vector, promoting
// every element to the smallest signed width that fits all of them.
func appendTypedInts(dst []byte, vals []int32) ([]byte, error) {
	typ := byte(typeInt8)
	for _, v := range vals {
		if t := smallestIntType(v); t > typ {
			typ = t
		}
	}
	dst, err := appendDescriptor(dst, typ, len(vals))
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		switch typ {
		case typeInt8:
			dst = append(dst, byte(int8(v)))
		case typeInt16:
			var b [2]byte
			binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
			dst = append(dst, b[:]...)
		case typeInt32:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(v))
			dst = append(dst, b[:]...)
		}
	}
	return dst, nil
}

// appendTypedString appends a descriptor-prefixed char array.
func appendTypedString(dst []byte, s string) ([]byte, error) {
	dst, err := appendDescriptor(dst, typeChar, len(s))
	if err != nil {
		return nil, err
	}
	return append(dst, s...), nil
}

// appendDescriptor appends a typed-value descriptor for count elements of
// typ, spilling into the 0xF overflow form when count exceeds 14. The
// overflow count is carried as a one-byte integer, so counts above 127 are
// outside the encodable domain.
func appendDescriptor(dst []byte, typ byte, count int) ([]byte, error) {
	if count < overflowN {
		return append(dst, byte(count<<4)|typ), nil
	}
	if count > math.MaxInt8 {
		return nil, &htsio.EncodingError{Reason: "count exceeds the one-byte overflow domain"}
	}
	dst = append(dst, byte(overflowN<<4)|typ)
	return append(dst, byte(1<<4)|typeInt8, byte(count)), nil
}
