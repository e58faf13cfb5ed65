// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bam

import (
	"encoding/binary"
	"math"
)

// Aux borrows one auxiliary tag's raw bytes, laid out as tag(2) type(1)
// value(...), from a Record's Aux field. Access is read-only, over the BAM
// wire bytes a Record view already borrows.
type Aux []byte

// Tag returns the two-byte tag label, e.g. "NM" or "MD".
func (a Aux) Tag() [2]byte { return [2]byte{a[0], a[1]} }

// Type returns the BAM type byte of the tag's value.
func (a Aux) Type() byte { return a[2] }

// Value decodes the tag's value per its type byte. Integer and float
// values are returned by Go kind; 'Z' and 'H' are returned as their raw
// byte payload, 'B' array values are returned as a []byte of the raw
// element bytes with the array's element type discarded.
func (a Aux) Value() interface{} {
	switch t := a.Type(); t {
	case 'A':
		return a[3]
	case 'c':
		return int8(a[3])
	case 'C':
		return uint8(a[3])
	case 's':
		return int16(binary.LittleEndian.Uint16(a[3:5]))
	case 'S':
		return binary.LittleEndian.Uint16(a[3:5])
	case 'i':
		return int32(binary.LittleEndian.Uint32(a[3:7]))
	case 'I':
		return binary.LittleEndian.Uint32(a[3:7])
	case 'f':
		return math.Float32frombits(binary.LittleEndian.Uint32(a[3:7]))
	case 'Z', 'H':
		v := a[3:]
		if n := len(v); n > 0 && v[n-1] == 0 {
			v = v[:n-1]
		}
		return v
	case 'B':
		return a[8:]
	default:
		return nil
	}
}

// size returns the total byte length of the tag starting at offset 0 in a
// buffer that begins with this tag, used by AuxIter to step to the next
// tag without a full decode.
func (a Aux) size() int {
	switch t := a.Type(); t {
	case 'A', 'c', 'C':
		return 4
	case 's', 'S':
		return 5
	case 'i', 'I', 'f':
		return 7
	case 'Z', 'H':
		i := 3
		for i < len(a) && a[i] != 0 {
			i++
		}
		return i + 1
	case 'B':
		n := int32(binary.LittleEndian.Uint32(a[4:8]))
		return 8 + int(n)*auxArrayElemSize(a[3])
	default:
		return len(a)
	}
}

func auxArrayElemSize(t byte) int {
	switch t {
	case 'c', 'C':
		return 1
	case 's', 'S':
		return 2
	default:
		return 4
	}
}

// AuxIter walks the raw aux byte blob borrowed by a Record's Aux field,
// yielding one Aux view per tag without copying.
type AuxIter struct {
	b []byte
}

// NewAuxIter returns an iterator over the aux tag blob b.
func NewAuxIter(b []byte) *AuxIter { return &AuxIter{b: b} }

// Next returns the next tag and true, or false once the blob is exhausted.
func (it *AuxIter) Next() (Aux, bool) {
	if len(it.b) == 0 {
		return nil, false
	}
	n := Aux(it.b).size()
	if n > len(it.b) {
		n = len(it.b)
	}
	tag := Aux(it.b[:n])
	it.b = it.b[n:]
	return tag, true
}
