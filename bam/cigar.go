// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bam

import "fmt"

// CigarOp is a single packed BAM CIGAR operation: the low 4 bits carry the
// operation type, the remaining bits its length. This is the wire encoding
// itself; a Record's Cigar field holds the packed words as read, one
// CigarOp per operation.
type CigarOp uint32

// CigarOpType enumerates the ten BAM/SAM CIGAR operation types.
type CigarOpType byte

const (
	CigarMatch CigarOpType = iota
	CigarInsertion
	CigarDeletion
	CigarSkipped
	CigarSoftClipped
	CigarHardClipped
	CigarPadded
	CigarEqual
	CigarMismatch
	CigarBack
)

var cigarOpCodes = [...]byte{'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X', 'B'}

// Type returns the operation type of op.
func (op CigarOp) Type() CigarOpType { return CigarOpType(op & 0xf) }

// Len returns the number of positions the operation affects.
func (op CigarOp) Len() int { return int(op >> 4) }

// String returns the conventional "<n><op>" representation, such as "35M".
func (op CigarOp) String() string {
	t := op.Type()
	if int(t) >= len(cigarOpCodes) {
		return fmt.Sprintf("%d?", op.Len())
	}
	return fmt.Sprintf("%d%c", op.Len(), cigarOpCodes[t])
}
