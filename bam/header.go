// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bam

import (
	"encoding/binary"

	"github.com/biogo/htsio"
)

// magic is the fixed 4-byte BAM header marker.
var magic = [4]byte{'B', 'A', 'M', 1}

// Reference is one entry of the BAM reference dictionary: a contig name and
// its length, as carried in the header's n_ref block.
type Reference struct {
	Name string
	Len  int32
}

// readHeader parses the BAM magic, the textual SAM header (kept verbatim
// and uninterpreted, since this package never reads or writes SAM text)
// and the reference dictionary, leaving the buffered reader's drop cursor
// at the first record.
func (r *Reader) readHeader() error {
	hb := r.br.Read(4)
	if len(hb) < 4 {
		return htsio.ErrTruncated
	}
	if hb[0] != magic[0] || hb[1] != magic[1] || hb[2] != magic[2] || hb[3] != magic[3] {
		return &htsio.MalformedHeaderError{Format: "bam", Reason: "bad magic"}
	}
	r.br.DropUntil(4)

	lb := r.br.Read(4)
	if len(lb) < 4 {
		return htsio.ErrTruncated
	}
	lText := int(binary.LittleEndian.Uint32(lb[:4]))
	need := 4 + lText
	win := r.br.Read(need)
	if len(win) < need {
		return htsio.ErrTruncated
	}
	r.Text = append([]byte(nil), win[4:need]...)
	r.br.DropUntil(need)

	nb := r.br.Read(4)
	if len(nb) < 4 {
		return htsio.ErrTruncated
	}
	nRef := int(binary.LittleEndian.Uint32(nb[:4]))
	r.br.DropUntil(4)

	r.References = make([]Reference, 0, min(nRef, 1024))
	for i := 0; i < nRef; i++ {
		lb := r.br.Read(4)
		if len(lb) < 4 {
			return htsio.ErrTruncated
		}
		lName := int(binary.LittleEndian.Uint32(lb[:4]))
		if lName < 1 {
			return &htsio.MalformedHeaderError{Format: "bam", Reason: "reference name length must include the NUL terminator"}
		}
		need := 4 + lName + 4
		win := r.br.Read(need)
		if len(win) < need {
			return htsio.ErrTruncated
		}
		name := string(win[4 : 4+lName-1]) // drop the terminating NUL
		lRef := int32(binary.LittleEndian.Uint32(win[4+lName : need]))
		r.References = append(r.References, Reference{Name: name, Len: lRef})
		r.br.DropUntil(need)
	}
	return nil
}
