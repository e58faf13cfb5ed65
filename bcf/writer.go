// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcf

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/bgzf"
)

// WriteRecord is the set of fields the Writer accepts. There is
// deliberately no Filters, Info or sample parameter: the encoder always
// emits an empty filter vector and n_fmt=0/l_indiv=0, a documented
// limitation of this writer, so no caller-supplied values for those fields
// would ever reach the wire.
type WriteRecord struct {
	ChromId int32
	Pos     int32
	Rlen    int32
	Qual    *float32 // nil encodes as the canonical missing bit pattern
	Id      string
	Ref     string
	Alts    []string
}

// Writer encodes records to the BCF v2.2 wire format over a BGZF output.
type Writer struct {
	bw *bgzf.Writer

	// body is reused across Write calls as scratch space for the record
	// being assembled before its length-prefix is backpatched.
	body []byte
}

// NewWriter returns a Writer over w, writing the BCF file prelude (magic,
// header length, header text verbatim plus a terminating NUL if it lacks
// one) immediately.
func NewWriter(w io.Writer, headerText string) (*Writer, error) {
	bw := bgzf.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return nil, err
	}
	text := headerText
	if len(text) == 0 || text[len(text)-1] != 0 {
		text += "\x00"
	}
	if len(text) > 0xffff {
		return nil, &htsio.EncodingError{Reason: "header text exceeds 16-bit length field"}
	}
	var lb [2]byte
	binary.LittleEndian.PutUint16(lb[:], uint16(len(text)))
	if _, err := bw.Write(lb[:]); err != nil {
		return nil, err
	}
	if _, err := bw.Write([]byte(text)); err != nil {
		return nil, err
	}
	return &Writer{bw: bw}, nil
}

// Write encodes rec and appends it to the BGZF output.
func (w *Writer) Write(rec WriteRecord) error {
	body, err := w.encodeShared(rec)
	if err != nil {
		return err
	}

	var prefix [8]byte
	binary.LittleEndian.PutUint32(prefix[0:4], uint32(len(body)))
	binary.LittleEndian.PutUint32(prefix[4:8], 0) // l_indiv: known limitation, always 0

	if _, err := w.bw.Write(prefix[:]); err != nil {
		return err
	}
	_, err = w.bw.Write(body)
	return err
}

func (w *Writer) encodeShared(rec WriteRecord) ([]byte, error) {
	if len(rec.Id) > 0x7fffffff || len(rec.Ref) > 0x7fffffff {
		return nil, &htsio.EncodingError{Reason: "string field exceeds encodable domain"}
	}

	b := w.body[:0]
	var fixed [20]byte
	binary.LittleEndian.PutUint32(fixed[0:4], uint32(rec.ChromId))
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(rec.Pos))
	binary.LittleEndian.PutUint32(fixed[8:12], uint32(rec.Rlen))
	if rec.Qual != nil {
		binary.LittleEndian.PutUint32(fixed[12:16], math.Float32bits(*rec.Qual))
	} else {
		binary.LittleEndian.PutUint32(fixed[12:16], missingQNA)
	}
	nAllele := 1 + len(rec.Alts)
	binary.LittleEndian.PutUint32(fixed[16:20], uint32(nAllele)<<16) // n_info=0
	b = append(b, fixed[:]...)

	var fmtSample [4]byte // n_fmt=0, n_sample=0, the documented limitation
	b = append(b, fmtSample[:]...)

	var err error
	b, err = appendTypedString(b, rec.Id)
	if err != nil {
		return nil, err
	}
	b, err = appendTypedString(b, rec.Ref)
	if err != nil {
		return nil, err
	}
	for _, a := range rec.Alts {
		b, err = appendTypedString(b, a)
		if err != nil {
			return nil, err
		}
	}

	// Empty filter vector, per the documented encoder limitation.
	b = append(b, 0x00)
	// n_info=0, so no INFO key/value pairs follow.

	w.body = b
	return b, nil
}

// Close finalizes the BGZF stream, writing the terminal empty block.
func (w *Writer) Close() error { return w.bw.Close() }
