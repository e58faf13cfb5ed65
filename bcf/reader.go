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
	"github.com/biogo/htsio/breader"
)

var magic = [5]byte{'B', 'C', 'F', 2, 2}

// Reader decodes a stream of BCF records. HeaderText carries the textual
// VCF header verbatim, exactly as the BCF2 file prelude stores it; this
// package does not parse it.
type Reader struct {
	br         *breader.Reader
	HeaderText []byte

	pos int
}

// NewReader returns a Reader decoding BCF records from src, which is
// expected to already be a BGZF-decoded byte stream.
func NewReader(src breader.Source) (*Reader, error) {
	br, err := breader.New(src)
	if err != nil {
		return nil, err
	}
	r := &Reader{br: br}
	if err := r.readPrelude(); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenConfig builds the BGZF-wrapped byte source cfg describes and returns
// a Reader over it, after parsing the BCF prelude. A path input
// is always treated as BGZF-compressed regardless of extension, since
// BCF's wire format mandates it; a stream input still needs
// cfg.Compressed set.
func OpenConfig(cfg breader.Config) (*Reader, error) {
	if cfg.Path != "" {
		f, err := breader.OpenFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		src, err := bgzf.DetectAndWrap(f, cfg.Threads)
		if err != nil {
			return nil, err
		}
		return NewReader(src)
	}
	src, err := breader.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	return NewReader(src)
}

// Open opens path as a BGZF-compressed BCF file and reads its prelude.
func Open(path string, threads int) (*Reader, error) {
	return OpenConfig(breader.Config{Path: path, Threads: threads})
}

func (r *Reader) readPrelude() error {
	mb := r.br.Read(5)
	if len(mb) < 5 {
		return htsio.ErrTruncated
	}
	if [5]byte{mb[0], mb[1], mb[2], mb[3], mb[4]} != magic {
		return &htsio.MalformedHeaderError{Format: "bcf", Reason: "bad magic"}
	}
	r.br.DropUntil(5)

	lb := r.br.Read(2)
	if len(lb) < 2 {
		return htsio.ErrTruncated
	}
	lText := int(binary.LittleEndian.Uint16(lb[:2]))
	need := 2 + lText
	win := r.br.Read(need)
	if len(win) < need {
		return htsio.ErrTruncated
	}
	r.HeaderText = append([]byte(nil), win[2:need]...)
	r.br.DropUntil(need)
	return nil
}

// Next returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (Record, error) {
	r.br.DropUntil(r.pos)
	r.pos = 0

	lb := r.br.Read(8)
	if len(lb) == 0 {
		return Record{}, io.EOF
	}
	if len(lb) < 8 {
		return Record{}, htsio.ErrTruncated
	}
	lShared := int(binary.LittleEndian.Uint32(lb[0:4]))
	lIndiv := int(binary.LittleEndian.Uint32(lb[4:8]))

	need := 8 + lShared + lIndiv
	win := r.br.Read(need)
	if len(win) < need {
		return Record{}, htsio.ErrTruncated
	}

	shared := win[8 : 8+lShared]
	indiv := win[8+lShared : need]

	rec, err := decodeShared(shared)
	if err != nil {
		return Record{}, err
	}
	rec.Format, rec.Samples, err = decodeIndiv(indiv, rec.NFmt, rec.NSample)
	if err != nil {
		return Record{}, err
	}

	r.pos = need
	return rec, nil
}

func decodeShared(b []byte) (Record, error) {
	if len(b) < 24 {
		return Record{}, &htsio.MalformedError{Format: "bcf", Reason: "shared block shorter than fixed fields"}
	}
	var rec Record
	rec.ChromId = int32(binary.LittleEndian.Uint32(b[0:4]))
	rec.Pos = int32(binary.LittleEndian.Uint32(b[4:8]))
	rec.Rlen = int32(binary.LittleEndian.Uint32(b[8:12]))
	qbits := binary.LittleEndian.Uint32(b[12:16])
	if qbits != missingQNA {
		q := math.Float32frombits(qbits)
		rec.Qual = &q
	}
	infoAllele := binary.LittleEndian.Uint32(b[16:20])
	rec.NInfo = int(infoAllele & 0xffff)
	rec.NAllele = int(infoAllele >> 16)
	fmtSample := binary.LittleEndian.Uint32(b[20:24])
	rec.NFmt = int(fmtSample >> 24)
	rec.NSample = int(fmtSample & 0xffffff)

	off := 24
	idv, n, err := decodeTypedValue(b[off:])
	if err != nil {
		return Record{}, err
	}
	rec.Id = idv.Str
	off += n

	if rec.NAllele < 1 {
		return Record{}, &htsio.MalformedError{Format: "bcf", Reason: "n_allele must be at least 1 (REF)"}
	}
	rec.Alts = make([][]byte, 0, rec.NAllele-1)
	for i := 0; i < rec.NAllele; i++ {
		av, n, err := decodeTypedValue(b[off:])
		if err != nil {
			return Record{}, err
		}
		if i == 0 {
			rec.Ref = av.Str
		} else {
			rec.Alts = append(rec.Alts, av.Str)
		}
		off += n
	}

	fv, n, err := decodeTypedValue(b[off:])
	if err != nil {
		return Record{}, err
	}
	rec.Filters = fv.Ints
	off += n

	rec.Info = make([]InfoField, 0, rec.NInfo)
	for i := 0; i < rec.NInfo; i++ {
		kv, n, err := decodeTypedValue(b[off:])
		if err != nil {
			return Record{}, err
		}
		if len(kv.Ints) == 0 {
			return Record{}, &htsio.MalformedError{Format: "bcf", Reason: "info key is not an integer"}
		}
		off += n
		vv, n, err := decodeTypedValue(b[off:])
		if err != nil {
			return Record{}, err
		}
		off += n
		rec.Info = append(rec.Info, InfoField{Key: kv.Ints[0], Value: vv})
	}

	return rec, nil
}

// decodeIndiv decodes the l_indiv per-sample block: nFmt fields, each a
// FORMAT dictionary key followed by a typed value whose descriptor count
// is per sample, with nSample values of that shape packed back to back.
// Keys are left as raw dictionary indices, the same way InfoField.Key is.
func decodeIndiv(b []byte, nFmt, nSample int) ([]int32, [][]TypedValue, error) {
	if nFmt == 0 {
		if len(b) != 0 {
			return nil, nil, &htsio.MalformedError{Format: "bcf", Reason: "per-sample bytes present with n_fmt=0"}
		}
		return nil, nil, nil
	}
	format := make([]int32, 0, nFmt)
	samples := make([][]TypedValue, nSample)
	for s := range samples {
		samples[s] = make([]TypedValue, 0, nFmt)
	}
	off := 0
	for i := 0; i < nFmt; i++ {
		kv, n, err := decodeTypedValue(b[off:])
		if err != nil {
			return nil, nil, err
		}
		if len(kv.Ints) == 0 {
			return nil, nil, &htsio.MalformedError{Format: "bcf", Reason: "format key is not an integer"}
		}
		format = append(format, kv.Ints[0])
		off += n

		typ, count, hdrLen, err := decodeDescriptor(b[off:])
		if err != nil {
			return nil, nil, err
		}
		w := typeWidth(typ)
		need := hdrLen + count*w*nSample
		if need > len(b[off:]) {
			return nil, nil, htsio.ErrTruncated
		}
		data := b[off+hdrLen : off+need]
		for s := 0; s < nSample; s++ {
			v, err := decodeElements(typ, count, data[s*count*w:(s+1)*count*w])
			if err != nil {
				return nil, nil, err
			}
			samples[s] = append(samples[s], v)
		}
		off += need
	}
	if off != len(b) {
		return nil, nil, &htsio.MalformedError{Format: "bcf", Reason: "per-sample bytes longer than n_fmt fields"}
	}
	return format, samples, nil
}

// Close releases the underlying byte source.
func (r *Reader) Close() error { return r.br.Close() }
