// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"bufio"
	"io"
)

// peekedSource carries a bufio.Reader that has already peeked a source's
// first bytes, plus that source's Closer if it has one, so a Reader or
// ZlibReader built over it still forwards Close correctly.
type peekedSource struct {
	*bufio.Reader
	closer io.Closer
}

func (p peekedSource) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// isBGZFHeader reports whether b, the first BlockHeaderLen bytes of a
// stream, looks like a BGZF block header: gzip magic, FEXTRA set, and the
// "BC" extra subfield at the fixed offset BGZF always puts it.
func isBGZFHeader(b []byte) bool {
	return len(b) >= 16 &&
		b[0] == 0x1f && b[1] == 0x8b && b[2] == 8 && b[3]&0x04 != 0 &&
		b[12] == bgzfExtraPrefix[0] && b[13] == bgzfExtraPrefix[1] &&
		b[14] == bgzfExtraPrefix[2] && b[15] == bgzfExtraPrefix[3]
}

// DetectAndWrap peeks the start of src and decides between the two
// compressed input shapes this module accepts: a genuine BGZF block
// stream, or an ordinary single-member gzip file that happens to share
// BGZF's member magic but carries no "BC" extra subfield. It
// wraps src with the matching Reader and returns it as a plain io.Reader
// satisfying breader.Source; if src implements io.Closer, so does the
// result, forwarding to it.
func DetectAndWrap(src io.Reader, threads int) (io.Reader, error) {
	br := bufio.NewReaderSize(src, BlockHeaderLen)
	peek, err := br.Peek(BlockHeaderLen)
	if err != nil && err != io.EOF {
		return nil, err
	}
	ps := peekedSource{Reader: br}
	if c, ok := src.(io.Closer); ok {
		ps.closer = c
	}
	if isBGZFHeader(peek) {
		return NewReader(ps, threads), nil
	}
	return NewZlibReader(ps)
}
