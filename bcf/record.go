// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcf

// InfoField is one decoded key/value pair from a record's INFO block. Key
// is the dictionary index into the VCF header's INFO lines; resolving it
// to a name requires the caller to have parsed that header text itself,
// since this package does not interpret VCF header semantics.
type InfoField struct {
	Key   int32
	Value TypedValue
}

// Record is a single BCF record view. Id, Ref, Alts, Filters and Info
// borrow from the Reader's internal buffer and are valid only until the
// next call to Next, exactly like the text-format record views.
type Record struct {
	ChromId int32
	Pos     int32 // 0-based, per BCF wire convention
	Rlen    int32
	Qual    *float32 // nil iff the wire value is the missing bit pattern

	NInfo   int
	NAllele int
	NSample int
	NFmt    int

	Id      []byte
	Ref     []byte
	Alts    [][]byte
	Filters []int32
	Info    []InfoField

	// Format holds the FORMAT dictionary key of each per-sample field,
	// in wire order, raw like InfoField.Key. Samples[s][f] is sample s's
	// value for Format[f].
	Format  []int32
	Samples [][]TypedValue
}
