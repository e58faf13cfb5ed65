// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"math/bits"
	"sync"
)

// blockPool holds size-stratified []byte pools for inflated block payloads.
// Inflated payloads never exceed MaxBlockSize, so most gets land in one of
// a handful of pool slots regardless of how many blocks a stream has,
// instead of allocating a fresh 64KiB-class slice per block.
var blockPool [17]sync.Pool // slot i holds []byte of len 1<<i; covers MaxBlockSize exactly.

func init() {
	for i := range blockPool {
		l := 1 << uint(i)
		blockPool[i].New = func() interface{} {
			return make([]byte, l)
		}
	}
}

// getBlockBuf returns a []byte of length size, drawn from the pool slot
// whose backing capacity is the smallest power of two at least size.
func getBlockBuf(size int) []byte {
	if size == 0 {
		return nil
	}
	b := blockPool[classFor(uint(size))].Get().([]byte)
	return b[:size]
}

// putBlockBuf returns buf to the pool slot matching its capacity, for
// reuse by a later getBlockBuf call.
func putBlockBuf(buf []byte) {
	if buf == nil {
		return
	}
	blockPool[classFor(uint(cap(buf)))].Put(buf[:0])
}

// classFor returns the index of the smallest pool slot that can hold size
// bytes: the ceiling of log2(size).
func classFor(size uint) int { return bits.Len(size - 1) }
