// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
)

// memoryEnd returns offset+size, the end of the memory range an instruction
// addresses. An empty range ends at zero wherever it starts. The flag reports
// that the end does not fit in 64 bits.
//
// 计算指令访问的内存区间末端；size 为 0 时不访问内存，结果为 0。
func memoryEnd(offset, size *uint256.Int) (uint64, bool) {
	if !size.IsUint64() {
		return 0, true
	}
	return memoryEndFixed(offset, size.Uint64())
}

// memoryEndFixed is memoryEnd for a range of known size, such as the 32
// bytes of MLOAD.
func memoryEndFixed(offset *uint256.Int, size uint64) (uint64, bool) {
	if size == 0 {
		return 0, false
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	end := off + size
	return end, end < off
}

// paddedSlice returns size bytes of data starting at start. Whatever lies
// beyond the end of data reads as zero, so start and size may be anything.
// 越界部分以零填充，CODECOPY、CALLDATACOPY、EXTCODECOPY 读取源数据时都依赖这一点。
func paddedSlice(data []byte, start, size uint64) []byte {
	n := uint64(len(data))
	start = min(start, n)
	end := start + size
	if end < start || end > n {
		end = n
	}
	return common.RightPadBytes(data[start:end], int(size))
}

// toWordSize returns the number of 32 byte words needed to hold size bytes.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// wordOffset returns the word as a uint64 offset, saturating at MaxUint64 so
// that out-of-range offsets read as beyond any real data.
func wordOffset(w *uint256.Int) uint64 {
	if v, overflow := w.Uint64WithOverflow(); !overflow {
		return v
	}
	return math.MaxUint64
}
