// Copyright 2015 The go-ethereum Authors
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
	"github.com/holiman/uint256"
)

// memoryBaseline is the capacity a fresh or reset memory starts out with.
const memoryBaseline = 256

// Memory implements a simple memory model for the ethereum virtual machine.
//
// The length of the store is the logical size reported by MSIZE. It only
// ever grows, one 32-byte word at a time, and every byte past it reads as
// zero. The capacity of the store is the materialized buffer, which starts
// at memoryBaseline bytes.
//
// store 的长度即 MSIZE 报告的逻辑大小，按 32 字节字单调增长；容量是实际分配的缓冲区。
type Memory struct {
	store []byte
}

// NewMemory returns a new memory model.
func NewMemory() *Memory {
	return &Memory{store: make([]byte, 0, memoryBaseline)}
}

// Set sets offset + size to value
func (m *Memory) Set(offset, size uint64, value []byte) {
	// It's possible the offset is greater than 0 and size equals 0. This is because
	// memoryEnd (common.go) returns 0 for an empty range wherever it starts.
	if size > 0 {
		// length of store may never be less than offset + size.
		// The store should be resized PRIOR to setting the memory
		if offset+size > uint64(len(m.store)) {
			panic("invalid memory: store empty")
		}
		copy(m.store[offset:offset+size], value)
	}
}

// Set32 sets the 32 bytes starting at offset to the value of val, left-padded with zeroes to
// 32 bytes.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	// length of store may never be less than offset + size.
	// The store should be resized PRIOR to setting the memory
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	// Fill in relevant bits
	val.PutUint256(m.store[offset:])
}

// SetByte writes a single byte at offset.
func (m *Memory) SetByte(offset uint64, b byte) {
	if offset >= uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	m.store[offset] = b
}

// Resize grows the memory to size bytes. Size is expected to be a multiple of
// 32; smaller sizes are ignored.
func (m *Memory) Resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
}

// GetCopy returns offset + size as a new slice
func (m *Memory) GetCopy(offset, size uint64) (cpy []byte) {
	if size == 0 {
		return nil
	}

	// memory is always resized before being accessed, no need to check bounds
	cpy = make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return
}

// GetPtr returns the offset + size
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}

	// memory is always resized before being accessed, no need to check bounds
	return m.store[offset : offset+size]
}

// Len returns the logical size of the memory, a multiple of 32.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the backing slice
func (m *Memory) Data() []byte {
	return m.store
}

// reset returns the memory to its baseline buffer.
// 执行结束后的复位：丢弃大于基线的缓冲区，避免一次大内存运行长期占用。
func (m *Memory) reset() {
	if cap(m.store) > memoryBaseline {
		m.store = make([]byte, 0, memoryBaseline)
		return
	}
	clear(m.store)
	m.store = m.store[:0]
}
