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

// Package crypto provides the Keccak-256 hashing used by the interpreter for
// the KECCAK256 and EXTCODEHASH instructions and for code analysis caching.
package crypto

import (
	"hash"
	"sync"

	"github.com/sunyihoo/go-evm/common"
	"golang.org/x/crypto/sha3"
)

// Keccak-256 是以太坊使用的"遗留" Keccak 变体，而非最终标准化的 SHA3-256，两者填充规则不同。

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
//
// KeccakState 封装了 sha3.state。Read 比 Sum 更快，因为它不复制内部状态，但会修改内部状态。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// EmptyCodeHash is the Keccak-256 digest of empty input.
var EmptyCodeHash = Keccak256Hash(nil)

// NewKeccakState creates a new KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
// 使用 KeccakState 对输入数据进行哈希计算，返回 32 字节的哈希值。状态会先被重置，可重复使用。
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// hasherPool recycles Keccak states across the interpreter's many small
// hashes; every KECCAK256 instruction takes one.
var hasherPool = sync.Pool{
	New: func() any { return NewKeccakState() },
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	h := Keccak256Hash(data...)
	return h[:]
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure. Safe for concurrent use.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := hasherPool.Get().(KeccakState)
	defer hasherPool.Put(d)

	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}
