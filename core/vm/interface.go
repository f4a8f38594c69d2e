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
	"github.com/sunyihoo/go-evm/common"
)

// StateDB is the read-only account state the context opcodes query.
//
// Accounts are keyed by the textual form of their address: "0x" followed by
// forty lowercase hex digits, as produced by common.Address.Hex. Every method
// must treat an unknown account as empty rather than fail.
//
// 账户按地址的文本形式（0x 加 40 位小写十六进制）索引；未知账户视为空账户。
type StateDB interface {
	Exist(addr string) bool
	GetBalance(addr string) *uint256.Int
	GetNonce(addr string) uint64
	GetCode(addr string) []byte
	GetCodeSize(addr string) int

	// GetCodeHash returns the Keccak-256 hash of the account code, or the zero
	// hash for an account that does not exist.
	GetCodeHash(addr string) common.Hash
}
