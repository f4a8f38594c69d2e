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
	"golang.org/x/exp/slices"
)

// Contract is the program of one run: the immutable code, the hash it is
// cached under and the sorted jump destinations found by the analysis, plus
// the transaction fields the tracer asks for.
//
// Contract 表示一次执行的程序：代码、代码哈希以及排好序的合法跳转目标。
type Contract struct {
	Code     []byte
	CodeHash common.Hash
	Input    []byte

	caller  common.Address
	address common.Address
	value   *uint256.Int

	jumpdests []uint64 // ascending offsets of JUMPDESTs in code segments
}

// NewContract returns the program for code. The jump destinations are left
// for the caller to fill in, normally from the interpreter's analysis cache.
func NewContract(code []byte, hash common.Hash, tx *TxContext) *Contract {
	c := &Contract{Code: code, CodeHash: hash, value: new(uint256.Int)}
	if tx != nil {
		c.Input = tx.Data
		if tx.From != nil {
			c.caller = *tx.From
		}
		if tx.To != nil {
			c.address = *tx.To
		}
		if tx.Value != nil {
			c.value = tx.Value
		}
	}
	return c
}

// validJumpdest reports whether dest is one of the analysed jump targets.
func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	// PC cannot go beyond len(code) and certainly can't be bigger than 63bits.
	// Don't bother checking for JUMPDEST in that case.
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	_, found := slices.BinarySearch(c.jumpdests, udest)
	return found
}

// GetOp returns the n'th element in the contract's byte array
func (c *Contract) GetOp(n uint64) (OpCode, error) {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n]), nil
	}
	return STOP, ErrMissingOpcode
}

// Caller returns the sender of the transaction, or the zero address.
func (c *Contract) Caller() common.Address {
	return c.caller
}

// Address returns the recipient of the transaction, or the zero address.
func (c *Contract) Address() common.Address {
	return c.address
}

// Value returns the value sent along with the transaction.
func (c *Contract) Value() *uint256.Int {
	return c.value
}
