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
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
)

// BlockContext provides the interpreter with auxiliary information about the
// block the code runs in. Every field is optional; a nil field reads as zero.
// BlockContext 提供区块信息；每个字段都是可选的，缺失时按零处理。
type BlockContext struct {
	Coinbase   *common.Address // Provides information for COINBASE
	Timestamp  *uint256.Int    // Provides information for TIMESTAMP
	Number     *uint256.Int    // Provides information for NUMBER
	Difficulty *uint256.Int    // Provides information for DIFFICULTY and PREVRANDAO
	GasLimit   *uint256.Int    // Provides information for GASLIMIT
	ChainID    *uint256.Int    // Provides information for CHAINID
	BaseFee    *uint256.Int    // Provides information for BASEFEE
}

// TxContext provides the interpreter with information about a transaction.
// Like the block fields, each field is optional.
// TxContext 提供交易信息。所有字段都可以为空。
type TxContext struct {
	From     *common.Address // Provides information for CALLER
	To       *common.Address // Provides information for ADDRESS, SELFBALANCE and the LOG address
	Origin   *common.Address // Provides information for ORIGIN
	GasPrice *uint256.Int    // Provides information for GASPRICE
	Value    *uint256.Int    // Provides information for CALLVALUE
	Data     []byte          // Provides information for CALLDATA*
}

// Context bundles everything a run may read besides its own code. A nil
// Context, or a nil member, is valid and reads as zero everywhere.
type Context struct {
	Tx    *TxContext
	Block *BlockContext
	State StateDB
}

// The accessors below implement the zero default for absent context data.
// 以下访问器实现"缺失的上下文数据即为零"的统一策略。

func (ctx *Context) tx() *TxContext {
	if ctx == nil || ctx.Tx == nil {
		return &TxContext{}
	}
	return ctx.Tx
}

func (ctx *Context) block() *BlockContext {
	if ctx == nil || ctx.Block == nil {
		return &BlockContext{}
	}
	return ctx.Block
}

func (ctx *Context) state() StateDB {
	if ctx == nil {
		return nil
	}
	return ctx.State
}

// balance returns the balance of the account at addr, zero if unknown.
func (ctx *Context) balance(addr common.Address) *uint256.Int {
	st := ctx.state()
	if st == nil {
		return new(uint256.Int)
	}
	return wordOrZero(st.GetBalance(addr.Hex()))
}

// code returns the code of the account at addr, nil if unknown.
func (ctx *Context) code(addr common.Address) []byte {
	st := ctx.state()
	if st == nil {
		return nil
	}
	return st.GetCode(addr.Hex())
}

// codeHash returns the code hash of the account at addr. Accounts that do
// not exist hash to zero.
func (ctx *Context) codeHash(addr common.Address) common.Hash {
	st := ctx.state()
	if st == nil || !st.Exist(addr.Hex()) {
		return common.Hash{}
	}
	return st.GetCodeHash(addr.Hex())
}

// wordOrZero returns a copy of v, or zero when v is nil.
func wordOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}

// addressWord returns the address as a word, or zero when a is nil.
func addressWord(a *common.Address) *uint256.Int {
	if a == nil {
		return new(uint256.Int)
	}
	return a.Word()
}
