// Copyright 2024 The go-ethereum Authors
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

// Context reads. Every handler here resolves absent transaction, block or
// state data to zero; none of them can fail.
// 上下文读取指令：缺失的交易、区块或状态数据一律视为零，不会出错。

// opAddress 执行 ADDRESS 操作码：将交易接收方地址压入栈。
func opAddress(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(scope.Contract.Address().Word())
	return continueSignal, nil
}

// opBalance 执行 BALANCE 操作码：获取指定地址的余额。
func opBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	slot := scope.Stack.peek()
	address := common.WordToAddress(slot)
	slot.Set(scope.Context.balance(address))
	return continueSignal, nil
}

func opOrigin(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(addressWord(scope.Context.tx().Origin))
	return continueSignal, nil
}

func opCaller(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(scope.Contract.Caller().Word())
	return continueSignal, nil
}

func opCallValue(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(scope.Contract.Value())
	return continueSignal, nil
}

func opCallDataLoad(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x := scope.Stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := paddedSlice(scope.Contract.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return continueSignal, nil
}

func opCallDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Input))))
	return continueSignal, nil
}

func opCallDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	var (
		memOffset  = scope.Stack.pop()
		dataOffset = scope.Stack.pop()
		length     = scope.Stack.pop()
	)
	// These values are checked for overflow during memory expansion.
	memOffset64 := memOffset.Uint64()
	length64 := length.Uint64()
	scope.Memory.Set(memOffset64, length64, paddedSlice(scope.Contract.Input, wordOffset(&dataOffset), length64))
	return continueSignal, nil
}

func opCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Code))))
	return continueSignal, nil
}

func opCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	var (
		memOffset  = scope.Stack.pop()
		codeOffset = scope.Stack.pop()
		length     = scope.Stack.pop()
	)
	codeCopy := paddedSlice(scope.Contract.Code, wordOffset(&codeOffset), length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), codeCopy)
	return continueSignal, nil
}

func opGasprice(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.tx().GasPrice))
	return continueSignal, nil
}

func opExtCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	slot := scope.Stack.peek()
	address := common.WordToAddress(slot)
	if st := scope.Context.state(); st != nil {
		slot.SetUint64(uint64(st.GetCodeSize(address.Hex())))
	} else {
		slot.Clear()
	}
	return continueSignal, nil
}

// opExtCodeCopy copies another account's code into memory. The code of an
// unknown account is empty, so the copied range is all zeros.
func opExtCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	var (
		stack      = scope.Stack
		a          = stack.pop()
		memOffset  = stack.pop()
		codeOffset = stack.pop()
		length     = stack.pop()
	)
	addr := common.WordToAddress(&a)
	codeCopy := paddedSlice(scope.Context.code(addr), wordOffset(&codeOffset), length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), codeCopy)
	return continueSignal, nil
}

// opExtCodeHash returns the Keccak-256 of an account's code. An account that
// exists without code hashes to the empty code hash; one that does not exist
// yields zero.
func opExtCodeHash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	slot := scope.Stack.peek()
	address := common.WordToAddress(slot)
	slot.SetBytes(scope.Context.codeHash(address).Bytes())
	return continueSignal, nil
}

// opBlockhash has no chain history to consult and always yields zero.
func opBlockhash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.peek().Clear()
	return continueSignal, nil
}

func opCoinbase(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(addressWord(scope.Context.block().Coinbase))
	return continueSignal, nil
}

func opTimestamp(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.block().Timestamp))
	return continueSignal, nil
}

func opNumber(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.block().Number))
	return continueSignal, nil
}

// opDifficulty serves both DIFFICULTY and PREVRANDAO, which share 0x44.
func opDifficulty(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.block().Difficulty))
	return continueSignal, nil
}

func opGasLimit(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.block().GasLimit))
	return continueSignal, nil
}

func opChainID(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.block().ChainID))
	return continueSignal, nil
}

// opSelfBalance 执行 SELFBALANCE 操作码：获取交易接收方自身的余额。
func opSelfBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(scope.Context.balance(scope.Contract.Address()))
	return continueSignal, nil
}

func opBaseFee(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(wordOrZero(scope.Context.block().BaseFee))
	return continueSignal, nil
}
