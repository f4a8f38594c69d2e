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

// Package tracing defines hooks for 'live tracing' of interpreter runs.
//
// Hooks are plain function fields. A nil field means the event is not of
// interest and the interpreter skips it without further cost.
package tracing

import (
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/types"
)

// OpContext provides the context at which the opcode is being
// executed in, including the memory, stack and various contract-level information.
// OpContext 提供操作码执行时的上下文，包括内存、栈和合约级信息。
type OpContext interface {
	MemoryData() []byte
	StackData() []uint256.Int
	Caller() common.Address
	Address() common.Address
	CallValue() *uint256.Int
	CallInput() []byte
	ContractCode() []byte
}

type (
	// StartHook is invoked when a run begins, after jump destination analysis.
	StartHook = func(code []byte, codeHash common.Hash)

	// OpcodeHook is invoked just prior to the execution of an opcode, once
	// stack depth has been validated and memory has been expanded.
	OpcodeHook = func(pc uint64, op byte, scope OpContext, err error)

	// FaultHook is invoked when a run aborts with a fatal error.
	FaultHook = func(pc uint64, op byte, scope OpContext, err error)

	// HaltHook is invoked when a run ends normally, either by running off the
	// end of the code or by an exiting instruction.
	HaltHook = func(pc uint64, exitCode uint8, output []byte)

	// StorageChangeHook is invoked on each SSTORE.
	StorageChangeHook = func(key uint64, prev, new uint256.Int)

	// LogHook is called when a LOG instruction records a log.
	LogHook = func(log *types.Log)
)

// Hooks is the set of tracing callbacks the interpreter invokes.
// 解释器在执行过程中调用的追踪回调集合。
type Hooks struct {
	OnStart         StartHook
	OnOpcode        OpcodeHook
	OnFault         FaultHook
	OnHalt          HaltHook
	OnStorageChange StorageChangeHook
	OnLog           LogHook
}
