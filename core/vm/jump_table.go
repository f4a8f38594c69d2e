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

type (
	executionFunc func(pc *uint64, interpreter *EVMInterpreter, callContext *ScopeContext) (signal, error)
	// memorySizeFunc returns the required size, and whether the operation overflowed a uint64
	memorySizeFunc func(*Stack) (size uint64, overflow bool)
)

type operation struct {
	// execute is the operation function
	execute executionFunc
	// minStack tells how many stack items are required
	minStack int

	// memorySize returns the memory size required for the operation
	memorySize memorySizeFunc
}

// JumpTable contains the operations supported by the interpreter. A nil
// entry is an opcode without a handler.
type JumpTable [256]*operation

// instructionSet is built once and shared read-only by every interpreter.
// 指令表只在包初始化时构建一次，之后所有解释器只读共享。
var instructionSet = newInstructionSet()

func newInstructionSet() JumpTable {
	tbl := JumpTable{
		STOP: {
			execute:  opStop,
			minStack: minStack(0, 0),
		},
		ADD: {
			execute:  opAdd,
			minStack: minStack(2, 1),
		},
		MUL: {
			execute:  opMul,
			minStack: minStack(2, 1),
		},
		SUB: {
			execute:  opSub,
			minStack: minStack(2, 1),
		},
		DIV: {
			execute:  opDiv,
			minStack: minStack(2, 1),
		},
		SDIV: {
			execute:  opSdiv,
			minStack: minStack(2, 1),
		},
		MOD: {
			execute:  opMod,
			minStack: minStack(2, 1),
		},
		SMOD: {
			execute:  opSmod,
			minStack: minStack(2, 1),
		},
		ADDMOD: {
			execute:  opAddmod,
			minStack: minStack(3, 1),
		},
		MULMOD: {
			execute:  opMulmod,
			minStack: minStack(3, 1),
		},
		EXP: {
			execute:  opExp,
			minStack: minStack(2, 1),
		},
		SIGNEXTEND: {
			execute:  opSignExtend,
			minStack: minStack(2, 1),
		},
		LT: {
			execute:  opLt,
			minStack: minStack(2, 1),
		},
		GT: {
			execute:  opGt,
			minStack: minStack(2, 1),
		},
		SLT: {
			execute:  opSlt,
			minStack: minStack(2, 1),
		},
		SGT: {
			execute:  opSgt,
			minStack: minStack(2, 1),
		},
		EQ: {
			execute:  opEq,
			minStack: minStack(2, 1),
		},
		ISZERO: {
			execute:  opIszero,
			minStack: minStack(1, 1),
		},
		AND: {
			execute:  opAnd,
			minStack: minStack(2, 1),
		},
		XOR: {
			execute:  opXor,
			minStack: minStack(2, 1),
		},
		OR: {
			execute:  opOr,
			minStack: minStack(2, 1),
		},
		NOT: {
			execute:  opNot,
			minStack: minStack(1, 1),
		},
		BYTE: {
			execute:  opByte,
			minStack: minStack(2, 1),
		},
		SHL: {
			execute:  opSHL,
			minStack: minStack(2, 1),
		},
		SHR: {
			execute:  opSHR,
			minStack: minStack(2, 1),
		},
		SAR: {
			execute:  opSAR,
			minStack: minStack(2, 1),
		},
		KECCAK256: {
			execute:    opKeccak256,
			minStack:   minStack(2, 1),
			memorySize: memoryKeccak256,
		},
		ADDRESS: {
			execute:  opAddress,
			minStack: minStack(0, 1),
		},
		BALANCE: {
			execute:  opBalance,
			minStack: minStack(1, 1),
		},
		ORIGIN: {
			execute:  opOrigin,
			minStack: minStack(0, 1),
		},
		CALLER: {
			execute:  opCaller,
			minStack: minStack(0, 1),
		},
		CALLVALUE: {
			execute:  opCallValue,
			minStack: minStack(0, 1),
		},
		CALLDATALOAD: {
			execute:  opCallDataLoad,
			minStack: minStack(1, 1),
		},
		CALLDATASIZE: {
			execute:  opCallDataSize,
			minStack: minStack(0, 1),
		},
		CALLDATACOPY: {
			execute:    opCallDataCopy,
			minStack:   minStack(3, 0),
			memorySize: memoryCallDataCopy,
		},
		CODESIZE: {
			execute:  opCodeSize,
			minStack: minStack(0, 1),
		},
		CODECOPY: {
			execute:    opCodeCopy,
			minStack:   minStack(3, 0),
			memorySize: memoryCodeCopy,
		},
		GASPRICE: {
			execute:  opGasprice,
			minStack: minStack(0, 1),
		},
		EXTCODESIZE: {
			execute:  opExtCodeSize,
			minStack: minStack(1, 1),
		},
		EXTCODECOPY: {
			execute:    opExtCodeCopy,
			minStack:   minStack(4, 0),
			memorySize: memoryExtCodeCopy,
		},
		EXTCODEHASH: {
			execute:  opExtCodeHash,
			minStack: minStack(1, 1),
		},
		BLOCKHASH: {
			execute:  opBlockhash,
			minStack: minStack(1, 1),
		},
		COINBASE: {
			execute:  opCoinbase,
			minStack: minStack(0, 1),
		},
		TIMESTAMP: {
			execute:  opTimestamp,
			minStack: minStack(0, 1),
		},
		NUMBER: {
			execute:  opNumber,
			minStack: minStack(0, 1),
		},
		DIFFICULTY: {
			execute:  opDifficulty,
			minStack: minStack(0, 1),
		},
		GASLIMIT: {
			execute:  opGasLimit,
			minStack: minStack(0, 1),
		},
		CHAINID: {
			execute:  opChainID,
			minStack: minStack(0, 1),
		},
		SELFBALANCE: {
			execute:  opSelfBalance,
			minStack: minStack(0, 1),
		},
		BASEFEE: {
			execute:  opBaseFee,
			minStack: minStack(0, 1),
		},
		POP: {
			execute:  opPop,
			minStack: minStack(1, 0),
		},
		MLOAD: {
			execute:    opMload,
			minStack:   minStack(1, 1),
			memorySize: memoryMLoad,
		},
		MSTORE: {
			execute:    opMstore,
			minStack:   minStack(2, 0),
			memorySize: memoryMStore,
		},
		MSTORE8: {
			execute:    opMstore8,
			minStack:   minStack(2, 0),
			memorySize: memoryMStore8,
		},
		SLOAD: {
			execute:  opSload,
			minStack: minStack(1, 1),
		},
		SSTORE: {
			execute:  opSstore,
			minStack: minStack(2, 0),
		},
		JUMP: {
			execute:  opJump,
			minStack: minStack(1, 0),
		},
		JUMPI: {
			execute:  opJumpi,
			minStack: minStack(2, 0),
		},
		PC: {
			execute:  opPc,
			minStack: minStack(0, 1),
		},
		MSIZE: {
			execute:  opMsize,
			minStack: minStack(0, 1),
		},
		JUMPDEST: {
			execute:  opJumpdest,
			minStack: minStack(0, 0),
		},
		PUSH0: {
			execute:  opPush0,
			minStack: minStack(0, 1),
		},
		RETURN: {
			execute:    opReturn,
			minStack:   minStack(2, 0),
			memorySize: memoryReturn,
		},
		REVERT: {
			execute:    opRevert,
			minStack:   minStack(2, 0),
			memorySize: memoryRevert,
		},
		INVALID: {
			execute:  opInvalid,
			minStack: minStack(0, 0),
		},
	}
	// The families are generated from one handler each.
	// PUSH/DUP/SWAP/LOG 各由一个生成函数按 N 参数化。
	for i := 1; i <= 32; i++ {
		tbl[PUSH1+OpCode(i-1)] = &operation{
			execute:  makePush(uint64(i), i),
			minStack: minStack(0, 1),
		}
	}
	for i := 1; i <= 16; i++ {
		tbl[DUP1+OpCode(i-1)] = &operation{
			execute:  makeDup(int64(i)),
			minStack: minDupStack(i),
		}
		// SWAPn touches n+1 items.
		tbl[SWAP1+OpCode(i-1)] = &operation{
			execute:  makeSwap(int64(i)),
			minStack: minSwapStack(i + 1),
		}
	}
	for i := 0; i <= 4; i++ {
		tbl[LOG0+OpCode(i)] = &operation{
			execute:    makeLog(i),
			minStack:   minStack(i+2, 0),
			memorySize: memoryLog,
		}
	}
	return tbl
}
