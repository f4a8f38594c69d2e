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
	"github.com/sunyihoo/go-evm/common/math"
	"github.com/sunyihoo/go-evm/core/types"
	"github.com/sunyihoo/go-evm/crypto"
)

// Binary operations pop the left operand first and leave the result in the
// slot of the right one, so a handler never pushes without popping.
// 二元运算先弹出左操作数，结果写回右操作数所在的栈槽。

func opAdd(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Add(&x, y)
	return continueSignal, nil
}

func opSub(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Sub(&x, y)
	return continueSignal, nil
}

func opMul(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mul(&x, y)
	return continueSignal, nil
}

// opDiv 执行 DIV：除数为零时结果为零。
func opDiv(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Div(&x, y)
	return continueSignal, nil
}

// opSdiv divides the magnitudes and negates the quotient when exactly one
// operand is negative. A zero divisor yields zero before any sign handling.
func opSdiv(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if y.IsZero() {
		return continueSignal, nil
	}
	xNeg, yNeg := math.IsNegative(&x), math.IsNegative(y)
	var ax, ay uint256.Int
	math.Abs(&ax, &x)
	math.Abs(&ay, y)
	y.Div(&ax, &ay)
	if xNeg != yNeg {
		math.Negate(y, y)
	}
	return continueSignal, nil
}

// opMod 执行 MOD：模数为零时结果为零。
func opMod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mod(&x, y)
	return continueSignal, nil
}

// opSmod takes the remainder of the magnitudes; the result carries the sign
// of the dividend.
func opSmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if y.IsZero() {
		return continueSignal, nil
	}
	var ax, ay uint256.Int
	math.Abs(&ax, &x)
	math.Abs(&ay, y)
	y.Mod(&ax, &ay)
	if math.IsNegative(&x) {
		math.Negate(y, y)
	}
	return continueSignal, nil
}

func opExp(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	base, exponent := scope.Stack.pop(), scope.Stack.peek()
	exponent.Exp(&base, exponent)
	return continueSignal, nil
}

func opSignExtend(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	back, num := scope.Stack.pop(), scope.Stack.peek()
	num.ExtendSign(num, &back)
	return continueSignal, nil
}

func opNot(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x := scope.Stack.peek()
	x.Not(x)
	return continueSignal, nil
}

func opLt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return continueSignal, nil
}

func opGt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return continueSignal, nil
}

func opSlt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if math.SignedLess(&x, y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return continueSignal, nil
}

func opSgt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if math.SignedLess(y, &x) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return continueSignal, nil
}

func opEq(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return continueSignal, nil
}

func opIszero(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x := scope.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return continueSignal, nil
}

func opAnd(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.And(&x, y)
	return continueSignal, nil
}

func opOr(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Or(&x, y)
	return continueSignal, nil
}

func opXor(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Xor(&x, y)
	return continueSignal, nil
}

// opByte extracts byte th of val counting from the most significant end. An
// index past the word yields zero.
func opByte(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	th, val := scope.Stack.pop(), scope.Stack.peek()
	if !th.LtUint64(32) {
		interpreter.logger.Warn("BYTE offset out of range", "pc", *pc, "offset", &th)
	}
	val.Byte(&th)
	return continueSignal, nil
}

// opAddmod and opMulmod keep the full intermediate, so the sum or product is
// never truncated before the reduction. A zero modulus yields zero.
func opAddmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	z.AddMod(&x, &y, z)
	return continueSignal, nil
}

func opMulmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	z.MulMod(&x, &y, z)
	return continueSignal, nil
}

// opSHL implements Shift Left
// The SHL instruction (shift left) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the left by arg1 number of bits.
func opSHL(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	// Note, second operand is left in the stack; accumulate result into it, and no need to push it afterwards
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return continueSignal, nil
}

// opSHR implements Logical Shift Right
// The SHR instruction (logical shift right) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the right by arg1 number of bits with zero fill.
func opSHR(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return continueSignal, nil
}

// opSAR implements Arithmetic Shift Right
// The SAR instruction (arithmetic shift right) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the right by arg1 number of bits with sign extension.
//
// 符号扩展的算术右移：移位数不小于 256 时，负数得到全 1，非负数得到 0。
func opSAR(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if !shift.LtUint64(256) {
		if math.IsNegative(value) {
			value.SetAllOne()
		} else {
			value.Clear()
		}
		return continueSignal, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return continueSignal, nil
}

// opKeccak256 hashes size bytes of memory starting at offset.
func opKeccak256(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	data := scope.Memory.GetPtr(offset.Uint64(), size.Uint64())

	if interpreter.hasher == nil {
		interpreter.hasher = crypto.NewKeccakState()
	} else {
		interpreter.hasher.Reset()
	}
	interpreter.hasher.Write(data)
	interpreter.hasher.Read(interpreter.hasherBuf[:])

	size.SetBytes(interpreter.hasherBuf[:])
	return continueSignal, nil
}

func opPop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.pop()
	return continueSignal, nil
}

func opMload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	v := scope.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(offset, 32))
	return continueSignal, nil
}

func opMstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	mStart, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return continueSignal, nil
}

func opMstore8(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	off, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.SetByte(off.Uint64(), byte(val.Uint64()))
	return continueSignal, nil
}

// opMsize pushes the logical memory size, not the buffer capacity.
func opMsize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return continueSignal, nil
}

// opSload reads the storage slot addressed by the low 64 bits of the key.
// 存储键取弹出字的低 64 位；未写入的槽读为零。
func opSload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	loc := scope.Stack.peek()
	val := interpreter.storage[loc.Uint64()]
	loc.Set(&val)
	return continueSignal, nil
}

func opSstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	loc, val := scope.Stack.pop(), scope.Stack.pop()
	key := loc.Uint64()
	if hooks := interpreter.cfg.Tracer; hooks != nil && hooks.OnStorageChange != nil {
		hooks.OnStorageChange(key, interpreter.storage[key], val)
	}
	interpreter.storage[key] = val
	return continueSignal, nil
}

// opJump moves the program counter to a validated destination. An invalid
// destination halts the run with a failure code rather than an error.
func opJump(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	pos := scope.Stack.pop()
	if !scope.Contract.validJumpdest(&pos) {
		interpreter.logger.Debug("Invalid jump destination", "pc", *pc, "dest", &pos)
		return exitSignal(ExitFailure), nil
	}
	*pc = pos.Uint64() - 1 // pc will be increased by the interpreter loop
	return continueSignal, nil
}

func opJumpi(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	pos, cond := scope.Stack.pop(), scope.Stack.pop()
	if cond.IsZero() {
		return continueSignal, nil
	}
	if !scope.Contract.validJumpdest(&pos) {
		interpreter.logger.Debug("Invalid jump destination", "pc", *pc, "dest", &pos)
		return exitSignal(ExitFailure), nil
	}
	*pc = pos.Uint64() - 1 // pc will be increased by the interpreter loop
	return continueSignal, nil
}

func opJumpdest(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	return continueSignal, nil
}

func opPc(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(*pc))
	return continueSignal, nil
}

func opStop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	return exitSignal(ExitSuccess), nil
}

func opReturn(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	interpreter.returnData = scope.Memory.GetCopy(offset.Uint64(), size.Uint64())
	return exitSignal(ExitSuccess), nil
}

// opRevert 与 RETURN 相同地拷贝返回数据，但以失败码结束执行。
func opRevert(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	interpreter.returnData = scope.Memory.GetCopy(offset.Uint64(), size.Uint64())
	return exitSignal(ExitFailure), nil
}

func opInvalid(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	return exitSignal(ExitFailure), nil
}

func opPush0(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
	scope.Stack.push(new(uint256.Int))
	return continueSignal, nil
}

// makePush returns the PUSHn handler. Immediate bytes beyond the end of the
// code are absent, so the value is built from the bytes that remain. In
// strict mode a short immediate is a fatal error instead.
//
// 立即数越过代码末尾时，只取剩余字节（高位补零）；严格模式下视为致命错误。
func makePush(size uint64, pushByteSize int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
		var (
			codeLen = len(scope.Contract.Code)
			start   = min(codeLen, int(*pc+1))
			end     = min(codeLen, start+pushByteSize)
		)
		if end-start < pushByteSize && interpreter.cfg.StrictPushData {
			return continueSignal, ErrPushDataOutOfBounds
		}
		scope.Stack.push(new(uint256.Int).SetBytes(scope.Contract.Code[start:end]))
		*pc += size
		return continueSignal, nil
	}
}

// makeDup returns the DUPn handler.
func makeDup(size int64) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
		scope.Stack.dup(int(size))
		return continueSignal, nil
	}
}

// makeSwap returns the SWAPn handler, exchanging the top with item n+1.
func makeSwap(size int64) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
		scope.Stack.swap(int(size))
		return continueSignal, nil
	}
}

// makeLog returns the LOGn handler. The record replaces any earlier one of
// the same run and is attributed to the transaction recipient.
func makeLog(size int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) (signal, error) {
		topics := make([]common.Hash, size)
		stack := scope.Stack
		mStart, mSize := stack.pop(), stack.pop()
		for i := 0; i < size; i++ {
			addr := stack.pop()
			topics[i] = addr.Bytes32()
		}

		d := scope.Memory.GetCopy(mStart.Uint64(), mSize.Uint64())
		interpreter.lastLog = &types.Log{
			Address: scope.Contract.Address(),
			Topics:  topics,
			Data:    d,
		}
		if hooks := interpreter.cfg.Tracer; hooks != nil && hooks.OnLog != nil {
			hooks.OnLog(interpreter.lastLog)
		}
		return continueSignal, nil
	}
}
