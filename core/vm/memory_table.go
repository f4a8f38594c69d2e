// Copyright 2017 The go-ethereum Authors
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

// Each function returns one past the highest memory byte the instruction will
// touch, read from the operands still on the stack. The run loop rounds it up
// to whole words before the instruction executes.
//
// 返回指令将访问的最高内存字节的下一个位置，由解释器在执行前按字对齐扩展内存。

func memoryKeccak256(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(0), stack.Back(1))
}

func memoryCallDataCopy(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(0), stack.Back(2))
}

func memoryCodeCopy(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(0), stack.Back(2))
}

func memoryExtCodeCopy(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(1), stack.Back(3))
}

func memoryMLoad(stack *Stack) (uint64, bool) {
	return memoryEndFixed(stack.Back(0), 32)
}

func memoryMStore8(stack *Stack) (uint64, bool) {
	return memoryEndFixed(stack.Back(0), 1)
}

func memoryMStore(stack *Stack) (uint64, bool) {
	return memoryEndFixed(stack.Back(0), 32)
}

func memoryReturn(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(0), stack.Back(1))
}

func memoryRevert(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(0), stack.Back(1))
}

func memoryLog(stack *Stack) (uint64, bool) {
	return memoryEnd(stack.Back(0), stack.Back(1))
}
