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
// Package asm provides support for dealing with EVM assembly instructions (e.g., disassembling them).
package asm

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/sunyihoo/go-evm/core/vm"
)

// instructionIterator walks the instructions of a piece of bytecode, treating
// PUSH immediates as arguments of the instruction they belong to.
type instructionIterator struct {
	code []byte
	pc   uint64 // offset of the current instruction
	next uint64 // offset of the instruction after it
	op   vm.OpCode
	arg  []byte
	err  error
}

// NewInstructionIterator creates a new instruction iterator.
func NewInstructionIterator(code []byte) *instructionIterator {
	return &instructionIterator{code: code}
}

// Next advances to the next instruction and reports whether there is one.
// A PUSH whose immediate runs past the end of the code stops the iteration
// with an error.
//
// 若存在下一条指令则前进并返回 true；PUSH 的立即数作为参数整体跳过。
func (it *instructionIterator) Next() bool {
	if it.err != nil || it.next >= uint64(len(it.code)) {
		return false
	}
	it.pc = it.next
	it.op = vm.OpCode(it.code[it.pc])
	it.arg = nil

	end := it.pc + 1 + uint64(it.op.PushSize())
	if end > uint64(len(it.code)) {
		it.err = fmt.Errorf("incomplete instruction at %v", it.pc)
		return false
	}
	if end > it.pc+1 {
		it.arg = it.code[it.pc+1 : end]
	}
	it.next = end
	return true
}

// Error returns the error that stopped the iteration, if any.
func (it *instructionIterator) Error() error { return it.err }

// PC returns the PC of the current instruction.
func (it *instructionIterator) PC() uint64 { return it.pc }

// Op returns the opcode of the current instruction.
func (it *instructionIterator) Op() vm.OpCode { return it.op }

// Arg returns the PUSH immediate of the current instruction, or nil.
func (it *instructionIterator) Arg() []byte { return it.arg }

// formatInstruction renders one instruction. Opcodes the interpreter has no
// handler for are flagged so a reader can tell them from defined ones.
func formatInstruction(pc uint64, op vm.OpCode, arg []byte) string {
	name := op.String()
	if !vm.IsDefined(op) {
		name += " (undefined)"
	}
	if len(arg) > 0 {
		return fmt.Sprintf("%05x: %v %#x", pc, name, arg)
	}
	return fmt.Sprintf("%05x: %v", pc, name)
}

// PrintDisassembled pretty-prints all disassembled EVM instructions of the
// hex encoded code to w.
func PrintDisassembled(w io.Writer, code string) error {
	script, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(code), "0x"))
	if err != nil {
		return err
	}
	it := NewInstructionIterator(script)
	for it.Next() {
		fmt.Fprintln(w, formatInstruction(it.PC(), it.Op(), it.Arg()))
	}
	return it.Error()
}

// Disassemble returns all disassembled EVM instructions in human-readable format.
func Disassemble(script []byte) ([]string, error) {
	instrs := make([]string, 0)
	it := NewInstructionIterator(script)
	for it.Next() {
		instrs = append(instrs, formatInstruction(it.PC(), it.Op(), it.Arg()))
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return instrs, nil
}
