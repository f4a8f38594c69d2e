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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpCodeNames(t *testing.T) {
	assert.Equal(t, "ADD", ADD.String())
	assert.Equal(t, "PUSH32", PUSH32.String())
	assert.Equal(t, "DUP16", OpCode(DUP16).String())
	assert.Equal(t, "SWAP1", OpCode(SWAP1).String())
	assert.Equal(t, "LOG4", LOG4.String())
	assert.Equal(t, "opcode 0xc not defined", OpCode(0x0c).String())

	for _, name := range []string{"KECCAK256", "SHA3"} {
		op, ok := LookupOp(name)
		assert.True(t, ok, name)
		assert.Equal(t, KECCAK256, op)
	}
	op, ok := LookupOp("PREVRANDAO")
	assert.True(t, ok)
	assert.Equal(t, DIFFICULTY, op)

	_, ok = LookupOp("NOPE")
	assert.False(t, ok)
}

func TestInstructionSet(t *testing.T) {
	table := LookupInstructionSet()
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		if table[op] == nil {
			assert.False(t, IsDefined(op), "%v", op)
			continue
		}
		assert.True(t, IsDefined(op), "%v", op)
	}
	// Every push, dup, swap and log is defined.
	for op := PUSH1; op <= PUSH32; op++ {
		assert.True(t, IsDefined(op), "%v", op)
	}
	for i := 0; i < 16; i++ {
		assert.True(t, IsDefined(OpCode(DUP1+i)))
		assert.True(t, IsDefined(OpCode(SWAP1+i)))
	}
	for op := LOG0; op <= LOG4; op++ {
		assert.True(t, IsDefined(op), "%v", op)
	}
	assert.False(t, IsDefined(CREATE))
	assert.False(t, IsDefined(CALL))

	assert.Equal(t, 3, table[ADDMOD].Stack())
	assert.Equal(t, 17, table[SWAP16].Stack())
	assert.Equal(t, 6, table[LOG4].Stack())
	assert.True(t, table[MSTORE].HasMemory())
	assert.False(t, table[ADD].HasMemory())
}
