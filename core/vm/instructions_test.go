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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evm/log"
)

var (
	maxWord = new(uint256.Int).SetAllOne()
	minInt  = new(uint256.Int).Lsh(uint256.NewInt(1), 255)
)

func neg(v uint64) *uint256.Int {
	return new(uint256.Int).Neg(uint256.NewInt(v))
}

// pushWord returns a PUSH32 of v.
func pushWord(v *uint256.Int) []byte {
	b := v.Bytes32()
	return append([]byte{byte(PUSH32)}, b[:]...)
}

func newTestInterpreter(cfg Config) *EVMInterpreter {
	if cfg.Logger == nil {
		cfg.Logger = log.NewLogger(log.DiscardHandler())
	}
	return NewEVMInterpreter(cfg)
}

// evalOp runs op over the given operands, the first one ending up on top of
// the stack, and returns the single word it leaves behind.
func evalOp(t *testing.T, op OpCode, args ...*uint256.Int) *uint256.Int {
	t.Helper()
	var code []byte
	for i := len(args) - 1; i >= 0; i-- {
		code = append(code, pushWord(args[i])...)
	}
	code = append(code, byte(op))

	res, err := newTestInterpreter(Config{}).Run(code, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Stack, 1)
	return &res.Stack[0]
}

func TestBinaryOps(t *testing.T) {
	tests := []struct {
		op   OpCode
		a, b *uint256.Int // a is the top of the stack
		want *uint256.Int
	}{
		{ADD, maxWord, uint256.NewInt(1), new(uint256.Int)},
		{SUB, uint256.NewInt(3), uint256.NewInt(5), neg(2)},
		{MUL, uint256.NewInt(6), uint256.NewInt(7), uint256.NewInt(42)},
		{DIV, uint256.NewInt(10), uint256.NewInt(3), uint256.NewInt(3)},
		{DIV, uint256.NewInt(10), new(uint256.Int), new(uint256.Int)},
		{MOD, uint256.NewInt(10), new(uint256.Int), new(uint256.Int)},
		{SDIV, neg(10), uint256.NewInt(3), neg(3)},
		{SDIV, neg(10), new(uint256.Int), new(uint256.Int)},
		{SDIV, minInt, neg(1), minInt},
		{SMOD, neg(10), uint256.NewInt(3), neg(1)},
		{SMOD, neg(10), new(uint256.Int), new(uint256.Int)},
		{EXP, uint256.NewInt(2), uint256.NewInt(10), uint256.NewInt(1024)},
		{SIGNEXTEND, new(uint256.Int), uint256.NewInt(0xff), maxWord},
		{SIGNEXTEND, new(uint256.Int), uint256.NewInt(0x7f), uint256.NewInt(0x7f)},
		{LT, uint256.NewInt(1), uint256.NewInt(2), uint256.NewInt(1)},
		{GT, uint256.NewInt(1), uint256.NewInt(2), new(uint256.Int)},
		{SLT, neg(1), new(uint256.Int), uint256.NewInt(1)},
		{SGT, neg(1), new(uint256.Int), new(uint256.Int)},
		{EQ, uint256.NewInt(5), uint256.NewInt(5), uint256.NewInt(1)},
		{AND, uint256.NewInt(0xf0), uint256.NewInt(0x3c), uint256.NewInt(0x30)},
		{OR, uint256.NewInt(0xf0), uint256.NewInt(0x0f), uint256.NewInt(0xff)},
		{BYTE, uint256.NewInt(31), uint256.NewInt(0xff), uint256.NewInt(0xff)},
		{BYTE, uint256.NewInt(32), maxWord, new(uint256.Int)},
		{SHL, uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(2)},
		{SHL, uint256.NewInt(256), uint256.NewInt(1), new(uint256.Int)},
		{SHR, uint256.NewInt(4), uint256.NewInt(0xff), uint256.NewInt(0x0f)},
		{SAR, uint256.NewInt(2), neg(16), neg(4)},
		{SAR, uint256.NewInt(300), neg(16), maxWord},
		{SAR, uint256.NewInt(300), uint256.NewInt(16), new(uint256.Int)},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got := evalOp(t, tt.op, tt.a, tt.b)
			assert.Equal(t, tt.want.Hex(), got.Hex(), "%v(%v, %v)", tt.op, tt.a.Hex(), tt.b.Hex())
		})
	}

	// An out of range BYTE index is reported as a warning.
	var buf bytes.Buffer
	in := newTestInterpreter(Config{Logger: log.NewLogger(log.JSONHandler(&buf))})
	code := append(pushWord(maxWord), pushWord(uint256.NewInt(31))...)
	_, err := in.Run(append(code, byte(BYTE)), nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "BYTE offset out of range")

	buf.Reset()
	code = append(pushWord(maxWord), pushWord(uint256.NewInt(32))...)
	res, err := in.Run(append(code, byte(BYTE)), nil)
	require.NoError(t, err)
	assert.True(t, res.Stack[0].IsZero())
	assert.Contains(t, buf.String(), `"lvl":"warn"`)
	assert.Contains(t, buf.String(), `"msg":"BYTE offset out of range"`)
}

func TestModularArithmeticIsFullPrecision(t *testing.T) {
	seven := uint256.NewInt(7)
	// (2^256-1) is 1 mod 7, so the true sum is 2 and the true product is 1.
	assert.Equal(t, uint64(2), evalOp(t, ADDMOD, maxWord, maxWord, seven).Uint64())
	assert.Equal(t, uint64(1), evalOp(t, MULMOD, maxWord, maxWord, seven).Uint64())

	assert.True(t, evalOp(t, ADDMOD, uint256.NewInt(1), uint256.NewInt(2), new(uint256.Int)).IsZero())
	assert.True(t, evalOp(t, MULMOD, uint256.NewInt(3), uint256.NewInt(4), new(uint256.Int)).IsZero())
}

func TestBitwiseIdentities(t *testing.T) {
	for _, v := range []*uint256.Int{new(uint256.Int), uint256.NewInt(1), neg(1), minInt, uint256.NewInt(0xdeadbeef)} {
		notv := evalOp(t, NOT, v)
		assert.Equal(t, v, evalOp(t, NOT, notv), "not(not %v)", v.Hex())
		assert.True(t, evalOp(t, XOR, v, v).IsZero(), "xor(%v, %v)", v.Hex(), v.Hex())
	}
}

func TestIsZero(t *testing.T) {
	assert.Equal(t, uint64(1), evalOp(t, ISZERO, new(uint256.Int)).Uint64())
	assert.Equal(t, uint64(0), evalOp(t, ISZERO, minInt).Uint64())
}

func TestDupSwap(t *testing.T) {
	// PUSH1 1, PUSH1 2, PUSH1 3, DUP3, SWAP1
	res, err := newTestInterpreter(Config{}).Run([]byte{0x60, 1, 0x60, 2, 0x60, 3, byte(DUP3), byte(SWAP1)}, nil)
	require.NoError(t, err)
	require.Len(t, res.Stack, 4)
	assert.Equal(t, []uint64{3, 1, 2, 1}, stackUint64s(res.Stack))
}

func TestKeccak256(t *testing.T) {
	in := newTestInterpreter(Config{})

	// Empty input: PUSH1 0, PUSH1 0, KECCAK256
	res, err := in.Run([]byte{0x60, 0, 0x60, 0, byte(KECCAK256)}, nil)
	require.NoError(t, err)
	require.Len(t, res.Stack, 1)
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", res.Stack[0].Hex())

	// keccak256(0xffffffff) read from the last four bytes of the first word.
	code := []byte{
		byte(PUSH4), 0xff, 0xff, 0xff, 0xff, byte(PUSH1), 0, byte(MSTORE),
		byte(PUSH1), 4, byte(PUSH1), 28, byte(KECCAK256),
	}
	res, err = in.Run(code, nil)
	require.NoError(t, err)
	require.Len(t, res.Stack, 1)
	assert.Equal(t, "0x29045a592007d0c246ef02c2223570da9522d0cf0f73282c79a1bc8f0bb2c238", res.Stack[0].Hex())
}

func stackUint64s(stack []uint256.Int) []uint64 {
	out := make([]uint64, len(stack))
	for i := range stack {
		out[i] = stack[i].Uint64()
	}
	return out
}
