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


package asm

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests disassembling instructions
func TestInstructionIterator(t *testing.T) {
	for i, tc := range []struct {
		code    string
		want    int
		wantErr string
	}{
		{"", 0, ""},
		{"61000000", 2, ""},
		{"6100", 0, "incomplete instruction at 0"},
		{"6001600201", 3, ""},
		{"7f" + strings.Repeat("00", 32), 1, ""},
		{"0c5b", 2, ""},
		{"60016002ff", 3, ""},
	} {
		code, err := hex.DecodeString(tc.code)
		require.NoError(t, err, "test %d", i)
		cnt := 0
		it := NewInstructionIterator(code)
		for it.Next() {
			cnt++
		}
		if tc.wantErr != "" {
			assert.EqualError(t, it.Error(), tc.wantErr, "test %d", i)
		} else {
			assert.NoError(t, it.Error(), "test %d", i)
		}
		assert.Equal(t, tc.want, cnt, "test %d", i)
	}
}

func TestDisassemble(t *testing.T) {
	code, _ := hex.DecodeString("60016002010c")
	lines, err := Disassemble(code)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00000: PUSH1 0x01",
		"00002: PUSH1 0x02",
		"00004: ADD",
		"00005: opcode 0xc not defined (undefined)",
	}, lines)

	_, err = Disassemble([]byte{0x7f, 0x01})
	assert.Error(t, err)
}

func TestPrintDisassembled(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, PrintDisassembled(&sb, "0x600456005b\n"))
	assert.Equal(t, "00000: PUSH1 0x04\n00002: JUMP\n00003: STOP\n00004: JUMPDEST\n", sb.String())

	assert.Error(t, PrintDisassembled(&sb, "zz"))
}

func TestAssemble(t *testing.T) {
	for _, tc := range []struct {
		name   string
		source string
		want   string
	}{
		{"push and add", "push 1\npush 2\nadd\n", "6001600201"},
		{"no trailing newline", "push 1", "6001"},
		{"hex and upper case", "PUSH 0x0100\nMSTORE", "61010052"},
		{"zero", "push 0", "6000"},
		{"sized push", "push2 0x01\npush4 7", "6100016300000007"},
		{"string", "push \"ab\"", "616162"},
		{"comments", ";; setup\npush 1 ;; one\n\nstop", "600100"},
		{"aliases", "sha3\nprevrandao", "2044"},
		{"jump forward", "jump @end\npush 1\nend:\npush 2", "630000000856" + "6001" + "5b" + "6002"},
		{"jumpi with number", "push 1\njumpi 6\nstop\nend:", "600160065700" + "5b"},
		{"push label", "push @here\nhere:", "6300000005" + "5b"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, err := Assemble(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(code))
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	for _, source := range []string{
		"frobnicate",
		"push",
		"push2 0x010203",
		"push 1 2",
	} {
		_, err := Assemble(source)
		assert.Error(t, err, "source %q", source)
	}
}

func TestCompilerReportsLine(t *testing.T) {
	c := NewCompiler(false)
	c.Feed(Lex([]byte("push 1\nbogus\n"), false))
	_, errs := c.Compile()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "2: syntax error: unexpected bogus")
}

func TestAssembleUndefinedLabel(t *testing.T) {
	_, err := Assemble("jump @nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1: undefined label @nowhere")
}

func TestAssembleInvalidCharacter(t *testing.T) {
	_, err := Assemble("push 1 $")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1: syntax error: unexpected $, expected lineEnd")

	_, err = Assemble("push \"open")
	assert.Error(t, err)
}

func TestLexTokens(t *testing.T) {
	var got []tokenType
	for tok := range Lex([]byte("start:\n  push @start ;; loop\njump"), false) {
		got = append(got, tok.typ)
	}
	assert.Equal(t, []tokenType{
		lineStart, labelDef, lineEnd,
		lineStart, element, label, lineEnd,
		lineStart, element, eof,
	}, got)
}
