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
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/sunyihoo/go-evm/core/vm"
)

// Compiler turns a token stream into bytecode in two passes. Feed records
// every token and the code offset of each label definition, Compile then
// emits the instructions with label references resolved.
//
// Besides the bare `push <value>` form, which picks the smallest PUSH that
// fits, sized pushes such as `PUSH2 0x01` are accepted and left-pad the
// value to the requested width. Labels are pushed as 4 byte offsets.
//
// 除 push <值> 自动选择宽度外，也接受 PUSH2 0x01 这类显式宽度写法，值会左侧补零。
type Compiler struct {
	tokens []token
	pos    int

	labels map[string]int
	out    []byte

	debug bool
}

// NewCompiler returns a new allocated compiler.
func NewCompiler(debug bool) *Compiler {
	return &Compiler{labels: make(map[string]int), debug: debug}
}

// Feed drains ch. Each token's contribution to the code size is added up so
// that the offset of every label definition is known before compiling.
func (c *Compiler) Feed(ch <-chan token) {
	var (
		size int
		prev token
	)
	for tok := range ch {
		if tok.typ == labelDef {
			c.labels[tok.text] = size
		}
		size += encodedSize(prev, tok)
		c.tokens = append(c.tokens, tok)
		prev = tok
	}
	if c.debug {
		fmt.Fprintln(os.Stderr, "found", len(c.labels), "labels")
	}
}

// encodedSize is the number of code bytes tok compiles to, given the token
// that preceded it. Operands of a jump carry the PUSH that a bare jump lacks.
func encodedSize(prev, tok token) int {
	jumpOperand := prev.typ == element && isJump(prev.text)

	switch tok.typ {
	case element:
		return 1 + sizedPush(tok.text)
	case labelDef:
		return 1
	case stringValue:
		return len(tok.text) - 2
	case label:
		if jumpOperand {
			return 1 + 4
		}
		return 4
	case number:
		if prev.typ == element && sizedPush(prev.text) > 0 {
			return 0 // reserved by the PUSHn element itself
		}
		n := 1
		if v, err := parseNumber(tok); err == nil {
			n = len(v)
		}
		if jumpOperand {
			n++
		}
		return n
	}
	return 0
}

// Compile emits the bytecode for the fed tokens and returns it hex encoded.
// Every malformed line produces an error, compilation continues after it.
func (c *Compiler) Compile() (string, []error) {
	var errs []error
	for c.pos < len(c.tokens) {
		if err := c.compileLine(); err != nil {
			errs = append(errs, err)
		}
	}
	return hex.EncodeToString(c.out), errs
}

func (c *Compiler) next() token {
	tok := c.tokens[c.pos]
	c.pos++
	return tok
}

// compileLine compiles one line: an optional statement between lineStart
// and lineEnd.
func (c *Compiler) compileLine() error {
	if tok := c.next(); tok.typ != lineStart {
		return compileErr(tok, tok.typ.String(), lineStart.String())
	}
	switch stmt := c.next(); stmt.typ {
	case eof, lineEnd:
		return nil
	case labelDef:
		c.emitOp(vm.JUMPDEST)
	case element:
		if err := c.compileElement(stmt); err != nil {
			return err
		}
	default:
		return compileErr(stmt, stmt.text, fmt.Sprintf("%v or %v", labelDef, element))
	}
	if tok := c.next(); tok.typ != lineEnd && tok.typ != eof {
		return compileErr(tok, tok.text, lineEnd.String())
	}
	return nil
}

func (c *Compiler) compileElement(el token) error {
	switch {
	case isJump(el.text):
		return c.compileJump(el)
	case strings.EqualFold(el.text, "push"):
		return c.compilePush()
	case sizedPush(el.text) > 0:
		return c.compileSizedPush(el)
	}
	op, ok := vm.LookupOp(strings.ToUpper(el.text))
	if !ok {
		return compileErr(el, el.text, "opcode")
	}
	c.emitOp(op)
	return nil
}

// compileJump emits JUMP or JUMPI, preceded by a push of the target when one
// is given on the same line.
func (c *Compiler) compileJump(el token) error {
	switch target := c.next(); target.typ {
	case number:
		v, err := parseNumber(target)
		if err != nil {
			return compileErr(target, target.text, "number")
		}
		c.emitPush(v)
	case label:
		offset, err := c.labelOffset(target)
		if err != nil {
			return err
		}
		c.emitPush(offset)
	case lineEnd, eof:
		c.pos-- // target taken from the stack
	default:
		return compileErr(target, target.text, "number or label")
	}
	op, _ := vm.LookupOp(strings.ToUpper(el.text))
	c.emitOp(op)
	return nil
}

// compilePush compiles the push instruction, choosing the narrowest PUSH.
func (c *Compiler) compilePush() error {
	var (
		arg   = c.next()
		value []byte
		err   error
	)
	switch arg.typ {
	case number:
		if value, err = parseNumber(arg); err != nil {
			return compileErr(arg, arg.text, "number")
		}
	case stringValue:
		value = []byte(strings.Trim(arg.text, `"`))
	case label:
		if value, err = c.labelOffset(arg); err != nil {
			return err
		}
	default:
		return compileErr(arg, arg.text, "number, string or label")
	}
	if len(value) > 32 {
		return fmt.Errorf("%d: string or number size > 32 bytes", arg.lineno+1)
	}
	c.emitPush(value)
	return nil
}

// compileSizedPush compiles PUSHn with an explicit immediate width.
func (c *Compiler) compileSizedPush(el token) error {
	size := sizedPush(el.text)
	arg := c.next()
	if arg.typ != number {
		return compileErr(arg, arg.text, "number")
	}
	value, err := parseNumber(arg)
	if err != nil {
		return compileErr(arg, arg.text, "number")
	}
	if len(value) > size {
		return fmt.Errorf("%d: value %s does not fit %s", arg.lineno+1, arg.text, strings.ToUpper(el.text))
	}
	c.emitPush(append(make([]byte, size-len(value)), value...))
	return nil
}

// labelOffset encodes the position of a defined label as a 4 byte immediate.
func (c *Compiler) labelOffset(ref token) ([]byte, error) {
	pc, ok := c.labels[ref.text]
	if !ok {
		return nil, fmt.Errorf("%d: undefined label @%s", ref.lineno+1, ref.text)
	}
	return binary.BigEndian.AppendUint32(nil, uint32(pc)), nil
}

// emitPush writes PUSHn followed by the n bytes of value, 1 <= n <= 32.
func (c *Compiler) emitPush(value []byte) {
	c.emitOp(vm.PUSH1 + vm.OpCode(len(value)-1))
	if c.debug {
		fmt.Printf("%d: %x\n", len(c.out), value)
	}
	c.out = append(c.out, value...)
}

func (c *Compiler) emitOp(op vm.OpCode) {
	if c.debug {
		fmt.Printf("%d: %v\n", len(c.out), op)
	}
	c.out = append(c.out, byte(op))
}

// parseNumber returns the minimal big endian encoding of a number token,
// which is a single zero byte for 0.
func parseNumber(tok token) ([]byte, error) {
	num, err := hexutil.DecodeU256(tok.text)
	if err != nil {
		return nil, errors.New("invalid number")
	}
	if num.IsZero() {
		return []byte{0}, nil
	}
	return num.Bytes(), nil
}

// sizedPush returns n for a PUSHn element with 1 <= n <= 32, else zero.
func sizedPush(name string) int {
	op, ok := vm.LookupOp(strings.ToUpper(name))
	if !ok {
		return 0
	}
	return op.PushSize()
}

func isJump(name string) bool {
	return strings.EqualFold(name, "jump") || strings.EqualFold(name, "jumpi")
}

type compileError struct {
	got, want string
	lineno    int
}

func (err compileError) Error() string {
	return fmt.Sprintf("%d: syntax error: unexpected %v, expected %v", err.lineno, err.got, err.want)
}

func compileErr(tok token, got, want string) error {
	return compileError{got: got, want: want, lineno: tok.lineno + 1}
}

// Assemble compiles assembly source into bytecode.
func Assemble(source string) ([]byte, error) {
	c := NewCompiler(false)
	c.Feed(Lex([]byte(source), false))
	out, errs := c.Compile()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return hex.DecodeString(out)
}
