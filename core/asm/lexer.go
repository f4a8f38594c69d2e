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
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType classifies the lexemes of the assembly language.
type tokenType int

const (
	eof              tokenType = iota // end of input
	lineStart                         // start of every source line
	lineEnd                           // the newline closing a line
	invalidStatement                  // a character no statement can start with
	element                           // an opcode or directive name
	label                             // @name, a reference to a label
	labelDef                          // name:, defines a JUMPDEST
	number                            // decimal or 0x prefixed literal
	stringValue                       // "quoted", quotes included
)

var tokenTypeNames = [...]string{
	eof:              "eof",
	lineStart:        "lineStart",
	lineEnd:          "lineEnd",
	invalidStatement: "invalidStatement",
	element:          "element",
	label:            "label",
	labelDef:         "labelDef",
	number:           "number",
	stringValue:      "stringValue",
}

func (t tokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("tokenType(%d)", int(t))
}

// token is a lexeme together with the zero based line it was found on.
type token struct {
	typ    tokenType
	lineno int
	text   string
}

// stateFn lexes from the current position and returns the next state, or
// nil once the input is exhausted.
type stateFn func(*lexer) stateFn

// lexer splits assembly source into tokens. It runs in its own goroutine and
// hands tokens to the compiler over a channel.
//
// 词法分析器在独立的 goroutine 中运行，通过 channel 把 token 交给编译器。
type lexer struct {
	src    string
	tokens chan<- token

	line       int
	start, pos int // start of the pending lexeme, read position
	width      int // width of the last rune read

	debug bool
}

// Lex starts lexing source and returns the channel the tokens arrive on. The
// stream always begins with lineStart and ends with eof before it is closed.
func Lex(source []byte, debug bool) <-chan token {
	ch := make(chan token)
	l := &lexer{src: string(source), tokens: ch, debug: debug}
	go l.run(ch)
	return ch
}

func (l *lexer) run(ch chan token) {
	defer close(ch)
	l.emit(lineStart)
	for state := lexLine; state != nil; {
		state = state(l)
	}
	l.emit(eof)
}

const endOfInput rune = 0

func (l *lexer) next() rune {
	if l.pos >= len(l.src) {
		l.width = 0
		return endOfInput
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	l.width = w
	return r
}

// unread steps back over the rune returned by the last next call.
func (l *lexer) unread() { l.pos -= l.width }

func (l *lexer) peek() rune {
	r := l.next()
	l.unread()
	return r
}

// skip drops the pending lexeme.
func (l *lexer) skip() { l.start = l.pos }

// consume reads runes while ok reports true.
func (l *lexer) consume(ok func(rune) bool) {
	for r := l.next(); r != endOfInput && ok(r); r = l.next() {
	}
	l.unread()
}

// consumeThrough reads up to and including the first r. It reports false if
// the input ended first.
func (l *lexer) consumeThrough(r rune) bool {
	i := strings.IndexRune(l.src[l.pos:], r)
	if i < 0 {
		l.pos, l.width = len(l.src), 0
		return false
	}
	l.pos += i + utf8.RuneLen(r)
	l.width = utf8.RuneLen(r)
	return true
}

func (l *lexer) emit(typ tokenType) {
	tok := token{typ: typ, lineno: l.line, text: l.src[l.start:l.pos]}
	if l.debug {
		fmt.Fprintf(os.Stderr, "%04d: (%-20v) %s\n", tok.lineno, tok.typ, tok.text)
	}
	l.tokens <- tok
	l.start = l.pos
}

// lexLine dispatches on the first rune of the next lexeme.
func lexLine(l *lexer) stateFn {
	for {
		r := l.next()
		switch {
		case r == endOfInput:
			return nil
		case r == '\n':
			l.emit(lineEnd)
			l.line++
			l.emit(lineStart)
		case unicode.IsSpace(r):
			l.skip()
		case r == ';' && l.peek() == ';':
			return lexComment
		case r == '@':
			l.skip()
			return lexLabel
		case r == '"':
			return lexString
		case unicode.IsDigit(r):
			return lexNumber
		case unicode.IsLetter(r) || r == '_':
			return lexElement
		default:
			l.emit(invalidStatement)
		}
	}
}

// lexComment discards everything up to the end of the line.
func lexComment(l *lexer) stateFn {
	if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
		l.pos += i
	} else {
		l.pos = len(l.src)
	}
	l.skip()
	return lexLine
}

func lexLabel(l *lexer) stateFn {
	l.consume(isIdentRune)
	l.emit(label)
	return lexLine
}

// lexString emits the quoted string including its quotes. An unterminated
// string is reported as an invalid statement.
func lexString(l *lexer) stateFn {
	if l.consumeThrough('"') {
		l.emit(stringValue)
	} else {
		l.emit(invalidStatement)
	}
	return lexLine
}

func lexNumber(l *lexer) stateFn {
	digit := isDecimal
	if r := l.next(); r == 'x' || r == 'X' {
		digit = isHex
	} else {
		l.unread()
	}
	l.consume(digit)
	l.emit(number)
	return lexLine
}

// lexElement lexes a name, which is a label definition when directly
// followed by a colon.
func lexElement(l *lexer) stateFn {
	l.consume(isIdentRune)
	if l.peek() != ':' {
		l.emit(element)
		return lexLine
	}
	l.emit(labelDef)
	l.next()
	l.skip()
	return lexLine
}

func isDecimal(r rune) bool { return '0' <= r && r <= '9' }

func isHex(r rune) bool {
	return isDecimal(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func isIdentRune(r rune) bool {
	return isDecimal(r) || r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
