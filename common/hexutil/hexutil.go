// Copyright 2016 The go-ethereum Authors
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

/*
Package hexutil implements hex encoding with 0x prefix.

Strict decoding (Decode, UnmarshalFixedText) requires the 0x prefix and an
even number of digits. Loose decoding (DecodeLoose, DecodeU256) is meant for
hand written fixtures and command line input: the prefix is optional, odd
lengths are left padded and leading zeros are accepted.

Hex 编码带 0x 前缀。严格解码要求前缀与偶数位数字；宽松解码用于手写的测试夹具与命令行输入。
*/
package hexutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

var (
	ErrEmptyString   = &decError{"empty hex string"}
	ErrSyntax        = &decError{"invalid hex string"}
	ErrMissingPrefix = &decError{"hex string without 0x prefix"}
	ErrOddLength     = &decError{"hex string of odd length"}
	ErrEmptyNumber   = &decError{"hex string \"0x\""}
	ErrU256Range     = &decError{"hex number > 256 bits"}
)

type decError struct{ msg string }

func (err decError) Error() string { return err.msg }

// Decode decodes a hex string with 0x prefix.
func Decode(input string) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyString
	}
	if !has0xPrefix(input) {
		return nil, ErrMissingPrefix
	}
	b, err := hex.DecodeString(input[2:])
	if err != nil {
		err = mapError(err)
	}
	return b, err
}

// DecodeLoose decodes hex with an optional 0x prefix. Whitespace between
// digits is ignored and odd-length input is left padded with a zero digit.
// DecodeLoose 解码可选 0x 前缀的十六进制，忽略空白，奇数长度时左侧补 0。
func DecodeLoose(input string) ([]byte, error) {
	input = strings.Join(strings.Fields(input), "")
	if has0xPrefix(input) {
		input = input[2:]
	}
	if len(input)%2 == 1 {
		input = "0" + input
	}
	b, err := hex.DecodeString(input)
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

// Encode encodes b as a hex string with 0x prefix.
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// DecodeU256 decodes a 256 bit number. Input with a 0x prefix is read as
// hex, where leading zeros are allowed, anything else as decimal.
// DecodeU256 解码 256 位数字：带 0x 前缀按十六进制（允许前导零），否则按十进制。
func DecodeU256(input string) (*uint256.Int, error) {
	if len(input) == 0 {
		return nil, ErrEmptyString
	}
	if !has0xPrefix(input) {
		v, err := uint256.FromDecimal(input)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal number %q: %w", input, err)
		}
		return v, nil
	}
	digits := strings.TrimLeft(input[2:], "0")
	if len(input) == 2 {
		return nil, ErrEmptyNumber
	}
	if len(digits) > 64 {
		return nil, ErrU256Range
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return nil, mapError(err)
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func has0xPrefix(input string) bool {
	return len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X')
}

func mapError(err error) error {
	var invalid hex.InvalidByteError
	if errors.As(err, &invalid) {
		return ErrSyntax
	}
	if errors.Is(err, hex.ErrLength) {
		return ErrOddLength
	}
	return err
}
