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

// Package math provides two's-complement helpers over 256 bit words.
//
// Words are always stored unsigned. A signed view is taken on demand by
// treating bit 255 as the sign bit.
//
// 字始终以无符号形式存储；需要有符号语义时，将第 255 位视为符号位。
package math

import "github.com/holiman/uint256"

// MaxWord is 2^256-1, which is also -1 in two's complement.
var MaxWord = new(uint256.Int).SetAllOne()

// IsNegative reports whether x has its sign bit set.
func IsNegative(x *uint256.Int) bool {
	return x[3]&(1<<63) != 0
}

// Negate sets z to the two's-complement negation of x (^x + 1) and returns z.
// The most negative word maps onto itself.
// Negate 将 z 设为 x 的二进制补码相反数（按位取反再加一）。
func Negate(z, x *uint256.Int) *uint256.Int {
	z.Not(x)
	return z.AddUint64(z, 1)
}

// Abs sets z to the magnitude of x under the signed interpretation.
func Abs(z, x *uint256.Int) *uint256.Int {
	if IsNegative(x) {
		return Negate(z, x)
	}
	return z.Set(x)
}

// SignedLess reports x < y when both are read as signed words. Opposite
// signs decide immediately; equal signs compare the raw bit patterns.
// SignedLess：符号不同时直接判定，符号相同时直接比较原始位模式。
func SignedLess(x, y *uint256.Int) bool {
	xNeg, yNeg := IsNegative(x), IsNegative(y)
	if xNeg != yNeg {
		return xNeg
	}
	return x.Lt(y)
}
