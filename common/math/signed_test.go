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

package math

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func neg(v uint64) *uint256.Int {
	return Negate(new(uint256.Int), uint256.NewInt(v))
}

func TestIsNegative(t *testing.T) {
	assert.False(t, IsNegative(uint256.NewInt(0)))
	assert.False(t, IsNegative(uint256.NewInt(1)))
	assert.True(t, IsNegative(MaxWord))
	assert.True(t, IsNegative(neg(6)))

	minInt := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	assert.True(t, IsNegative(minInt))
	assert.False(t, IsNegative(new(uint256.Int).SubUint64(minInt, 1)))
}

func TestNegate(t *testing.T) {
	// Test case 1: -1 is all ones.
	assert.Equal(t, MaxWord, neg(1))

	// Test case 2: negating twice is the identity.
	x := uint256.NewInt(123456)
	assert.Equal(t, x, Negate(new(uint256.Int), Negate(new(uint256.Int), x)))

	// Test case 3: zero and the most negative word are fixed points.
	assert.True(t, neg(0).IsZero())
	minInt := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	assert.Equal(t, minInt, Negate(new(uint256.Int), minInt))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, uint256.NewInt(6), Abs(new(uint256.Int), neg(6)))
	assert.Equal(t, uint256.NewInt(6), Abs(new(uint256.Int), uint256.NewInt(6)))
}

func TestSignedLess(t *testing.T) {
	assert.True(t, SignedLess(neg(1), uint256.NewInt(0)))
	assert.False(t, SignedLess(uint256.NewInt(0), neg(1)))
	assert.True(t, SignedLess(neg(3), neg(2)))
	assert.True(t, SignedLess(uint256.NewInt(2), uint256.NewInt(3)))
	assert.False(t, SignedLess(uint256.NewInt(3), uint256.NewInt(3)))
}
