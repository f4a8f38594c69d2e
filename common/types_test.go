// Copyright 2015 The go-ethereum Authors
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

package common

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressHexIsStateKey(t *testing.T) {
	// Test case 1: short input is left padded and printed in full lowercase.
	addr := HexToAddress("0x1000000000000000000000000000000000000AAA")
	assert.Equal(t, "0x1000000000000000000000000000000000000aaa", addr.Hex())

	// Test case 2: a word keeps only its low 20 bytes.
	w := new(uint256.Int).Lsh(uint256.NewInt(0xff), 200)
	w.Or(w, uint256.NewInt(0x1234))
	assert.Equal(t, "0x0000000000000000000000000000000000001234", WordToAddress(w).Hex())

	// Test case 3: address to word and back is lossless.
	assert.Equal(t, addr, WordToAddress(addr.Word()))
}

func TestAddressUnmarshalText(t *testing.T) {
	var a Address
	require.NoError(t, a.UnmarshalText([]byte("0x1000")))
	assert.Equal(t, "0x0000000000000000000000000000000000001000", a.Hex())

	err := a.UnmarshalText([]byte("0x" + "11111111111111111111111111111111111111111111"))
	assert.Error(t, err)
}

func TestAddressFormat(t *testing.T) {
	addr := HexToAddress("0xb0b0000000000000000000000000000000000000")
	assert.Equal(t, "0xb0b0000000000000000000000000000000000000", fmt.Sprintf("%v", addr))
	assert.Equal(t, "b0b0000000000000000000000000000000000000", fmt.Sprintf("%x", addr))
	assert.Equal(t, "0XB0B0000000000000000000000000000000000000", fmt.Sprintf("%#X", addr))
}

func TestFromHex(t *testing.T) {
	assert.Equal(t, []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}, FromHex("60 01 60 02 01 00"))
	assert.Equal(t, []byte{0x01}, FromHex("0x1"))
	assert.Equal(t, []byte{0, 0, 1}, LeftPadBytes([]byte{1}, 3))
	assert.Equal(t, []byte{1, 0, 0}, RightPadBytes([]byte{1}, 3))
}

func TestHashWord(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02})
	assert.Equal(t, uint256.NewInt(0x0102), h.Word())
	assert.Equal(t, 0, h.Cmp(BytesToHash([]byte{0x01, 0x02})))
}
