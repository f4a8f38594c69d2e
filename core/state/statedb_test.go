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


package state

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/crypto"
)

func TestNormalizeAddress(t *testing.T) {
	want := "0x00000000000000000000000000000000000000ff"
	for _, in := range []string{"0xff", "ff", "0xFF", "0x00000000000000000000000000000000000000FF"} {
		got, err := NormalizeAddress(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := NormalizeAddress("0xzz")
	assert.Error(t, err)
}

func TestAccountReads(t *testing.T) {
	var (
		s     = New()
		addr  = common.HexToAddress("0x1234")
		other = common.HexToAddress("0x5678")
		key   = addr.Hex()
	)
	assert.False(t, s.Exist(key))
	assert.True(t, s.GetBalance(key).IsZero())
	assert.Nil(t, s.GetCode(key))
	assert.Equal(t, common.Hash{}, s.GetCodeHash(key))

	s.CreateAccount(addr)
	assert.True(t, s.Exist(key))
	assert.True(t, s.GetBalance(key).IsZero())
	assert.Equal(t, crypto.EmptyCodeHash, s.GetCodeHash(key))

	s.SetBalance(addr, uint256.NewInt(15))
	s.SetNonce(addr, 3)
	s.SetCode(addr, []byte{0x60, 0x01})
	assert.Equal(t, uint64(15), s.GetBalance(key).Uint64())
	assert.Equal(t, uint64(3), s.GetNonce(key))
	assert.Equal(t, 2, s.GetCodeSize(key))
	assert.Equal(t, crypto.Keccak256Hash([]byte{0x60, 0x01}), s.GetCodeHash(key))

	// Writes to other accounts create them.
	s.SetNonce(other, 1)
	assert.True(t, s.Exist(other.Hex()))
	assert.Equal(t, 2, s.Len())
}

func TestBalanceIsCopied(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x01")
	amount := uint256.NewInt(7)
	s.SetBalance(addr, amount)
	amount.SetUint64(8)
	s.GetBalance(addr.Hex()).SetUint64(9)
	assert.Equal(t, uint64(7), s.GetBalance(addr.Hex()).Uint64())
}

func TestCopy(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x01")
	s.SetBalance(addr, uint256.NewInt(1))

	cpy := s.Copy()
	s.SetBalance(addr, uint256.NewInt(2))
	s.SetCode(common.HexToAddress("0x02"), []byte{0x00})

	assert.Equal(t, uint64(1), cpy.GetBalance(addr.Hex()).Uint64())
	assert.Equal(t, 1, cpy.Len())
}

func TestDump(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x01")
	s.SetBalance(addr, uint256.NewInt(1000))
	s.SetCode(addr, []byte{0x00})

	var dump Dump
	require.NoError(t, json.Unmarshal(s.Dump(), &dump))
	require.Contains(t, dump.Accounts, addr.Hex())
	acc := dump.Accounts[addr.Hex()]
	assert.Equal(t, "1000", acc.Balance)
	assert.Equal(t, []byte{0x00}, []byte(acc.Code))
	assert.Equal(t, crypto.Keccak256([]byte{0x00}), []byte(acc.CodeHash))
}
