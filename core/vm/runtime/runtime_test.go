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


package runtime

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/state"
	"github.com/sunyihoo/go-evm/core/vm"
)

func TestDefaults(t *testing.T) {
	cfg := new(Config)
	setDefaults(cfg)

	require.NotNil(t, cfg.Caller)
	assert.Equal(t, cfg.Origin, *cfg.Caller)
	require.NotNil(t, cfg.Address)
	assert.Equal(t, common.Address{}, *cfg.Address)
	for name, v := range map[string]*uint256.Int{
		"GasLimit":    cfg.GasLimit,
		"ChainID":     cfg.ChainID,
		"BlockNumber": cfg.BlockNumber,
		"Time":        cfg.Time,
		"Difficulty":  cfg.Difficulty,
		"GasPrice":    cfg.GasPrice,
		"Value":       cfg.Value,
		"BaseFee":     cfg.BaseFee,
	} {
		require.NotNil(t, v, name)
		assert.True(t, v.IsZero(), name)
	}
	assert.NotNil(t, cfg.State)
	assert.NotNil(t, cfg.Interpreter)
}

func TestExecute(t *testing.T) {
	res, _, err := Execute(common.FromHex("600160020100"), nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Stack, 1)
	assert.Equal(t, uint64(3), res.Stack[0].Uint64())
}

func TestExecuteZeroContext(t *testing.T) {
	// CHAINID GASLIMIT ADDRESS STOP
	res, _, err := Execute([]byte{0x46, 0x45, 0x30, 0x00}, nil, nil)
	require.NoError(t, err)
	require.Len(t, res.Stack, 3)
	for i := range res.Stack {
		assert.True(t, res.Stack[i].IsZero(), "stack[%d] = %s", i, res.Stack[i].Hex())
	}
}

func TestExecuteAborts(t *testing.T) {
	res, st, err := Execute([]byte{byte(vm.ADD)}, nil, nil)
	assert.Nil(t, res)
	assert.NotNil(t, st)
	assert.ErrorContains(t, err, "stack underflow")
}

func TestExecuteContext(t *testing.T) {
	origin := common.HexToAddress("0xaa")
	cfg := &Config{
		Origin:  origin,
		ChainID: uint256.NewInt(5),
		Value:   uint256.NewInt(9),
	}
	// CALLER ORIGIN CHAINID CALLVALUE CALLDATASIZE, then EXTCODESIZE of ADDRESS
	res, _, err := Execute(common.FromHex("3332463436303b"), []byte{1, 2, 3}, cfg)
	require.NoError(t, err)
	require.Len(t, res.Stack, 6)
	assert.Equal(t, uint64(7), res.Stack[0].Uint64(), "code is installed at the address")
	assert.Equal(t, uint64(3), res.Stack[1].Uint64())
	assert.Equal(t, uint64(9), res.Stack[2].Uint64())
	assert.Equal(t, uint64(5), res.Stack[3].Uint64())
	assert.Equal(t, origin.Word(), &res.Stack[4])
	assert.Equal(t, origin.Word(), &res.Stack[5])
}

func TestCall(t *testing.T) {
	st := state.New()
	addr := common.HexToAddress("0x10")
	st.SetCode(addr, common.FromHex("600035600101"))
	st.SetBalance(addr, uint256.NewInt(50))

	cfg := &Config{State: st}
	res, err := Call(addr, common.FromHex("0x"+"00000000000000000000000000000000000000000000000000000000000000a0"), cfg)
	require.NoError(t, err)
	require.Len(t, res.Stack, 1)
	assert.Equal(t, uint64(0xa1), res.Stack[0].Uint64())

	// SELFBALANCE sees the account the call runs at.
	st.SetCode(addr, []byte{byte(vm.SELFBALANCE)})
	res, err = Call(addr, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), res.Stack[0].Uint64())

	// An address without code succeeds with nothing on the stack.
	res, err = Call(common.HexToAddress("0x11"), nil, cfg)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Stack)
}

func TestStoragePersistsAcrossCalls(t *testing.T) {
	cfg := new(Config)
	_, _, err := Execute(common.FromHex("602a600755"), nil, cfg)
	require.NoError(t, err)

	res, _, err := Execute(common.FromHex("600754"), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), res.Stack[0].Uint64())
}
