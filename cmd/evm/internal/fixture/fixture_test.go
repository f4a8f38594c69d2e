// Copyright 2025 The go-ethereum Authors
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

package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/sunyihoo/go-evm/core/vm"
)

func TestRunTestdata(t *testing.T) {
	fixtures, err := Load("testdata/tests.json")
	require.NoError(t, err)
	require.Len(t, fixtures, 10)

	in := vm.NewEVMInterpreter(vm.Config{})
	for _, f := range fixtures {
		t.Run(f.Name, func(t *testing.T) {
			res, err := f.Run(in)
			require.NoError(t, err)
			assert.Empty(t, f.Check(res))
		})
	}
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	src := `[{"name": "A", "code": {"bin": "00"}}, {"name": "A", "code": {"bin": "00"}}]`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, `duplicate name "A"`)
}

func TestCheckReportsMismatch(t *testing.T) {
	f := &Fixture{
		Name: "mismatch",
		Code: Code{Bin: "6001"},
		Expect: Expect{
			Stack:   []hexutil.U256{hexutil.U256(*uint256.NewInt(2))},
			Success: false,
		},
	}
	res, err := f.Run(vm.NewEVMInterpreter(vm.Config{}))
	require.NoError(t, err)

	diffs := f.Check(res)
	require.Len(t, diffs, 2)
	assert.Contains(t, diffs[0], "stack[0]")
	assert.Contains(t, diffs[1], "success")
}

func TestFixtureResetsStorage(t *testing.T) {
	in := vm.NewEVMInterpreter(vm.Config{})
	// PUSH1 0x2a, PUSH1 0, SSTORE
	store := &Fixture{Code: Code{Bin: "602a600055"}, Expect: Expect{Success: true}}
	_, err := store.Run(in)
	require.NoError(t, err)
	assert.Len(t, in.Storage(), 1)

	load := &Fixture{Code: Code{Bin: "600054"}}
	res, err := load.Run(in)
	require.NoError(t, err)
	require.Len(t, res.Stack, 1)
	assert.True(t, res.Stack[0].IsZero())
}

func TestCodeFallsBackToAssembly(t *testing.T) {
	c := &Code{Asm: "push 1\npush 2\nadd\n"}
	code, err := c.Bytes()
	require.NoError(t, err)
	assert.Equal(t, common.FromHex("6001600201"), code)

	c = &Code{Asm: "ignored", Bin: "0x00"}
	code, err = c.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, code)

	_, err = (&Code{Bin: "zz"}).Bytes()
	assert.Error(t, err)
}

func TestContextAbsentParts(t *testing.T) {
	ctx, err := (&Fixture{}).Context()
	require.NoError(t, err)
	assert.Nil(t, ctx.Tx)
	assert.Nil(t, ctx.Block)
	assert.Nil(t, ctx.State)

	_, err = (&Fixture{State: map[string]Account{"0xnothex": {}}}).Context()
	assert.Error(t, err)
}
