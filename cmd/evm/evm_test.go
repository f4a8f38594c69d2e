// Copyright 2017 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evm/cmd/evm/internal/fixture"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/vm"
)

var matchAll = regexp.MustCompile(".*")

func TestRunFixtures(t *testing.T) {
	fixtures, err := fixture.Load(filepath.Join("internal", "fixture", "testdata", "tests.json"))
	require.NoError(t, err)

	var out bytes.Buffer
	failed := runFixtures(&out, vm.NewEVMInterpreter(vm.Config{}), fixtures, matchAll, false)
	assert.Zero(t, failed, out.String())
	assert.Contains(t, out.String(), "Test 1 of 10: ADD\nPASS\n")
	assert.Contains(t, out.String(), "All fixtures passed.")
}

func TestRunFixturesParallel(t *testing.T) {
	fixtures, err := fixture.Load(filepath.Join("internal", "fixture", "testdata", "tests.json"))
	require.NoError(t, err)

	var sequential, parallel bytes.Buffer
	runFixtures(&sequential, vm.NewEVMInterpreter(vm.Config{}), fixtures, matchAll, true)

	newInterpreter := func() *vm.EVMInterpreter { return vm.NewEVMInterpreter(vm.Config{}) }
	failed := runFixturesParallel(&parallel, newInterpreter, 4, fixtures, matchAll, true)
	assert.Zero(t, failed, parallel.String())
	assert.Equal(t, sequential.String(), parallel.String())
}

func TestRunFixturesStopsAtFailure(t *testing.T) {
	fixtures := []*fixture.Fixture{
		{Name: "bad", Hint: "expects the wrong outcome", Code: fixture.Code{Bin: "00"}},
		{Name: "good", Code: fixture.Code{Bin: "00"}, Expect: fixture.Expect{Success: true}},
	}
	in := vm.NewEVMInterpreter(vm.Config{})

	var out bytes.Buffer
	assert.Equal(t, 1, runFixtures(&out, in, fixtures, matchAll, false))
	assert.Contains(t, out.String(), "Hint: expects the wrong outcome")
	assert.NotContains(t, out.String(), "good")

	out.Reset()
	assert.Equal(t, 1, runFixtures(&out, in, fixtures, matchAll, true))
	assert.Contains(t, out.String(), "Test 2 of 2: good\nPASS")

	out.Reset()
	assert.Zero(t, runFixtures(&out, in, fixtures, regexp.MustCompile("^good$"), false))
}

func TestRunFixturesReportsAbort(t *testing.T) {
	// ADD on an empty stack aborts the run.
	fixtures := []*fixture.Fixture{{Name: "underflow", Code: fixture.Code{Bin: "01"}}}

	var out bytes.Buffer
	assert.Equal(t, 1, runFixtures(&out, vm.NewEVMInterpreter(vm.Config{}), fixtures, matchAll, false))
	assert.Contains(t, out.String(), "FAIL: stack underflow")
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "evm.toml")
	content := `[VM]
StrictPushData = true
MaxMemory = 4096

[Env]
Sender = "0x1000000000000000000000000000000000000001"
ChainID = "0x5"
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg := evmConfig{VM: vmConfig{AnalysisCacheSize: vm.DefaultAnalysisCacheSize}}
	require.NoError(t, loadConfig(file, &cfg))
	assert.True(t, cfg.VM.StrictPushData)
	assert.Equal(t, uint64(4096), cfg.VM.MaxMemory)
	assert.Equal(t, vm.DefaultAnalysisCacheSize, cfg.VM.AnalysisCacheSize)
	require.NotNil(t, cfg.Env.Sender)
	assert.Equal(t, common.HexToAddress("0x1000000000000000000000000000000000000001"), *cfg.Env.Sender)
	require.NotNil(t, cfg.Env.ChainID)
	assert.Equal(t, uint64(5), cfg.Env.ChainID.ToInt().Uint64())
	assert.Nil(t, cfg.Env.Receiver)
}

func TestLoadConfigUnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "evm.toml")
	require.NoError(t, os.WriteFile(file, []byte("[VM]\nGasLimit = 1\n"), 0644))

	var cfg evmConfig
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'GasLimit' is not defined")
}

func TestCompile(t *testing.T) {
	bin, err := compile("push 1\npush 2\nadd\n", false)
	require.NoError(t, err)
	assert.Equal(t, "6001600201", bin)

	_, err = compile("push\n", false)
	assert.Error(t, err)
}
