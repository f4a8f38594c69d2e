// Copyright 2021 The go-ethereum Authors
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

package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/vm"
)

func readLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), "line %q", sc.Text())
		out = append(out, m)
	}
	return out
}

func TestJSONLoggerSteps(t *testing.T) {
	var buf bytes.Buffer
	in := vm.NewEVMInterpreter(vm.Config{Tracer: NewJSONLogger(nil, &buf)})

	// PUSH1 1, PUSH1 2, ADD, STOP
	res, err := in.Run(common.FromHex("6001600201"+"00"), nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	lines := readLines(t, &buf)
	require.Len(t, lines, 5)

	wantOps := []string{"PUSH1", "PUSH1", "ADD", "STOP"}
	wantPcs := []float64{0, 2, 4, 5}
	for i, want := range wantOps {
		assert.Equal(t, want, lines[i]["opName"], "step %d", i)
		assert.Equal(t, wantPcs[i], lines[i]["pc"], "step %d", i)
	}
	// The stack is reported top first, before the instruction runs.
	assert.Equal(t, []any{"0x2", "0x1"}, lines[2]["stack"])
	assert.Equal(t, []any{"0x3"}, lines[3]["stack"])

	halt := lines[4]
	assert.Equal(t, float64(0), halt["exitCode"])
	assert.Equal(t, true, halt["success"])
}

func TestJSONLoggerFault(t *testing.T) {
	var buf bytes.Buffer
	in := vm.NewEVMInterpreter(vm.Config{Tracer: NewJSONLogger(&Config{DisableStack: true}, &buf)})

	// ADD on an empty stack
	_, err := in.Run([]byte{byte(vm.ADD)}, nil)
	require.Error(t, err)

	lines := readLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ADD", lines[0]["opName"])
	assert.Contains(t, lines[0]["error"], "stack underflow")
	assert.NotContains(t, lines[0], "stack")
}

func TestJSONLoggerMemoryAndReturnData(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{EnableMemory: true, EnableReturnData: true}
	in := vm.NewEVMInterpreter(vm.Config{Tracer: NewJSONLogger(cfg, &buf)})

	// PUSH1 0xff, PUSH1 0, MSTORE8, PUSH1 1, PUSH1 0, RETURN
	res, err := in.Run(common.FromHex("60ff60005360016000f3"), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff}, res.ReturnData)

	lines := readLines(t, &buf)
	require.Len(t, lines, 7)
	// RETURN sees the word written by MSTORE8.
	assert.Equal(t, float64(32), lines[5]["memSize"])
	assert.Contains(t, lines[5]["memory"], "0xff00")
	assert.Equal(t, "0xff", lines[6]["output"])
}
