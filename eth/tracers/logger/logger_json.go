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

package logger

import (
	"encoding/json"
	"io"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/sunyihoo/go-evm/core/tracing"
	"github.com/sunyihoo/go-evm/core/vm"
)

// Config are the configuration options for structured logger the EVM
type Config struct {
	EnableMemory     bool // enable memory capture
	DisableStack     bool // disable stack capture
	EnableReturnData bool // enable return data capture
}

// StructLog is emitted to the writer for each step of the interpreter.
// 每执行一条指令输出一行 StructLog。
type StructLog struct {
	Pc         uint64         `json:"pc"`
	Op         vm.OpCode      `json:"op"`
	OpName     string         `json:"opName"`
	Stack      []hexutil.U256 `json:"stack,omitempty"`
	Memory     hexutil.Bytes  `json:"memory,omitempty"`
	MemorySize int            `json:"memSize"`
	Err        string         `json:"error,omitempty"`
}

// haltLog is the final line written when a run finishes.
type haltLog struct {
	Pc       uint64        `json:"pc"`
	ExitCode uint8         `json:"exitCode"`
	Success  bool          `json:"success"`
	Output   hexutil.Bytes `json:"output,omitempty"`
}

type jsonLogger struct {
	encoder *json.Encoder
	cfg     *Config
	err     error
}

// NewJSONLogger creates a new EVM tracer that prints execution steps as JSON objects
// into the provided stream.
// NewJSONLogger 返回以 JSON 行的形式输出每一步执行状态的追踪钩子。
func NewJSONLogger(cfg *Config, writer io.Writer) *tracing.Hooks {
	l := &jsonLogger{encoder: json.NewEncoder(writer), cfg: cfg}
	if l.cfg == nil {
		l.cfg = &Config{}
	}
	return &tracing.Hooks{
		OnOpcode: l.OnOpcode,
		OnFault:  l.OnFault,
		OnHalt:   l.OnHalt,
	}
}

func (l *jsonLogger) OnFault(pc uint64, op byte, scope tracing.OpContext, err error) {
	l.OnOpcode(pc, op, scope, err)
}

func (l *jsonLogger) OnOpcode(pc uint64, op byte, scope tracing.OpContext, err error) {
	memory := scope.MemoryData()
	log := StructLog{
		Pc:         pc,
		Op:         vm.OpCode(op),
		OpName:     vm.OpCode(op).String(),
		MemorySize: len(memory),
	}
	if l.cfg.EnableMemory {
		log.Memory = memory
	}
	if !l.cfg.DisableStack {
		log.Stack = stackTopFirst(scope.StackData())
	}
	if err != nil {
		log.Err = err.Error()
	}
	l.write(log)
}

func (l *jsonLogger) OnHalt(pc uint64, exitCode uint8, output []byte) {
	h := haltLog{Pc: pc, ExitCode: exitCode, Success: exitCode == 0}
	if l.cfg.EnableReturnData {
		h.Output = output
	}
	l.write(h)
}

// write keeps the first encoding error and drops all output after it.
func (l *jsonLogger) write(v any) {
	if l.err != nil {
		return
	}
	l.err = l.encoder.Encode(v)
}

func stackTopFirst(data []uint256.Int) []hexutil.U256 {
	out := make([]hexutil.U256, len(data))
	for i := range data {
		out[len(data)-1-i] = hexutil.U256(data[i])
	}
	return out
}
