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
// Package runtime provides a one-shot way of executing code with defaults
// filled in for every piece of context.
package runtime

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/state"
	"github.com/sunyihoo/go-evm/core/vm"
)

// Config is a basic type specifying certain configuration flags for running
// the EVM.
// Config 是一个基本类型，指定运行 EVM 的某些配置标志。
type Config struct {
	Origin      common.Address // tx.origin, also the caller unless Caller is set
	Caller      *common.Address
	Address     *common.Address // address the code runs at
	Coinbase    common.Address
	BlockNumber *uint256.Int
	Time        *uint256.Int
	Difficulty  *uint256.Int
	GasLimit    *uint256.Int
	GasPrice    *uint256.Int
	Value       *uint256.Int
	ChainID     *uint256.Int
	BaseFee     *uint256.Int
	EVMConfig   vm.Config

	State       *state.StateDB
	Interpreter *vm.EVMInterpreter // reused across calls when set, keeping its storage
}

// setDefaults fills the unset fields of the config. Every absent context
// value resolves to zero, the same as a nil field of vm.Context.
func setDefaults(cfg *Config) {
	if cfg.Caller == nil {
		caller := cfg.Origin
		cfg.Caller = &caller
	}
	if cfg.Address == nil {
		cfg.Address = new(common.Address)
	}
	if cfg.BlockNumber == nil {
		cfg.BlockNumber = new(uint256.Int)
	}
	if cfg.Time == nil {
		cfg.Time = new(uint256.Int)
	}
	if cfg.Difficulty == nil {
		cfg.Difficulty = new(uint256.Int)
	}
	if cfg.GasLimit == nil {
		cfg.GasLimit = new(uint256.Int)
	}
	if cfg.GasPrice == nil {
		cfg.GasPrice = new(uint256.Int)
	}
	if cfg.Value == nil {
		cfg.Value = new(uint256.Int)
	}
	if cfg.ChainID == nil {
		cfg.ChainID = new(uint256.Int)
	}
	if cfg.BaseFee == nil {
		cfg.BaseFee = new(uint256.Int)
	}
	if cfg.State == nil {
		cfg.State = state.New()
	}
	if cfg.Interpreter == nil {
		cfg.Interpreter = vm.NewEVMInterpreter(cfg.EVMConfig)
	}
}

// Execute executes the code using the input as call data during the execution.
// It returns the execution result, the state and an error if the run aborted.
//
// Execute sets up an in-memory, temporary, environment for the execution of
// the given code: the code is installed at the configured address before it
// runs, so EXTCODE* on that address sees it.
//
// Execute 为代码执行搭建临时的内存环境，并在执行前把代码安装到配置的地址上。
func Execute(code, input []byte, cfg *Config) (*vm.ExecutionResult, *state.StateDB, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	cfg.State.SetCode(*cfg.Address, code)
	res, err := cfg.Interpreter.Run(code, NewEnv(cfg, input))
	if err != nil {
		return nil, cfg.State, fmt.Errorf("execution aborted: %w", err)
	}
	return res, cfg.State, nil
}

// Call executes the code stored at the given address in the configured
// state. An address without code runs off the end immediately and succeeds.
func Call(address common.Address, input []byte, cfg *Config) (*vm.ExecutionResult, error) {
	setDefaults(cfg)
	cfg.Address = &address

	code := cfg.State.GetCode(address.Hex())
	res, err := cfg.Interpreter.Run(code, NewEnv(cfg, input))
	if err != nil {
		return nil, fmt.Errorf("call to %s aborted: %w", address, err)
	}
	return res, nil
}
