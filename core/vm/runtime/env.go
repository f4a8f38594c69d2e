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
package runtime

import (
	"github.com/sunyihoo/go-evm/core/vm"
)

// NewEnv builds the execution context for a run from the configuration.
func NewEnv(cfg *Config, input []byte) *vm.Context {
	origin, coinbase := cfg.Origin, cfg.Coinbase
	return &vm.Context{
		Tx: &vm.TxContext{
			From:     cfg.Caller,
			To:       cfg.Address,
			Origin:   &origin,
			GasPrice: cfg.GasPrice,
			Value:    cfg.Value,
			Data:     input,
		},
		Block: &vm.BlockContext{
			Coinbase:   &coinbase,
			Timestamp:  cfg.Time,
			Number:     cfg.BlockNumber,
			Difficulty: cfg.Difficulty,
			GasLimit:   cfg.GasLimit,
			ChainID:    cfg.ChainID,
			BaseFee:    cfg.BaseFee,
		},
		State: cfg.State,
	}
}
