// Copyright 2014 The go-ethereum Authors
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

// Package types holds the records produced by program execution.
package types

import (
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/common/hexutil"
)

// Log represents a contract log event. These events are generated by the LOG
// opcode. Only the most recent one of a run is kept.
// Log 表示 LOG 指令产生的事件；每次执行只保留最后一条。
type Log struct {
	// address of the contract that generated the event
	Address common.Address `json:"address"`
	// list of topics provided by the contract.
	Topics []common.Hash `json:"topics"`
	// supplied by the contract, usually ABI-encoded
	Data hexutil.Bytes `json:"data"`
}

// Copy returns a deep copy of the log record.
func (l *Log) Copy() *Log {
	if l == nil {
		return nil
	}
	cpy := &Log{
		Address: l.Address,
		Topics:  make([]common.Hash, len(l.Topics)),
		Data:    common.CopyBytes(l.Data),
	}
	copy(cpy.Topics, l.Topics)
	return cpy
}
