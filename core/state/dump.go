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
package state

import (
	"encoding/json"

	"github.com/sunyihoo/go-evm/common/hexutil"
)

// DumpAccount represents an account in the state.
type DumpAccount struct {
	Balance  string        `json:"balance"`
	Nonce    uint64        `json:"nonce"`
	CodeHash hexutil.Bytes `json:"codeHash"`
	Code     hexutil.Bytes `json:"code,omitempty"`
}

// Dump represents the full dump in a collected format, as one large map.
type Dump struct {
	Accounts map[string]DumpAccount `json:"accounts"`
}

// RawDump returns the state as a Dump, keyed by address text.
// 以地址文本为键导出全部账户，便于调试输出。
func (s *StateDB) RawDump() Dump {
	dump := Dump{Accounts: make(map[string]DumpAccount, len(s.stateObjects))}
	for key, obj := range s.stateObjects {
		dump.Accounts[key] = DumpAccount{
			Balance:  obj.balance.Dec(),
			Nonce:    obj.nonce,
			CodeHash: obj.codeHash.Bytes(),
			Code:     obj.code,
		}
	}
	return dump
}

// Dump returns a JSON string representing the entire state as a single json-object
func (s *StateDB) Dump() []byte {
	json, err := json.MarshalIndent(s.RawDump(), "", "    ")
	if err != nil {
		return nil
	}
	return json
}
