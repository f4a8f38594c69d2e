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
// Package state provides the in-memory account state the interpreter reads
// through its context opcodes.
package state

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/vm"
)

var _ vm.StateDB = (*StateDB)(nil)

// StateDB is a flat, in-memory account map. Writes go through typed
// addresses; reads are keyed by address text as vm.StateDB requires, so
// callers that hold a formatted key never have to parse it back.
//
// StateDB 以地址文本（0x 加 40 位小写十六进制）为键保存账户。写入使用类型化地址，
// 读取使用文本键，与解释器格式化地址的方式一致。
type StateDB struct {
	stateObjects map[string]*stateObject
}

// New creates an empty state.
func New() *StateDB {
	return &StateDB{stateObjects: make(map[string]*stateObject)}
}

// NormalizeAddress converts an address given as hex text, with or without a
// 0x prefix, in any case and possibly shorter than 20 bytes, into the key
// form used by the state.
func NormalizeAddress(s string) (string, error) {
	var addr common.Address
	if err := addr.UnmarshalText([]byte(s)); err != nil {
		return "", fmt.Errorf("invalid address %q: %w", s, err)
	}
	return addr.Hex(), nil
}

func (s *StateDB) getStateObject(key string) *stateObject {
	return s.stateObjects[key]
}

// getOrNewStateObject retrieves the account at addr, creating it if needed.
func (s *StateDB) getOrNewStateObject(addr common.Address) *stateObject {
	key := addr.Hex()
	obj := s.stateObjects[key]
	if obj == nil {
		obj = newObject(addr)
		s.stateObjects[key] = obj
	}
	return obj
}

// CreateAccount explicitly creates a new, empty account. An existing account
// at addr is replaced.
func (s *StateDB) CreateAccount(addr common.Address) {
	s.stateObjects[addr.Hex()] = newObject(addr)
}

// SetBalance sets the balance of the account, creating it if needed.
func (s *StateDB) SetBalance(addr common.Address, amount *uint256.Int) {
	s.getOrNewStateObject(addr).balance = new(uint256.Int).Set(amount)
}

// SetNonce sets the nonce of the account, creating it if needed.
func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	s.getOrNewStateObject(addr).nonce = nonce
}

// SetCode sets the code of the account, creating it if needed.
func (s *StateDB) SetCode(addr common.Address, code []byte) {
	s.getOrNewStateObject(addr).setCode(code)
}

// Exist reports whether the given account exists in state.
// Notably this also returns true for empty accounts.
func (s *StateDB) Exist(key string) bool {
	return s.getStateObject(key) != nil
}

// GetBalance retrieves the balance from the given address or 0 if object not found
func (s *StateDB) GetBalance(key string) *uint256.Int {
	if obj := s.getStateObject(key); obj != nil {
		return new(uint256.Int).Set(obj.balance)
	}
	return new(uint256.Int)
}

// GetNonce retrieves the nonce from the given address or 0 if object not found
func (s *StateDB) GetNonce(key string) uint64 {
	if obj := s.getStateObject(key); obj != nil {
		return obj.nonce
	}
	return 0
}

// GetCode returns the code of the account, nil if it does not exist.
func (s *StateDB) GetCode(key string) []byte {
	if obj := s.getStateObject(key); obj != nil {
		return obj.code
	}
	return nil
}

func (s *StateDB) GetCodeSize(key string) int {
	return len(s.GetCode(key))
}

// GetCodeHash returns the hash of the account code. Accounts without code
// hash to the empty code hash; accounts that do not exist to zero.
func (s *StateDB) GetCodeHash(key string) common.Hash {
	if obj := s.getStateObject(key); obj != nil {
		return obj.codeHash
	}
	return common.Hash{}
}

// Len returns the number of accounts.
func (s *StateDB) Len() int {
	return len(s.stateObjects)
}

// Copy creates a deep, independent copy of the state.
func (s *StateDB) Copy() *StateDB {
	cpy := New()
	for key, obj := range s.stateObjects {
		cpy.stateObjects[key] = obj.deepCopy()
	}
	return cpy
}
