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
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/crypto"
)

// stateObject represents an account known to the state.
// stateObject 表示状态中的一个账户。
type stateObject struct {
	address  common.Address
	nonce    uint64
	balance  *uint256.Int
	code     []byte
	codeHash common.Hash
}

func newObject(address common.Address) *stateObject {
	return &stateObject{
		address:  address,
		balance:  new(uint256.Int),
		codeHash: crypto.EmptyCodeHash,
	}
}

func (s *stateObject) setCode(code []byte) {
	s.code = common.CopyBytes(code)
	s.codeHash = crypto.Keccak256Hash(code)
}

func (s *stateObject) deepCopy() *stateObject {
	return &stateObject{
		address:  s.address,
		nonce:    s.nonce,
		balance:  new(uint256.Int).Set(s.balance),
		code:     s.code,
		codeHash: s.codeHash,
	}
}
