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

package types

import (
	"encoding/json"
	"testing"

	"github.com/sunyihoo/go-evm/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCopyIsDeep(t *testing.T) {
	orig := &Log{
		Address: common.HexToAddress("0x1000000000000000000000000000000000000001"),
		Topics:  []common.Hash{common.BytesToHash([]byte{1})},
		Data:    []byte{0xaa},
	}
	cpy := orig.Copy()
	assert.Equal(t, orig, cpy)

	cpy.Data[0] = 0xbb
	cpy.Topics[0] = common.Hash{}
	assert.Equal(t, byte(0xaa), orig.Data[0])
	assert.Equal(t, common.BytesToHash([]byte{1}), orig.Topics[0])

	var nilLog *Log
	assert.Nil(t, nilLog.Copy())
}

func TestLogJSON(t *testing.T) {
	l := &Log{
		Address: common.HexToAddress("0x1000000000000000000000000000000000000001"),
		Topics:  []common.Hash{},
		Data:    []byte{0xaa, 0xbb},
	}
	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"0x1000000000000000000000000000000000000001","topics":[],"data":"0xaabb"}`, string(out))
}
