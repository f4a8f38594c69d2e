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

package crypto

import (
	"sync"
	"testing"

	"github.com/sunyihoo/go-evm/common"
	"github.com/stretchr/testify/assert"
)

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp := common.FromHex("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	assert.Equal(t, exp, Keccak256(msg))
	assert.Equal(t, common.BytesToHash(exp), Keccak256Hash(msg))
	assert.Equal(t, common.BytesToHash(exp), HashData(NewKeccakState(), msg))
}

func TestEmptyCodeHash(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", EmptyCodeHash.Hex())
}

func TestHashDataReusesState(t *testing.T) {
	kh := NewKeccakState()
	first := HashData(kh, []byte("first"))
	_ = HashData(kh, []byte("second"))
	assert.Equal(t, first, HashData(kh, []byte("first")))
}

func TestKeccakFourBytes(t *testing.T) {
	// keccak256(0xffffffff)
	got := Keccak256Hash([]byte{0xff, 0xff, 0xff, 0xff})
	assert.Equal(t, "0x29045a592007d0c246ef02c2223570da9522d0cf0f73282c79a1bc8f0bb2c238", got.Hex())
}

func TestKeccak256HashConcurrent(t *testing.T) {
	want := Keccak256Hash([]byte("abc"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, Keccak256Hash([]byte("a"), []byte("bc")))
			}
		}()
	}
	wg.Wait()
}
