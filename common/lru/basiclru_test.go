// Copyright 2022 The go-ethereum Authors
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

package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicLRUEviction(t *testing.T) {
	cache := NewBasicLRU[int, []uint64](2)

	assert.False(t, cache.Add(1, []uint64{1}))
	assert.False(t, cache.Add(2, []uint64{2}))

	// Touch 1 so that 2 becomes the eviction candidate.
	v, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, []uint64{1}, v)

	assert.True(t, cache.Add(3, []uint64{3}), "adding past capacity should evict")
	assert.False(t, cache.Contains(2))
	assert.True(t, cache.Contains(1))
	assert.True(t, cache.Contains(3))
	assert.Equal(t, 2, cache.Len())

	// 1 is now the oldest entry.
	assert.True(t, cache.Add(4, []uint64{4}))
	assert.False(t, cache.Contains(1))
	assert.True(t, cache.Contains(3))
}

func TestBasicLRUUpdate(t *testing.T) {
	cache := NewBasicLRU[string, int](4)
	cache.Add("a", 1)
	cache.Add("a", 2)
	v, _ := cache.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, cache.Len())

	_, ok := cache.Get("b")
	assert.False(t, ok)
}
