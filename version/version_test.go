// Copyright 2016 The go-ethereum Authors
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


package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVCS(t *testing.T) {
	vcs, ok := parseVCS([]debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "vcs.time", Value: "2025-02-10T18:58:17Z"},
		{Key: "vcs.modified", Value: "true"},
	})
	assert.True(t, ok)
	assert.Equal(t, VCSInfo{Commit: "0123456789abcdef0123456789abcdef01234567", Date: "20250210", Dirty: true}, vcs)
	assert.Equal(t, "0.3.0-unstable-01234567-20250210-dirty", vcs.String())

	_, ok = parseVCS([]debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}})
	assert.False(t, ok)

	assert.Equal(t, "0.3.0-unstable", VCSInfo{}.String())
}
