// Copyright 2023 The go-ethereum Authors
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

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestWriteTimeTermFormat(t *testing.T) {
	b := new(bytes.Buffer)
	writeTimeTermFormat(b, time.Date(2024, time.March, 7, 9, 5, 3, 42e6, time.UTC))
	assert.Equal(t, "03-07|09:05:03.042", b.String())
}

func TestTerminalHandlerWords(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))

	big := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	l.Info("Execution halted", "pc", 5, "top", uint256.NewInt(1234567), "word", big, "ret", []byte{0xde, 0xad})

	have := out.String()
	assert.True(t, strings.HasPrefix(have, "INFO ["), have)
	assert.Contains(t, have, "logger_test.go:")
	assert.Contains(t, have, "Execution halted")
	assert.Contains(t, have, "top=1,234,567")
	assert.Contains(t, have, "word=0x8000000000000000000000000000000000000000000000000000000000000000")
	assert.Contains(t, have, "ret=0xdead")
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, slog.LevelWarn, false))
	l.Info("dropped")
	assert.Empty(t, out.String())
	l.Warn("kept", "offset", 40)
	assert.Contains(t, out.String(), "WARN ")
	assert.Contains(t, out.String(), "offset=40")
}

func TestGlogVerbosity(t *testing.T) {
	out := new(bytes.Buffer)
	glog := NewGlogHandler(NewTerminalHandler(out, false))
	glog.Verbosity(FromLegacyLevel(2))
	l := NewLogger(glog)

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")

	assert.NoError(t, glog.Vmodule("logger_test.go=5"))
	l.Trace("traced")
	assert.Contains(t, out.String(), "traced")

	assert.Equal(t, errVmoduleSyntax, glog.Vmodule("broken"))
}

func TestLogfmtReplace(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(LogfmtHandlerWithLevel(out, LevelTrace))
	l.Debug("stored", "key", uint256.NewInt(7), "code", []byte{0x60, 0x01})
	assert.Contains(t, out.String(), "lvl=debug")
	assert.Contains(t, out.String(), "key=7")
	assert.Contains(t, out.String(), "code=0x6001")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}
