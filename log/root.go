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
	"log/slog"
	"os"
	"sync/atomic"
)

var root atomic.Pointer[Logger]

func init() {
	l := NewLogger(DiscardHandler())
	root.Store(&l)
}

// SetDefault replaces the root logger. When l is backed by a slog.Logger, the
// slog default is replaced too, so code logging through slog directly ends up
// in the same place.
//
// 设置全局默认日志器；同时替换 slog 的默认日志器，使直接使用 slog 的代码输出一致。
func SetDefault(l Logger) {
	root.Store(&l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return *root.Load()
}

// The package level functions call Write directly, which keeps the call depth
// equal to that of the logger methods and the recorded source position on the
// caller.

func Trace(msg string, ctx ...any) { Root().Write(LevelTrace, msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Write(LevelDebug, msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Write(LevelInfo, msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Write(LevelWarn, msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Write(LevelError, msg, ctx...) }

// Crit logs at LevelCrit on the root logger and exits the process.
func Crit(msg string, ctx ...any) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
