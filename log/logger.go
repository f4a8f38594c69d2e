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

// Package log is a structured logger on top of log/slog with the level names,
// terminal layout and verbosity controls used across the interpreter and the
// evm command.
//
// 基于 log/slog 的结构化日志：提供级别名称、终端布局和详细度控制。
package log

import (
	"context"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"
)

const errorKey = "LOG_ERROR"

// Levels beyond the slog defaults. LevelTrace carries the per-instruction
// output of the interpreter.
const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12

	// levelMaxVerbosity lets a handler pass every record.
	levelMaxVerbosity slog.Level = math.MinInt
)

// levels lists the named levels by legacy verbosity, so that --verbosity 0
// is LevelCrit and 5 is LevelTrace.
//
// 按旧的数字详细度排列：下标 0 为 crit，5 为 trace。
var levels = [...]struct {
	level   slog.Level
	name    string
	aligned string
}{
	{LevelCrit, "crit", "CRIT "},
	{LevelError, "error", "ERROR"},
	{LevelWarn, "warn", "WARN "},
	{LevelInfo, "info", "INFO "},
	{LevelDebug, "debug", "DEBUG"},
	{LevelTrace, "trace", "TRACE"},
}

// FromLegacyLevel converts a numeric verbosity to a slog level. Values past
// either end are clamped.
func FromLegacyLevel(lvl int) slog.Level {
	return levels[max(0, min(lvl, len(levels)-1))].level
}

// LevelAlignedString returns the 5 character upper case name of l, as shown
// by the terminal handler.
func LevelAlignedString(l slog.Level) string {
	for _, e := range levels {
		if e.level == l {
			return e.aligned
		}
	}
	return "unknown level"
}

// LevelString returns the lower case name of l.
func LevelString(l slog.Level) string {
	for _, e := range levels {
		if e.level == l {
			return e.name
		}
	}
	return "unknown"
}

// Logger writes leveled messages with alternating key/value context.
type Logger interface {
	// With returns a Logger that adds ctx to every record.
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// Crit logs at LevelCrit and terminates the process.
	Crit(msg string, ctx ...any)

	// Write logs at an arbitrary level. The source position recorded is
	// that of the caller's caller, which makes it usable from wrappers.
	Write(level slog.Level, msg string, ctx ...any)

	Enabled(ctx context.Context, level slog.Level) bool
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a Logger writing to h.
func NewLogger(h slog.Handler) Logger {
	return &logger{inner: slog.New(h)}
}

func (l *logger) Handler() slog.Handler { return l.inner.Handler() }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) With(ctx ...any) Logger { return &logger{inner: l.inner.With(ctx...)} }

func (l *logger) Write(level slog.Level, msg string, ctx ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // Callers, Write, the level method

	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(ctx...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Trace(msg string, ctx ...any) { l.Write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.Write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.Write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.Write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.Write(LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
