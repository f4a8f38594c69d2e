// Copyright 2017 The go-ethereum Authors
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
	"context"
	"errors"
	"log/slog"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// errVmoduleSyntax is returned when a user vmodule pattern is invalid.
var errVmoduleSyntax = errors.New("expect comma-separated list of filename=N")

// GlogHandler filters records the way Google's glog does: a global verbosity
// ceiling that individual source files can raise through vmodule rules.
//
// GlogHandler 模仿 glog 的过滤：全局级别加按文件模式覆盖的级别，例如
// --log.vmodule=core/vm/*=5 只放开解释器的 trace 日志。
type GlogHandler struct {
	origin  slog.Handler
	filters *glogFilters // shared by every handler derived via WithAttrs/WithGroup
}

// glogFilters is the mutable filter state behind a GlogHandler.
type glogFilters struct {
	level atomic.Int32
	rules atomic.Pointer[vmoduleRules]
}

// vmoduleRules is an immutable rule set together with the levels already
// resolved for individual call sites. Replacing the rules drops the cache.
type vmoduleRules struct {
	patterns []vmodulePattern
	sites    sync.Map // uintptr -> slog.Level
}

type vmodulePattern struct {
	file  *regexp.Regexp
	level slog.Level
}

// NewGlogHandler wraps h with verbosity filtering. Until Verbosity is called
// only records at LevelInfo and above pass.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	f := new(glogFilters)
	f.level.Store(int32(slog.LevelInfo))
	return &GlogHandler{origin: h, filters: f}
}

// Verbosity sets the global verbosity ceiling.
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.filters.level.Store(int32(level))
}

// Vmodule replaces the per-file verbosity rules. The argument is a comma
// separated list of pattern=N where N is a legacy verbosity (0-5) and the
// pattern is matched against the path of the source file that logged:
//
//	interpreter.go=5   files named interpreter.go
//	vm=5               files in any package whose import path ends in vm
//	core/vm/*=5        files anywhere below core/vm
//
// An empty ruleset removes all overrides.
func (h *GlogHandler) Vmodule(ruleset string) error {
	patterns, err := parseVmodule(ruleset)
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		h.filters.rules.Store(nil)
		return nil
	}
	h.filters.rules.Store(&vmoduleRules{patterns: patterns})
	return nil
}

func parseVmodule(ruleset string) ([]vmodulePattern, error) {
	var patterns []vmodulePattern
	for _, rule := range strings.Split(ruleset, ",") {
		if rule == "" {
			continue
		}
		glob, lvl, found := strings.Cut(rule, "=")
		glob, lvl = strings.TrimSpace(glob), strings.TrimSpace(lvl)
		if !found || glob == "" || lvl == "" || strings.Contains(lvl, "=") {
			return nil, errVmoduleSyntax
		}
		n, err := strconv.Atoi(lvl)
		if err != nil {
			return nil, errVmoduleSyntax
		}
		level := FromLegacyLevel(n)
		if level == LevelCrit {
			continue // 0 never lowers anything below the global ceiling
		}
		patterns = append(patterns, vmodulePattern{file: globToRegexp(glob), level: level})
	}
	return patterns, nil
}

// globToRegexp turns a vmodule path pattern into a regexp anchored at the end
// of a source file path. A bare package pattern matches any .go file in it.
func globToRegexp(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(".*")
	for _, comp := range strings.Split(glob, "/") {
		switch comp {
		case "":
		case "*":
			b.WriteString("(/.*)?")
		default:
			b.WriteString("/" + regexp.QuoteMeta(comp))
		}
	}
	if !strings.HasSuffix(glob, ".go") {
		b.WriteString(`/[^/]+\.go`)
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// Enabled implements slog.Handler. With vmodule rules active every level is
// enabled, the final decision is made in Handle once the call site is known.
func (h *GlogHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.filters.rules.Load() != nil || slog.Level(h.filters.level.Load()) <= lvl
}

// WithAttrs implements slog.Handler.
func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &GlogHandler{origin: h.origin.WithAttrs(attrs), filters: h.filters}
}

// WithGroup implements slog.Handler.
func (h *GlogHandler) WithGroup(name string) slog.Handler {
	return &GlogHandler{origin: h.origin.WithGroup(name), filters: h.filters}
}

// Handle implements slog.Handler. Records at or above the global ceiling pass
// straight through, anything else needs a vmodule rule matching its call site.
func (h *GlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if slog.Level(h.filters.level.Load()) <= r.Level {
		return h.origin.Handle(ctx, r)
	}
	rules := h.filters.rules.Load()
	if rules == nil {
		return nil
	}
	if rules.siteLevel(r.PC) <= r.Level {
		return h.origin.Handle(ctx, r)
	}
	return nil
}

// siteLevel returns the verbosity for the call site at pc. The last matching
// rule wins. Sites matching no rule resolve to LevelCrit+1 so they stay muted.
func (rs *vmoduleRules) siteLevel(pc uintptr) slog.Level {
	if lvl, ok := rs.sites.Load(pc); ok {
		return lvl.(slog.Level)
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	level := LevelCrit + 1
	for _, p := range rs.patterns {
		if p.file.MatchString("+" + frame.File) {
			level = p.level
		}
	}
	rs.sites.Store(pc, level)
	return level
}
