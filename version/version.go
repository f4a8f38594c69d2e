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


// Package version reports the release version of the evm tool, extended with
// the VCS state the go tool embeds into the binary.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// 通过 Major（主版本）、 Minor（次版本）、 Patch（补丁版本）和 Meta（元数据）来标识软件的当前版本。
const (
	Major = 0          // Major version component of the current release
	Minor = 3          // Minor version component of the current release
	Patch = 0          // Patch version component of the current release
	Meta  = "unstable" // Version metadata to append to the version string
)

// Semantic holds the textual version string for major.minor.patch.
var Semantic = fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)

// WithMeta holds the textual version string including the metadata.
var WithMeta = Semantic + "-" + Meta

// VCSInfo is the git state the binary was built from.
type VCSInfo struct {
	Commit string // head commit hash
	Date   string // commit time as YYYYMMDD
	Dirty  bool   // uncommitted changes at build time
}

// ReadVCS returns the VCS state recorded in the running binary. The second
// return is false for builds without VCS stamping, such as go run or tests.
func ReadVCS() (VCSInfo, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return VCSInfo{}, false
	}
	return parseVCS(info.Settings)
}

// parseVCS picks the vcs.* keys out of the build settings.
// 从构建设置中提取 vcs.revision、vcs.time 和 vcs.modified。
func parseVCS(settings []debug.BuildSetting) (vcs VCSInfo, ok bool) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			vcs.Commit = s.Value
		case "vcs.modified":
			vcs.Dirty = s.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				vcs.Date = t.UTC().Format("20060102")
			}
		}
	}
	return vcs, vcs.Commit != "" && vcs.Date != ""
}

// String renders the full version: the semantic version and metadata, then
// the short commit hash, commit date and a dirty marker when known.
func (v VCSInfo) String() string {
	vsn := WithMeta
	if len(v.Commit) >= 8 {
		vsn += "-" + v.Commit[:8]
	}
	if v.Date != "" {
		vsn += "-" + v.Date
	}
	if v.Dirty {
		vsn += "-dirty"
	}
	return vsn
}
