// Copyright 2015 The go-ethereum Authors
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

package flags

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/urfave/cli/v2"
)

var (
	_ cli.Flag              = (*U256Flag)(nil)
	_ cli.RequiredFlag      = (*U256Flag)(nil)
	_ cli.VisibleFlag       = (*U256Flag)(nil)
	_ cli.DocGenerationFlag = (*U256Flag)(nil)
	_ cli.CategorizableFlag = (*U256Flag)(nil)
)

// U256Flag is a command line flag holding a 256 bit word. Values may be given
// in decimal or with a 0x prefix in hexadecimal, which is how the execution
// context fields (value, gas price, coinbase balance and so on) are entered.
//
// U256Flag 接受十进制或 0x 前缀十六进制的 256 位无符号整数。
type U256Flag struct {
	Name     string
	Aliases  []string
	Category string
	Usage    string

	// DefaultText overrides the rendered default in the help output.
	DefaultText string
	Required    bool
	Hidden      bool

	// Value is the default before the first Apply and the parsed word after.
	Value      *uint256.Int
	HasBeenSet bool

	EnvVars []string

	initial uint256.Int
	applied bool
}

func (f *U256Flag) Names() []string { return append([]string{f.Name}, f.Aliases...) }
func (f *U256Flag) IsSet() bool     { return f.HasBeenSet }
func (f *U256Flag) String() string  { return cli.FlagStringer(f) }

// Apply registers the flag with the set. An environment variable, if present,
// replaces the default but still counts as the flag being set.
func (f *U256Flag) Apply(set *flag.FlagSet) error {
	if !f.applied {
		if f.Value != nil {
			f.initial.Set(f.Value)
		}
		f.applied = true
	}
	f.Value = new(uint256.Int).Set(&f.initial)
	f.HasBeenSet = false

	if name, raw, ok := lookupEnv(f.EnvVars); ok {
		if err := (*wordValue)(f.Value).Set(raw); err != nil {
			return fmt.Errorf("flag %s: environment variable %s: %w", f.Name, name, err)
		}
		f.HasBeenSet = true
	}
	for _, name := range f.Names() {
		set.Var((*wordValue)(f.Value), strings.TrimSpace(name), f.Usage)
	}
	return nil
}

func (f *U256Flag) IsRequired() bool     { return f.Required }
func (f *U256Flag) IsVisible() bool      { return !f.Hidden }
func (f *U256Flag) GetCategory() string  { return f.Category }
func (f *U256Flag) TakesValue() bool     { return true }
func (f *U256Flag) GetUsage() string     { return f.Usage }
func (f *U256Flag) GetEnvVars() []string { return f.EnvVars }

func (f *U256Flag) GetValue() string {
	if f.Value == nil {
		return "0"
	}
	return f.Value.Dec()
}

func (f *U256Flag) GetDefaultText() string {
	if f.DefaultText != "" {
		return f.DefaultText
	}
	return f.initial.Dec()
}

// wordValue adapts *uint256.Int to flag.Value.
type wordValue uint256.Int

func (w *wordValue) String() string {
	if w == nil {
		return ""
	}
	return (*uint256.Int)(w).Dec()
}

func (w *wordValue) Set(s string) error {
	v, err := hexutil.DecodeU256(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid 256 bit integer %q", s)
	}
	*w = wordValue(*v)
	return nil
}

// GlobalU256 returns the parsed value of a U256Flag, or nil when no flag with
// that name was registered.
func GlobalU256(ctx *cli.Context, name string) *uint256.Int {
	v, ok := ctx.Generic(name).(*wordValue)
	if !ok {
		return nil
	}
	return (*uint256.Int)(v)
}

func lookupEnv(vars []string) (name, value string, ok bool) {
	for _, name := range vars {
		name = strings.TrimSpace(name)
		if value, ok := os.LookupEnv(name); ok {
			return name, value, true
		}
	}
	return "", "", false
}

// ExpandPath resolves a leading ~ to the home directory, substitutes
// environment variables and cleans the result. "-" is passed through as the
// conventional name for stdin. ~someuser/ prefixes are left alone.
//
// 展开 ~ 与环境变量并清理路径；"-" 表示标准输入，原样返回。
func ExpandPath(p string) string {
	if p == "" || p == "-" {
		return p
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := HomeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// HomeDir returns the current user's home directory, or "" if unknown.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
