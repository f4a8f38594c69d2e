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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestU256FlagParse(t *testing.T) {
	tests := []struct {
		arg  string
		want uint64
		err  bool
	}{
		{arg: "0", want: 0},
		{arg: "1000", want: 1000},
		{arg: "0x10", want: 16},
		{arg: "0xg", err: true},
		{arg: "-1", err: true},
	}
	for _, tt := range tests {
		f := &U256Flag{Name: "value", Value: uint256.NewInt(7)}
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.SetOutput(io.Discard)
		require.NoError(t, f.Apply(set))

		err := set.Parse([]string{"--value", tt.arg})
		if tt.err {
			assert.Error(t, err, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, f.Value.Uint64(), tt.arg)
		assert.Equal(t, "7", f.GetDefaultText(), tt.arg)
	}
}

func TestU256FlagEnvironment(t *testing.T) {
	t.Setenv("EVM_TEST_WORD", "0xff")

	f := &U256Flag{Name: "word", EnvVars: []string{"EVM_TEST_WORD"}}
	require.NoError(t, f.Apply(flag.NewFlagSet("test", flag.ContinueOnError)))
	assert.True(t, f.IsSet())
	assert.Equal(t, uint64(255), f.Value.Uint64())
	assert.Equal(t, "0", f.GetDefaultText())

	t.Setenv("EVM_TEST_WORD", "nope")
	f = &U256Flag{Name: "word", EnvVars: []string{"EVM_TEST_WORD"}}
	assert.Error(t, f.Apply(flag.NewFlagSet("test", flag.ContinueOnError)))
}

func runApp(t *testing.T, fl []cli.Flag, args []string, action cli.ActionFunc) error {
	t.Helper()
	app := cli.NewApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	app.Flags = fl
	app.Action = action
	return app.Run(append([]string{"evm"}, args...))
}

func TestGlobalU256(t *testing.T) {
	value := &U256Flag{Name: "value", Aliases: []string{"v"}}
	var got, missing *uint256.Int
	err := runApp(t, []cli.Flag{value}, []string{"--v", "0x2a"}, func(ctx *cli.Context) error {
		got = GlobalU256(ctx, "value")
		missing = GlobalU256(ctx, "nope")
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(42), got.Uint64())
	assert.Nil(t, missing)
}

func TestCheckExclusive(t *testing.T) {
	code := &cli.StringFlag{Name: "code"}
	file := &cli.PathFlag{Name: "codefile"}
	check := func(ctx *cli.Context) error { return CheckExclusive(ctx, code, file) }

	assert.NoError(t, runApp(t, []cli.Flag{code, file}, []string{"--code", "00"}, check))
	err := runApp(t, []cli.Flag{code, file}, []string{"--code", "00", "--codefile", "x"}, check)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--code, --codefile")
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EVM_TEST_DIR", "fixtures")

	assert.Equal(t, "-", ExpandPath("-"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "code.hex"), ExpandPath("~/code.hex"))
	assert.Equal(t, filepath.Join("fixtures", "a.json"), ExpandPath("$EVM_TEST_DIR/./a.json"))
	assert.Equal(t, "~other/x", ExpandPath("~other/x"))
	assert.Equal(t, os.Getenv("HOME"), HomeDir())
}

func TestMerge(t *testing.T) {
	a := []cli.Flag{&cli.BoolFlag{Name: "a"}}
	b := []cli.Flag{&cli.BoolFlag{Name: "b"}, &cli.BoolFlag{Name: "c"}}
	merged := Merge(a, nil, b)
	require.Len(t, merged, 3)
	assert.Equal(t, "c", merged[2].Names()[0])
}
