// Copyright 2017 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// evm executes EVM code snippets.
package main

import (
	"os"

	"github.com/sunyihoo/go-evm/cmd/utils"
	"github.com/sunyihoo/go-evm/internal/debug"
	"github.com/sunyihoo/go-evm/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("the evm command line interface")

func init() {
	app.Flags = flags.Merge(debug.Flags, []cli.Flag{utils.ConfigFileFlag})
	app.Commands = []*cli.Command{
		runCommand,
		fixturesCommand,
		disasmCommand,
		compileCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}
