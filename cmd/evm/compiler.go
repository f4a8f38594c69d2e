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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sunyihoo/go-evm/core/asm"
	"github.com/urfave/cli/v2"
)

var debugFlag = &cli.BoolFlag{
	Name:  "debug",
	Usage: "Print the lexer tokens while compiling",
}

var compileCommand = &cli.Command{
	Action:    compileCmd,
	Name:      "compile",
	Usage:     "Compiles easm source to evm binary",
	ArgsUsage: "<file>",
	Flags:     []cli.Flag{debugFlag},
}

func compileCmd(ctx *cli.Context) error {
	debug := ctx.Bool(debugFlag.Name)

	if len(ctx.Args().First()) == 0 {
		return errors.New("filename required")
	}

	fn := ctx.Args().First()
	src, err := os.ReadFile(fn)
	if err != nil {
		return err
	}

	bin, err := compile(string(src), debug)
	if err != nil {
		return err
	}
	fmt.Println(bin)
	return nil
}

func compile(source string, debug bool) (string, error) {
	compiler := asm.NewCompiler(debug)
	compiler.Feed(asm.Lex([]byte(source), debug))

	bin, compileErrors := compiler.Compile()
	if len(compileErrors) > 0 {
		// report errors
		return "", errors.Join(compileErrors...)
	}
	return bin, nil
}
