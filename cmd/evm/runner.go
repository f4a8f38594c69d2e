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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sunyihoo/go-evm/cmd/utils"
	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/sunyihoo/go-evm/core/types"
	"github.com/sunyihoo/go-evm/core/vm"
	"github.com/sunyihoo/go-evm/core/vm/runtime"
	"github.com/sunyihoo/go-evm/internal/flags"
	"github.com/sunyihoo/go-evm/log"
	"github.com/urfave/cli/v2"
)

var runCommand = &cli.Command{
	Action:      runCmd,
	Name:        "run",
	Usage:       "Run arbitrary evm binary",
	ArgsUsage:   "<code>",
	Description: `The run command runs arbitrary EVM code.`,
	Flags: flags.Merge([]cli.Flag{
		utils.CodeFlag,
		utils.CodeFileFlag,
		utils.InputFlag,
		utils.DumpFlag,
	}, utils.VMFlags, utils.ContextFlags),
}

// execResult is the JSON form of a run printed to stdout.
type execResult struct {
	Stack    []hexutil.U256 `json:"stack"`
	Success  bool           `json:"success"`
	ExitCode uint8          `json:"exitCode"`
	Return   hexutil.Bytes  `json:"return,omitempty"`
	Log      *types.Log     `json:"log,omitempty"`
}

func newExecResult(res *vm.ExecutionResult) *execResult {
	out := &execResult{
		Stack:    make([]hexutil.U256, len(res.Stack)),
		Success:  res.Success,
		ExitCode: uint8(res.ExitCode),
		Return:   res.ReturnData,
		Log:      res.Log,
	}
	for i := range res.Stack {
		out.Stack[i] = hexutil.U256(res.Stack[i])
	}
	return out
}

// readCode returns the code to run: the first argument, --code, or else the
// content of --codefile, where '-' stands for stdin.
func readCode(ctx *cli.Context) ([]byte, error) {
	if err := flags.CheckExclusive(ctx, utils.CodeFlag, utils.CodeFileFlag); err != nil {
		return nil, err
	}
	var (
		hexcode  string
		codeFile = flags.ExpandPath(ctx.Path(utils.CodeFileFlag.Name))
	)
	switch {
	case ctx.Args().Present():
		hexcode = ctx.Args().First()
	case ctx.IsSet(utils.CodeFlag.Name):
		hexcode = ctx.String(utils.CodeFlag.Name)
	case codeFile == "-":
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("could not load code from stdin: %w", err)
		}
		hexcode = string(src)
	case codeFile != "":
		src, err := os.ReadFile(codeFile)
		if err != nil {
			return nil, fmt.Errorf("could not load code from file: %w", err)
		}
		hexcode = string(src)
	default:
		return nil, errors.New("no code given, pass it as argument, with --code or with --codefile")
	}
	code, err := hexutil.DecodeLoose(strings.TrimSpace(hexcode))
	if err != nil {
		return nil, fmt.Errorf("invalid code: %w", err)
	}
	return code, nil
}

func runCmd(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	code, err := readCode(ctx)
	if err != nil {
		return err
	}
	input, err := hexutil.DecodeLoose(ctx.String(utils.InputFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", utils.InputFlag.Name, err)
	}

	start := time.Now()
	res, statedb, err := runtime.Execute(code, input, cfg.runtimeConfig(ctx))
	if err != nil {
		return err
	}
	log.Debug("Run complete", "elapsed", time.Since(start), "success", res.Success)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newExecResult(res)); err != nil {
		return err
	}
	if ctx.Bool(utils.DumpFlag.Name) {
		os.Stdout.Write(statedb.Dump())
		fmt.Println()
	}
	return nil
}
