// Copyright 2015 The go-ethereum Authors
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

// Package utils contains internal helper functions for the evm command.
package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/core/vm"
	"github.com/sunyihoo/go-evm/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Code and interpreter settings
	CodeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "EVM code as hex",
		Category: flags.VMCategory,
	}
	CodeFileFlag = &cli.PathFlag{
		Name:      "codefile",
		Usage:     "File containing EVM code as hex. If '-' is specified, code is read from stdin",
		TakesFile: true,
		Category:  flags.VMCategory,
	}
	InputFlag = &cli.StringFlag{
		Name:     "input",
		Usage:    "Call data as hex",
		Category: flags.VMCategory,
	}
	StrictPushFlag = &cli.BoolFlag{
		Name:     "strict",
		Usage:    "Abort when PUSH data runs past the end of the code",
		Category: flags.VMCategory,
	}
	MaxMemoryFlag = &cli.Uint64Flag{
		Name:     "memory.limit",
		Usage:    "Upper bound on the interpreter memory in bytes",
		Value:    vm.DefaultMaxMemory,
		Category: flags.VMCategory,
	}
	AnalysisCacheFlag = &cli.IntFlag{
		Name:     "analysis.cache",
		Usage:    "Number of jump destination analyses to keep",
		Value:    vm.DefaultAnalysisCacheSize,
		Category: flags.VMCategory,
	}
	TraceFlag = &cli.BoolFlag{
		Name:     "trace",
		Aliases:  []string{"json"},
		Usage:    "Write a JSON line per executed instruction to stderr",
		Category: flags.VMCategory,
	}
	TraceMemoryFlag = &cli.BoolFlag{
		Name:     "trace.memory",
		Usage:    "Include memory in the trace output",
		Category: flags.VMCategory,
	}
	TraceNoStackFlag = &cli.BoolFlag{
		Name:     "trace.nostack",
		Usage:    "Leave the stack out of the trace output",
		Category: flags.VMCategory,
	}
	TraceReturnDataFlag = &cli.BoolFlag{
		Name:     "trace.returndata",
		Usage:    "Include the return data in the trace output",
		Category: flags.VMCategory,
	}

	// Transaction context
	SenderFlag = &cli.StringFlag{
		Name:     "sender",
		Usage:    "The transaction caller (CALLER)",
		Category: flags.TxCategory,
	}
	ReceiverFlag = &cli.StringFlag{
		Name:     "receiver",
		Usage:    "The address the code runs at (ADDRESS)",
		Category: flags.TxCategory,
	}
	OriginFlag = &cli.StringFlag{
		Name:     "origin",
		Usage:    "The transaction origin (ORIGIN)",
		Category: flags.TxCategory,
	}
	ValueFlag = &flags.U256Flag{
		Name:     "value",
		Usage:    "Value sent along with the call",
		Category: flags.TxCategory,
	}
	GasPriceFlag = &flags.U256Flag{
		Name:     "gasprice",
		Usage:    "Price of a unit of gas (GASPRICE)",
		Category: flags.TxCategory,
	}

	// Block context
	CoinbaseFlag = &cli.StringFlag{
		Name:     "coinbase",
		Usage:    "The block beneficiary (COINBASE)",
		Category: flags.BlockCategory,
	}
	BlockNumberFlag = &flags.U256Flag{
		Name:     "blocknumber",
		Usage:    "The block number (NUMBER)",
		Category: flags.BlockCategory,
	}
	TimestampFlag = &flags.U256Flag{
		Name:     "timestamp",
		Usage:    "The block timestamp (TIMESTAMP)",
		Category: flags.BlockCategory,
	}
	DifficultyFlag = &flags.U256Flag{
		Name:     "difficulty",
		Aliases:  []string{"prevrandao"},
		Usage:    "The block difficulty or randomness (DIFFICULTY, PREVRANDAO)",
		Category: flags.BlockCategory,
	}
	GasLimitFlag = &flags.U256Flag{
		Name:     "gaslimit",
		Usage:    "The block gas limit (GASLIMIT)",
		Category: flags.BlockCategory,
	}
	ChainIDFlag = &flags.U256Flag{
		Name:     "chainid",
		Usage:    "The chain id (CHAINID)",
		Category: flags.BlockCategory,
	}
	BaseFeeFlag = &flags.U256Flag{
		Name:     "basefee",
		Usage:    "The block base fee (BASEFEE)",
		Category: flags.BlockCategory,
	}

	// Misc
	ConfigFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	DumpFlag = &cli.BoolFlag{
		Name:     "dump",
		Usage:    "Dump the account state after the run",
		Category: flags.MiscCategory,
	}
)

var (
	// VMFlags are the interpreter settings shared by all executing commands.
	VMFlags = []cli.Flag{
		StrictPushFlag,
		MaxMemoryFlag,
		AnalysisCacheFlag,
		TraceFlag,
		TraceMemoryFlag,
		TraceNoStackFlag,
		TraceReturnDataFlag,
	}
	// ContextFlags set the transaction and block the code runs in.
	ContextFlags = []cli.Flag{
		SenderFlag,
		ReceiverFlag,
		OriginFlag,
		ValueFlag,
		GasPriceFlag,
		CoinbaseFlag,
		BlockNumberFlag,
		TimestampFlag,
		DifficultyFlag,
		GasLimitFlag,
		ChainIDFlag,
		BaseFeeFlag,
	}
)

// AddressFlag parses the named flag as an account address. The second return
// value reports whether the flag was set at all.
func AddressFlag(ctx *cli.Context, name string) (common.Address, bool, error) {
	if !ctx.IsSet(name) {
		return common.Address{}, false, nil
	}
	var addr common.Address
	if err := addr.UnmarshalText([]byte(ctx.String(name))); err != nil {
		return common.Address{}, false, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return addr, true, nil
}

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}
