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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/holiman/uint256"
	"github.com/naoina/toml"
	"github.com/sunyihoo/go-evm/cmd/utils"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/sunyihoo/go-evm/core/vm"
	"github.com/sunyihoo/go-evm/core/vm/runtime"
	"github.com/sunyihoo/go-evm/eth/tracers/logger"
	"github.com/sunyihoo/go-evm/internal/flags"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       flags.Merge(utils.VMFlags, utils.ContextFlags),
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// vmConfig holds the interpreter options of the configuration file.
type vmConfig struct {
	StrictPushData    bool
	MaxMemory         uint64
	AnalysisCacheSize int
}

// envConfig is the default context code runs in. Fixtures carry their own
// context and ignore it.
type envConfig struct {
	Sender   *common.Address `toml:",omitempty"`
	Receiver *common.Address `toml:",omitempty"`
	Origin   *common.Address `toml:",omitempty"`
	Value    *hexutil.U256   `toml:",omitempty"`
	GasPrice *hexutil.U256   `toml:",omitempty"`

	Coinbase    *common.Address `toml:",omitempty"`
	BlockNumber *hexutil.U256   `toml:",omitempty"`
	Timestamp   *hexutil.U256   `toml:",omitempty"`
	Difficulty  *hexutil.U256   `toml:",omitempty"`
	GasLimit    *hexutil.U256   `toml:",omitempty"`
	ChainID     *hexutil.U256   `toml:",omitempty"`
	BaseFee     *hexutil.U256   `toml:",omitempty"`
}

type evmConfig struct {
	VM  vmConfig
	Env envConfig
}

func loadConfig(file string, cfg *evmConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the evmConfig based on the given command line
// parameters and config file.
func loadBaseConfig(ctx *cli.Context) (evmConfig, error) {
	// Load defaults
	cfg := evmConfig{
		VM: vmConfig{
			MaxMemory:         vm.DefaultMaxMemory,
			AnalysisCacheSize: vm.DefaultAnalysisCacheSize,
		},
	}
	// Load config file.
	if file := ctx.String(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	// Apply flags.
	if err := applyFlags(ctx, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFlags overrides the configuration with every flag that was set.
func applyFlags(ctx *cli.Context, cfg *evmConfig) error {
	if ctx.IsSet(utils.StrictPushFlag.Name) {
		cfg.VM.StrictPushData = ctx.Bool(utils.StrictPushFlag.Name)
	}
	if ctx.IsSet(utils.MaxMemoryFlag.Name) {
		cfg.VM.MaxMemory = ctx.Uint64(utils.MaxMemoryFlag.Name)
	}
	if ctx.IsSet(utils.AnalysisCacheFlag.Name) {
		cfg.VM.AnalysisCacheSize = ctx.Int(utils.AnalysisCacheFlag.Name)
	}
	for _, f := range []struct {
		flag *cli.StringFlag
		dst  **common.Address
	}{
		{utils.SenderFlag, &cfg.Env.Sender},
		{utils.ReceiverFlag, &cfg.Env.Receiver},
		{utils.OriginFlag, &cfg.Env.Origin},
		{utils.CoinbaseFlag, &cfg.Env.Coinbase},
	} {
		addr, ok, err := utils.AddressFlag(ctx, f.flag.Name)
		if err != nil {
			return err
		}
		if ok {
			*f.dst = &addr
		}
	}
	for _, f := range []struct {
		flag *flags.U256Flag
		dst  **hexutil.U256
	}{
		{utils.ValueFlag, &cfg.Env.Value},
		{utils.GasPriceFlag, &cfg.Env.GasPrice},
		{utils.BlockNumberFlag, &cfg.Env.BlockNumber},
		{utils.TimestampFlag, &cfg.Env.Timestamp},
		{utils.DifficultyFlag, &cfg.Env.Difficulty},
		{utils.GasLimitFlag, &cfg.Env.GasLimit},
		{utils.ChainIDFlag, &cfg.Env.ChainID},
		{utils.BaseFeeFlag, &cfg.Env.BaseFee},
	} {
		if ctx.IsSet(f.flag.Name) {
			v := hexutil.U256(*flags.GlobalU256(ctx, f.flag.Name))
			*f.dst = &v
		}
	}
	return nil
}

// interpreterConfig returns the interpreter configuration, with a JSON tracer on
// stderr when tracing was requested.
func (c *evmConfig) interpreterConfig(ctx *cli.Context) vm.Config {
	cfg := vm.Config{
		StrictPushData:    c.VM.StrictPushData,
		MaxMemory:         c.VM.MaxMemory,
		AnalysisCacheSize: c.VM.AnalysisCacheSize,
	}
	if ctx.Bool(utils.TraceFlag.Name) {
		cfg.Tracer = logger.NewJSONLogger(&logger.Config{
			EnableMemory:     ctx.Bool(utils.TraceMemoryFlag.Name),
			DisableStack:     ctx.Bool(utils.TraceNoStackFlag.Name),
			EnableReturnData: ctx.Bool(utils.TraceReturnDataFlag.Name),
		}, os.Stderr)
	}
	return cfg
}

func u256(v *hexutil.U256) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v.ToInt())
}

// runtimeConfig translates the configuration into the runtime environment.
func (c *evmConfig) runtimeConfig(ctx *cli.Context) *runtime.Config {
	cfg := &runtime.Config{
		Caller:      c.Env.Sender,
		Address:     c.Env.Receiver,
		Value:       u256(c.Env.Value),
		GasPrice:    u256(c.Env.GasPrice),
		BlockNumber: u256(c.Env.BlockNumber),
		Time:        u256(c.Env.Timestamp),
		Difficulty:  u256(c.Env.Difficulty),
		GasLimit:    u256(c.Env.GasLimit),
		ChainID:     u256(c.Env.ChainID),
		BaseFee:     u256(c.Env.BaseFee),
		EVMConfig:   c.interpreterConfig(ctx),
	}
	if c.Env.Origin != nil {
		cfg.Origin = *c.Env.Origin
	}
	if c.Env.Coinbase != nil {
		cfg.Coinbase = *c.Env.Coinbase
	}
	return cfg
}

// newInterpreter returns an interpreter for fixture runs.
func (c *evmConfig) newInterpreter(ctx *cli.Context) *vm.EVMInterpreter {
	return vm.NewEVMInterpreter(c.interpreterConfig(ctx))
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.WriteString("# Note: this config doesn't contain the account state of runs.\n\n")
	dump.Write(out)

	return nil
}
