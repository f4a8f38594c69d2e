// Copyright 2025 The go-ethereum Authors
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

// Package fixture loads and runs interpreter conformance fixtures.
//
// A fixture file is a JSON list of cases. Each case carries the code to run
// (hex, or assembly when no hex is given), optional transaction, block and
// account state context, and the expected outcome of the run.
//
// 测试夹具文件是一个 JSON 数组，每个用例包含待执行代码、可选的交易/区块/状态上下文以及期望结果。
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/common/hexutil"
	"github.com/sunyihoo/go-evm/core/asm"
	"github.com/sunyihoo/go-evm/core/state"
	"github.com/sunyihoo/go-evm/core/types"
	"github.com/sunyihoo/go-evm/core/vm"
)

// Code is a program given as hex and, for humans, as assembly.
type Code struct {
	Asm string `json:"asm"`
	Bin string `json:"bin"`
}

// Bytes returns the bytecode. The hex form wins; assembly is only compiled
// when no hex is present.
func (c *Code) Bytes() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	if strings.TrimSpace(c.Bin) != "" {
		code, err := hexutil.DecodeLoose(c.Bin)
		if err != nil {
			return nil, fmt.Errorf("invalid code hex: %w", err)
		}
		return code, nil
	}
	if strings.TrimSpace(c.Asm) != "" {
		return asm.Assemble(c.Asm)
	}
	return nil, nil
}

// Tx is the transaction part of a fixture.
type Tx struct {
	To       *common.Address `json:"to"`
	From     *common.Address `json:"from"`
	Origin   *common.Address `json:"origin"`
	GasPrice *hexutil.U256   `json:"gasprice"`
	Value    *hexutil.U256   `json:"value"`
	Data     string          `json:"data"`
}

// Block is the block part of a fixture.
type Block struct {
	BaseFee    *hexutil.U256   `json:"basefee"`
	Coinbase   *common.Address `json:"coinbase"`
	Timestamp  *hexutil.U256   `json:"timestamp"`
	Number     *hexutil.U256   `json:"number"`
	Difficulty *hexutil.U256   `json:"difficulty"`
	GasLimit   *hexutil.U256   `json:"gaslimit"`
	ChainID    *hexutil.U256   `json:"chainid"`
}

// Account is the pre-state of one account.
type Account struct {
	Balance *hexutil.U256 `json:"balance"`
	Code    *Code         `json:"code"`
	Nonce   uint64        `json:"nonce"`
}

// Log is an expected log record.
type Log struct {
	Address common.Address `json:"address"`
	Data    string         `json:"data"`
	Topics  []hexutil.U256 `json:"topics"`
}

// Expect is the expected outcome of a fixture. Logs and Return are only
// checked when present.
type Expect struct {
	Stack   []hexutil.U256 `json:"stack"`
	Success bool           `json:"success"`
	Logs    []Log          `json:"logs"`
	Return  *string        `json:"return"`
}

// Fixture is a single test case.
type Fixture struct {
	Name   string             `json:"name"`
	Hint   string             `json:"hint"`
	Code   Code               `json:"code"`
	Tx     *Tx                `json:"tx"`
	Block  *Block             `json:"block"`
	State  map[string]Account `json:"state"`
	Expect Expect             `json:"expect"`
}

// Load reads a fixture file. Fixture names must be unique within the file.
func Load(path string) ([]*Fixture, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []*Fixture
	if err := json.Unmarshal(src, &fixtures); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Names select fixtures with --run, so they have to be unique.
	names := mapset.NewThreadUnsafeSet[string]()
	for i, f := range fixtures {
		if !names.Add(f.Name) {
			return nil, fmt.Errorf("%s: fixture %d: duplicate name %q", path, i, f.Name)
		}
	}
	return fixtures, nil
}

func u256(v *hexutil.U256) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v.ToInt())
}

// Context builds the execution context of the fixture. Absent parts stay
// nil and read as zero during the run.
func (f *Fixture) Context() (*vm.Context, error) {
	ctx := new(vm.Context)
	if f.Tx != nil {
		data, err := hexutil.DecodeLoose(f.Tx.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid tx data: %w", err)
		}
		ctx.Tx = &vm.TxContext{
			From:     f.Tx.From,
			To:       f.Tx.To,
			Origin:   f.Tx.Origin,
			GasPrice: u256(f.Tx.GasPrice),
			Value:    u256(f.Tx.Value),
			Data:     data,
		}
	}
	if f.Block != nil {
		ctx.Block = &vm.BlockContext{
			Coinbase:   f.Block.Coinbase,
			Timestamp:  u256(f.Block.Timestamp),
			Number:     u256(f.Block.Number),
			Difficulty: u256(f.Block.Difficulty),
			GasLimit:   u256(f.Block.GasLimit),
			ChainID:    u256(f.Block.ChainID),
			BaseFee:    u256(f.Block.BaseFee),
		}
	}
	if f.State != nil {
		statedb := state.New()
		for key, acct := range f.State {
			var addr common.Address
			if err := addr.UnmarshalText([]byte(key)); err != nil {
				return nil, fmt.Errorf("invalid state address %q: %w", key, err)
			}
			statedb.CreateAccount(addr)
			if acct.Balance != nil {
				statedb.SetBalance(addr, acct.Balance.ToInt())
			}
			statedb.SetNonce(addr, acct.Nonce)
			code, err := acct.Code.Bytes()
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", key, err)
			}
			statedb.SetCode(addr, code)
		}
		ctx.State = statedb
	}
	return ctx, nil
}

// Result is what a fixture run produced, in the shape it is compared in.
type Result struct {
	Stack   []*uint256.Int
	Success bool
	Log     *types.Log
	Return  []byte
}

// Run executes the fixture on the interpreter. The interpreter is reset
// first, so that no storage leaks in from earlier fixtures.
func (f *Fixture) Run(in *vm.EVMInterpreter) (*Result, error) {
	code, err := f.Code.Bytes()
	if err != nil {
		return nil, err
	}
	ctx, err := f.Context()
	if err != nil {
		return nil, err
	}
	in.Reset()
	res, err := in.Run(code, ctx)
	if err != nil {
		return nil, err
	}
	out := &Result{
		Stack:   make([]*uint256.Int, len(res.Stack)),
		Success: res.Success,
		Log:     res.Log,
		Return:  res.ReturnData,
	}
	for i := range res.Stack {
		out.Stack[i] = new(uint256.Int).Set(&res.Stack[i])
	}
	return out, nil
}

// Check compares a result with the expectation and returns a description
// of every mismatch.
func (f *Fixture) Check(res *Result) []string {
	var diffs []string
	want := f.Expect

	if len(want.Stack) != len(res.Stack) {
		diffs = append(diffs, fmt.Sprintf("stack depth: have %d, want %d", len(res.Stack), len(want.Stack)))
	} else {
		for i := range want.Stack {
			if !want.Stack[i].ToInt().Eq(res.Stack[i]) {
				diffs = append(diffs, fmt.Sprintf("stack[%d]: have %s, want %s", i, res.Stack[i].Hex(), want.Stack[i].String()))
			}
		}
	}
	if want.Success != res.Success {
		diffs = append(diffs, fmt.Sprintf("success: have %t, want %t", res.Success, want.Success))
	}
	if want.Logs != nil {
		diffs = append(diffs, checkLog(want.Logs, res.Log)...)
	}
	if want.Return != nil {
		ret, err := hexutil.DecodeLoose(*want.Return)
		switch {
		case err != nil:
			diffs = append(diffs, fmt.Sprintf("invalid expected return %q: %v", *want.Return, err))
		case string(ret) != string(res.Return):
			diffs = append(diffs, fmt.Sprintf("return: have %x, want %x", res.Return, ret))
		}
	}
	return diffs
}

// checkLog compares the most recent log of the run with the last expected
// log, the only one the interpreter keeps.
func checkLog(want []Log, have *types.Log) []string {
	if len(want) == 0 {
		if have != nil {
			return []string{"log: unexpected log record"}
		}
		return nil
	}
	if have == nil {
		return []string{"log: missing log record"}
	}
	last := want[len(want)-1]
	var diffs []string
	if last.Address != have.Address {
		diffs = append(diffs, fmt.Sprintf("log address: have %s, want %s", have.Address, last.Address))
	}
	data, err := hexutil.DecodeLoose(last.Data)
	if err != nil {
		diffs = append(diffs, fmt.Sprintf("invalid expected log data %q: %v", last.Data, err))
	} else if string(data) != string(have.Data) {
		diffs = append(diffs, fmt.Sprintf("log data: have %x, want %x", []byte(have.Data), data))
	}
	if len(last.Topics) != len(have.Topics) {
		diffs = append(diffs, fmt.Sprintf("log topics: have %d, want %d", len(have.Topics), len(last.Topics)))
		return diffs
	}
	for i := range last.Topics {
		if !last.Topics[i].ToInt().Eq(have.Topics[i].Word()) {
			diffs = append(diffs, fmt.Sprintf("log topic[%d]: have %s, want %s", i, have.Topics[i], last.Topics[i].String()))
		}
	}
	return diffs
}
