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
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/go-evm/cmd/evm/internal/fixture"
	"github.com/sunyihoo/go-evm/cmd/utils"
	"github.com/sunyihoo/go-evm/core/vm"
	"github.com/sunyihoo/go-evm/internal/flags"
	"github.com/sunyihoo/go-evm/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	continueFlag = &cli.BoolFlag{
		Name:  "continue",
		Usage: "Keep going after a failing fixture",
	}
	runFilterFlag = &cli.StringFlag{
		Name:  "run",
		Value: ".*",
		Usage: "Run only those fixtures matching the regular expression.",
	}
	parallelFlag = &cli.IntFlag{
		Name:  "parallel",
		Value: 1,
		Usage: "Number of interpreters running fixtures side by side",
	}
)

var fixturesCommand = &cli.Command{
	Action:    fixturesCmd,
	Name:      "fixtures",
	Usage:     "Executes the given interpreter fixtures",
	ArgsUsage: "<file>",
	Description: `The fixtures command runs every case of a JSON fixture file and
compares the final stack, success flag, log and return data with the
expectation. It stops at the first failure unless --continue is given.

With --parallel N every selected fixture is run up front on N interpreters of
their own; the report is still printed in file order.`,
	Flags: flags.Merge([]cli.Flag{continueFlag, runFilterFlag, parallelFlag}, utils.VMFlags),
}

func fixturesCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one fixture file, got %d arguments", ctx.NArg())
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	re, err := regexp.Compile(ctx.String(runFilterFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid regex -%s: %v", runFilterFlag.Name, err)
	}
	fixtures, err := fixture.Load(ctx.Args().First())
	if err != nil {
		return err
	}
	var (
		keepGoing = ctx.Bool(continueFlag.Name)
		workers   = ctx.Int(parallelFlag.Name)
		failed    int
	)
	if workers > 1 {
		if err := flags.CheckExclusive(ctx, parallelFlag, utils.TraceFlag); err != nil {
			return err
		}
		newInterpreter := func() *vm.EVMInterpreter { return cfg.newInterpreter(ctx) }
		failed = runFixturesParallel(os.Stdout, newInterpreter, workers, fixtures, re, keepGoing)
	} else {
		failed = runFixtures(os.Stdout, cfg.newInterpreter(ctx), fixtures, re, keepGoing)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed", failed, len(fixtures))
	}
	return nil
}

// runFixtures runs the fixtures matching re one after the other on in and
// reports on w. It returns the number of failures.
func runFixtures(w io.Writer, in *vm.EVMInterpreter, fixtures []*fixture.Fixture, re *regexp.Regexp, keepGoing bool) int {
	return reportFixtures(w, fixtures, re, keepGoing, func(i int, f *fixture.Fixture) (*fixture.Result, error) {
		return f.Run(in)
	})
}

type fixtureOutcome struct {
	res *fixture.Result
	err error
}

// runFixturesParallel runs every fixture matching re on a pool of workers
// interpreters, then reports the outcomes in file order exactly like
// runFixtures does.
func runFixturesParallel(w io.Writer, newInterpreter func() *vm.EVMInterpreter, workers int, fixtures []*fixture.Fixture, re *regexp.Regexp, keepGoing bool) int {
	pool := make(chan *vm.EVMInterpreter, workers)
	for i := 0; i < workers; i++ {
		pool <- newInterpreter()
	}
	outcomes := make([]fixtureOutcome, len(fixtures))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range fixtures {
		if !re.MatchString(f.Name) {
			continue
		}
		g.Go(func() error {
			in := <-pool
			defer func() { pool <- in }()

			res, err := f.Run(in)
			outcomes[i] = fixtureOutcome{res: res, err: err}
			return nil
		})
	}
	g.Wait()

	return reportFixtures(w, fixtures, re, keepGoing, func(i int, f *fixture.Fixture) (*fixture.Result, error) {
		return outcomes[i].res, outcomes[i].err
	})
}

// reportFixtures walks the fixtures matching re in order, obtaining each
// outcome from exec, and prints a verdict per fixture. It returns the number
// of failures.
func reportFixtures(w io.Writer, fixtures []*fixture.Fixture, re *regexp.Regexp, keepGoing bool, exec func(int, *fixture.Fixture) (*fixture.Result, error)) int {
	var (
		total  = len(fixtures)
		failed int
	)
	for i, f := range fixtures {
		if !re.MatchString(f.Name) {
			continue
		}
		fmt.Fprintf(w, "Test %d of %d: %s\n", i+1, total, f.Name)

		res, err := exec(i, f)
		if err != nil {
			log.Debug("Fixture aborted", "name", f.Name, "err", err)
			fmt.Fprintf(w, "FAIL: %v\n", err)
		} else if diffs := f.Check(res); len(diffs) > 0 {
			fmt.Fprintf(w, "FAIL\n")
			for _, d := range diffs {
				fmt.Fprintf(w, "  %s\n", d)
			}
			fmt.Fprintf(w, "Instructions:\n%s\n\n", f.Code.Asm)
			fmt.Fprintf(w, "Expected: %s\n", spew.Sdump(f.Expect))
			fmt.Fprintf(w, "Actual: %s\n", spew.Sdump(res))
		} else {
			fmt.Fprintln(w, "PASS")
			continue
		}
		failed++
		if f.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", f.Hint)
		}
		fmt.Fprintf(w, "Progress: %d/%d\n\n", i, total)
		if !keepGoing {
			break
		}
	}
	if failed == 0 {
		fmt.Fprintln(w, "All fixtures passed.")
	}
	return failed
}
