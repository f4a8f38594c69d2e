// Copyright 2014 The go-ethereum Authors
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
package vm

import (
	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evm/common"
	"github.com/sunyihoo/go-evm/common/lru"
	"github.com/sunyihoo/go-evm/core/tracing"
	"github.com/sunyihoo/go-evm/core/types"
	"github.com/sunyihoo/go-evm/crypto"
	"github.com/sunyihoo/go-evm/log"
)

const (
	// DefaultMaxMemory is the memory limit used when Config.MaxMemory is unset.
	DefaultMaxMemory = 32 * 1024 * 1024

	// DefaultAnalysisCacheSize is the number of jump destination analyses
	// kept per interpreter when Config.AnalysisCacheSize is unset.
	DefaultAnalysisCacheSize = 64
)

// Config are the configuration options for the Interpreter
// Config 是解释器的配置选项
type Config struct {
	Tracer            *tracing.Hooks // Optional hooks invoked during execution
	Logger            log.Logger     // Logger for run diagnostics, defaults to the root logger
	StrictPushData    bool           // Treat a PUSH running past the end of the code as fatal
	MaxMemory         uint64         // Upper bound on the logical memory size in bytes
	AnalysisCacheSize int            // Number of cached jump destination analyses
}

// ExitCode is the code a run halts with. Zero is success.
type ExitCode uint8

const (
	ExitSuccess ExitCode = 0
	ExitFailure ExitCode = 1
)

// signal is what every handler hands back to the run loop: either carry on
// with the next instruction or stop with an exit code.
// signal 是指令处理函数返回给主循环的控制信号：继续执行，或携带退出码停止。
type signal struct {
	exit bool
	code ExitCode
}

var continueSignal = signal{}

func exitSignal(code ExitCode) signal {
	return signal{exit: true, code: code}
}

// ScopeContext contains the things that are per-run, such as stack and memory,
// but not transients like pc
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
	Context  *Context
}

var _ tracing.OpContext = (*ScopeContext)(nil)

// MemoryData returns the underlying memory slice. Callers must not modify the contents
// of the returned data.
func (ctx *ScopeContext) MemoryData() []byte {
	if ctx.Memory == nil {
		return nil
	}
	return ctx.Memory.Data()
}

// StackData returns the stack data. Callers must not modify the contents
// of the returned data.
func (ctx *ScopeContext) StackData() []uint256.Int {
	if ctx.Stack == nil {
		return nil
	}
	return ctx.Stack.Data()
}

// Caller returns the current caller.
func (ctx *ScopeContext) Caller() common.Address {
	return ctx.Contract.Caller()
}

// Address returns the address where this scope of execution is taking place.
func (ctx *ScopeContext) Address() common.Address {
	return ctx.Contract.Address()
}

// CallValue returns the value supplied with this call.
func (ctx *ScopeContext) CallValue() *uint256.Int {
	return ctx.Contract.Value()
}

// CallInput returns the input/calldata with this call. Callers must not modify
// the contents of the returned data.
func (ctx *ScopeContext) CallInput() []byte {
	return ctx.Contract.Input
}

// ContractCode returns the code being executed.
func (ctx *ScopeContext) ContractCode() []byte {
	return ctx.Contract.Code
}

// Storage is the flat key-value store of an interpreter. Keys are the low 64
// bits of the word used to address a slot.
type Storage map[uint64]uint256.Int

// Copy returns an independent copy of the storage.
func (s Storage) Copy() Storage {
	cpy := make(Storage, len(s))
	for k, v := range s {
		cpy[k] = v
	}
	return cpy
}

// ExecutionResult is the outcome of a run that did not abort.
// ExecutionResult 是一次未中止执行的结果；栈按栈顶在前的顺序给出。
type ExecutionResult struct {
	Stack      []uint256.Int // final stack, top first
	Success    bool          // whether the run exited with ExitSuccess
	ExitCode   ExitCode      // code the run halted with
	Log        *types.Log    // most recent log record, if any
	ReturnData []byte        // data handed back by RETURN or REVERT
}

// EVMInterpreter represents an EVM interpreter
//
// An interpreter owns its memory, storage and analysis cache and must not be
// used by more than one goroutine at a time. Independent instances may run
// concurrently; they share nothing but the read-only opcode table.
type EVMInterpreter struct {
	cfg    Config
	table  *JumpTable
	logger log.Logger

	mem        *Memory
	storage    Storage
	lastLog    *types.Log
	returnData []byte

	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes

	analyses lru.BasicLRU[common.Hash, []uint64] // jump destinations by code hash
}

// NewEVMInterpreter returns a new instance of the Interpreter.
func NewEVMInterpreter(cfg Config) *EVMInterpreter {
	if cfg.Logger == nil {
		cfg.Logger = log.Root()
	}
	if cfg.MaxMemory == 0 {
		cfg.MaxMemory = DefaultMaxMemory
	}
	if cfg.AnalysisCacheSize <= 0 {
		cfg.AnalysisCacheSize = DefaultAnalysisCacheSize
	}
	return &EVMInterpreter{
		cfg:      cfg,
		table:    &instructionSet,
		logger:   cfg.Logger,
		mem:      NewMemory(),
		storage:  make(Storage),
		analyses: lru.NewBasicLRU[common.Hash, []uint64](cfg.AnalysisCacheSize),
	}
}

// Config returns the effective configuration, with defaults applied.
func (in *EVMInterpreter) Config() Config {
	return in.cfg
}

// Storage returns a copy of the interpreter's storage. The storage outlives
// individual runs and is only cleared by Reset.
func (in *EVMInterpreter) Storage() Storage {
	return in.storage.Copy()
}

// Reset returns the interpreter to its freshly constructed state, storage
// included.
// Reset 是显式的完全复位：与每次执行后的复位不同，它同时清空存储。
func (in *EVMInterpreter) Reset() {
	in.resetRun()
	clear(in.storage)
}

// resetRun is the reset performed after every run. Storage survives it.
func (in *EVMInterpreter) resetRun() {
	in.mem.reset()
	in.lastLog = nil
	in.returnData = nil
}

// analyse returns the jump destinations of code, reusing a cached analysis
// when the same code ran before.
func (in *EVMInterpreter) analyse(hash common.Hash, code []byte) []uint64 {
	if dests, ok := in.analyses.Get(hash); ok {
		return dests
	}
	dests := jumpdestAnalysis(code)
	in.analyses.Add(hash, dests)
	return dests
}

// Run loops and evaluates code against the given context.
//
// A run ends successfully when the program counter moves past the end of the
// code, or with the exit code of the first halting instruction. A fatal error
// (stack underflow, an opcode without a handler, a memory limit violation or,
// in strict mode, truncated push data) aborts the run and no result is
// returned. Either way the interpreter is reset for the next run, except for
// its storage.
//
// Run 执行代码直到越过代码末尾或遇到停机指令；致命错误会中止执行并且不返回结果。
func (in *EVMInterpreter) Run(code []byte, ctx *Context) (res *ExecutionResult, err error) {
	var (
		hash     = crypto.Keccak256Hash(code)
		contract = NewContract(code, hash, ctx.tx())
		op       OpCode
		mem      = in.mem
		stack    = newstack()
		scope    = &ScopeContext{
			Memory:   mem,
			Stack:    stack,
			Contract: contract,
			Context:  ctx,
		}
		// For optimisation reason we're using uint64 as the program counter.
		// It's theoretically possible to go above 2^64. The YP defines the PC
		// to be uint256. Practically much less so feasible.
		pc    = uint64(0)
		sig   signal
		hooks = in.cfg.Tracer
	)
	// Don't move this deferred function, the result snapshot has to be taken
	// before the stack is returned to the pool.
	defer func() {
		returnStack(stack)
		in.resetRun()
	}()
	contract.jumpdests = in.analyse(hash, code)

	if hooks != nil && hooks.OnStart != nil {
		hooks.OnStart(code, hash)
	}
	in.logger.Debug("Interpreter run started", "codehash", hash, "size", len(code), "jumpdests", len(contract.jumpdests))

	// The Interpreter main run loop. This loop runs until either an exiting
	// instruction is executed, an error occurred during the execution of one
	// of the operations or the program counter leaves the code.
	for pc < uint64(len(code)) {
		op, err = contract.GetOp(pc)
		if err != nil {
			break
		}
		operation := in.table[op]
		if operation == nil {
			err = &ErrInvalidOpCode{opcode: op, pc: pc}
			break
		}
		// Validate stack
		if sLen := stack.len(); sLen < operation.minStack {
			err = &ErrStackUnderflow{stackLen: sLen, required: operation.minStack}
			break
		}
		// calculate the new memory size and expand the memory to fit
		// the operation
		if operation.memorySize != nil {
			memSize, overflow := operation.memorySize(stack)
			if overflow {
				err = ErrGasUintOverflow
				break
			}
			// memory is expanded in words of 32 bytes.
			if memSize > 0 {
				words := toWordSize(memSize)
				if words > in.cfg.MaxMemory/32 {
					err = ErrMemoryLimit
					break
				}
				mem.Resize(words * 32)
			}
		}
		if hooks != nil && hooks.OnOpcode != nil {
			hooks.OnOpcode(pc, byte(op), scope, nil)
		}
		// execute the operation
		sig, err = operation.execute(&pc, in, scope)
		if err != nil || sig.exit {
			break
		}
		pc++
	}
	if err != nil {
		if hooks != nil && hooks.OnFault != nil {
			hooks.OnFault(pc, byte(op), scope, VMErrorFromErr(err))
		}
		in.logger.Debug("Interpreter run aborted", "pc", pc, "op", op, "err", err)
		return nil, err
	}
	res = &ExecutionResult{
		Stack:      stack.snapshot(),
		Success:    sig.code == ExitSuccess,
		ExitCode:   sig.code,
		Log:        in.lastLog,
		ReturnData: in.returnData,
	}
	if hooks != nil && hooks.OnHalt != nil {
		hooks.OnHalt(pc, uint8(sig.code), res.ReturnData)
	}
	in.logger.Debug("Interpreter run finished", "pc", pc, "exitcode", sig.code, "stack", len(res.Stack))
	return res, nil
}
