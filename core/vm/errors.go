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
	"errors"
	"fmt"
	"math"
)

// Fatal interpreter errors. A run that hits one of these is aborted and yields
// no result. Halts such as STOP, REVERT, INVALID or a bad jump target are not
// errors; they are reported through ExecutionResult.
//
// 致命错误会中止执行且不产生结果；STOP、REVERT、INVALID 和无效跳转属于正常的停机结果。
var (
	ErrMissingOpcode       = errors.New("program counter out of range")
	ErrPushDataOutOfBounds = errors.New("push data exceeds code size")
	ErrMemoryLimit         = errors.New("memory limit exceeded")
	ErrGasUintOverflow     = errors.New("memory offset uint64 overflow")

	errStackUnderflow = errors.New("stack underflow")
)

// ErrStackUnderflow wraps an evm error when the items on the stack less
// than the minimal requirement.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

func (e *ErrStackUnderflow) Unwrap() error {
	return errStackUnderflow
}

// ErrInvalidOpCode wraps an evm error when an invalid opcode is encountered.
// 无对应处理函数的操作码（即 UnknownOpcode）。
type ErrInvalidOpCode struct {
	opcode OpCode
	pc     uint64
}

func (e *ErrInvalidOpCode) Error() string {
	return fmt.Sprintf("invalid opcode: %s at pc %d", e.opcode, e.pc)
}

// OpCode returns the offending opcode.
func (e *ErrInvalidOpCode) OpCode() OpCode { return e.opcode }

// rpcError is the same interface as the one defined in rpc/errors.go
// but we do not want to depend on rpc package here so we redefine it.
//
// It's used to ensure that the VMError implements the RPC error interface.
type rpcError interface {
	Error() string  // returns the message
	ErrorCode() int // returns the code
}

var _ rpcError = (*VMError)(nil)

// VMError wraps a VM error with an additional stable error code. The error
// field is the original error that caused the VM error and must be one of the
// VM error defined at the top of this file.
//
// If the error is not one of the known error above, the error code will be
// set to VMErrorCodeUnknown.
type VMError struct {
	error
	code int
}

// VMErrorFromErr wraps err with a stable numeric code, or returns nil.
func VMErrorFromErr(err error) error {
	if err == nil {
		return nil
	}
	return &VMError{
		error: err,
		code:  vmErrorCodeFromErr(err),
	}
}

func (e *VMError) Error() string {
	return e.error.Error()
}

func (e *VMError) Unwrap() error {
	return e.error
}

func (e *VMError) ErrorCode() int {
	return e.code
}

const (
	// We start the error code at 1 so that we can use 0 later for some possible extension. There
	// is no unspecified value for the code today because it should always be set to a valid value
	// that could be VMErrorCodeUnknown if the error is not mapped to a known error code.

	VMErrorCodeStackUnderflow = 1 + iota
	VMErrorCodeInvalidOpCode
	VMErrorCodeMissingOpcode
	VMErrorCodePushDataOutOfBounds
	VMErrorCodeMemoryLimit
	VMErrorCodeGasUintOverflow

	VMErrorCodeUnknown = math.MaxInt - 1
)

func vmErrorCodeFromErr(err error) int {
	switch {
	case errors.Is(err, errStackUnderflow):
		return VMErrorCodeStackUnderflow
	case errors.Is(err, ErrMissingOpcode):
		return VMErrorCodeMissingOpcode
	case errors.Is(err, ErrPushDataOutOfBounds):
		return VMErrorCodePushDataOutOfBounds
	case errors.Is(err, ErrMemoryLimit):
		return VMErrorCodeMemoryLimit
	case errors.Is(err, ErrGasUintOverflow):
		return VMErrorCodeGasUintOverflow
	default:
		// Dynamic errors
		if v := (*ErrInvalidOpCode)(nil); errors.As(err, &v) {
			return VMErrorCodeInvalidOpCode
		}
		return VMErrorCodeUnknown
	}
}
