// Package evmtypes holds the shared data model consumed across the engine:
// account headers, call/create inputs, frames, and interpreter results. It
// depends only on common/crypto/uint256 so every other package (journal,
// host, frame, precompile) can share one vocabulary without import cycles.
package evmtypes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Address and Hash reuse go-ethereum's wire-compatible 20/32-byte types
// rather than redefining them, so callers can hand values straight to any
// go-ethereum-typed collaborator without conversion.
type (
	Address = common.Address
	Hash    = common.Hash
)

// U256 is a mutable 256-bit unsigned integer in big-endian wire semantics.
type U256 = uint256.Int

// KeccakEmpty is the Keccak-256 hash of the empty byte string: the
// code_hash of any account with no code.
var KeccakEmpty = crypto.Keccak256Hash(nil)

// AccountInfo is an account header as seen by the journaled state and host.
// Code is populated lazily by LoadCode; a nil Code with a non-empty
// CodeHash means the code bytes have not been fetched from the database
// yet.
type AccountInfo struct {
	Nonce    uint64
	Balance  *U256
	CodeHash Hash
	Code     []byte
}

// IsEmpty reports whether this is an EIP-161 "empty" account: zero nonce,
// zero balance, no code.
func (a *AccountInfo) IsEmpty() bool {
	return a.Nonce == 0 && (a.Balance == nil || a.Balance.IsZero()) && a.CodeHash == KeccakEmpty
}

// CallScheme is the opcode that produced a CallInputs.
type CallScheme uint8

const (
	CallSchemeCall CallScheme = iota
	CallSchemeCallCode
	CallSchemeDelegateCall
	CallSchemeStaticCall
)

// CallValue distinguishes a genuine balance transfer (CALL/CALLCODE) from
// an apparent value carried through without moving funds
// (DELEGATECALL/CALLCODE-without-transfer).
type CallValue struct {
	// Transfer, when Apparent is false, is the wei amount debited from the
	// caller and credited to the target.
	Transfer *U256
	// Apparent is true for DELEGATECALL/CALLCODE-style calls where value is
	// informational only; no balance ever moves.
	Apparent bool
}

// IsZeroTransfer reports whether this is a real (non-apparent) transfer of
// zero value.
func (v CallValue) IsZeroTransfer() bool {
	return !v.Apparent && (v.Transfer == nil || v.Transfer.IsZero())
}

// CallInputs is a request to enter a call frame.
type CallInputs struct {
	GasLimit          uint64
	Input             []byte
	Caller            Address
	TargetAddress     Address
	BytecodeAddress   Address
	Value             CallValue
	Scheme            CallScheme
	IsStatic          bool
	IsEOF             bool
	ReturnMemoryRange [2]uint64 // [offset, offset+length)
}

// CreateInputs is a request to enter a create frame.
type CreateInputs struct {
	GasLimit uint64
	Caller   Address
	Value    *U256
	InitCode []byte
	Salt     *U256 // nil for CREATE, set for CREATE2
}

// Contract is the immutable per-frame execution target bound by frame
// construction before an Interpreter steps it.
type Contract struct {
	Caller          Address
	Address         Address
	BytecodeAddress Address
	Code            []byte
	CodeHash        Hash
	Input           []byte
	Value           *U256
	IsStatic        bool
}

// InstructionResult is the terminal status code of a frame.
type InstructionResult uint8

const (
	Stop InstructionResult = iota
	Return
	Revert
	SelfDestruct

	OutOfGas
	InvalidOpcode
	StackOverflow
	StackUnderflow
	InvalidJump
	WriteProtection
	CallTooDeep
	OutOfFunds
	PrecompileOOG
	PrecompileError
	CreateContractSizeLimit
	CreateCollision
	FatalExternalError
)

// IsOk reports whether the result is a normal (non-reverting) termination:
// Stop, Return, or SelfDestruct. Revert and the exceptional halts are not Ok.
func (r InstructionResult) IsOk() bool {
	return r == Stop || r == Return || r == SelfDestruct
}

// InterpreterResult is the output of a completed frame.
type InterpreterResult struct {
	Result       InstructionResult
	GasLimit     uint64
	GasRemaining uint64
	Output       []byte
}

// RecordCost deducts cost from the remaining gas, returning false (without
// mutating) if the remainder is insufficient.
func (g *InterpreterResult) RecordCost(cost uint64) bool {
	if cost > g.GasRemaining {
		return false
	}
	g.GasRemaining -= cost
	return true
}

// CallFrame is a live call execution context awaiting interpreter steps.
type CallFrame struct {
	ReturnMemoryRange [2]uint64
	Checkpoint        JournalCheckpoint
	Contract          *Contract
	GasLimit          uint64
	IsStatic          bool
}

// CreateFrame is a live create execution context awaiting interpreter
// steps.
type CreateFrame struct {
	Checkpoint     JournalCheckpoint
	Contract       *Contract
	GasLimit       uint64
	CreatedAddress Address
}

// Frame is a discriminated union of CallFrame/CreateFrame; exactly one
// field is populated.
type Frame struct {
	Call   *CallFrame
	Create *CreateFrame
}

// FrameOrResult is produced by frame construction: either a live Frame for
// the scheduler to step, or an already-final Result.
type FrameOrResult struct {
	Frame  *Frame
	Result *InterpreterResult
	// ReturnMemoryRange echoes the caller's requested return-data window
	// when Result is populated, so the parent frame can place the output
	// without re-deriving the range from its own call inputs.
	ReturnMemoryRange [2]uint64
}

// JournalCheckpoint is an opaque token naming a rollback point; only the
// journal package knows how to interpret its internals, but frame
// construction threads it through untouched between Checkpoint and
// CheckpointCommit/CheckpointRevert.
type JournalCheckpoint struct {
	JournalIndex int
	Depth        int
}
