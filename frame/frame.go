// Package frame builds the next call or create frame for the interpreter
// loop to push, handling depth limits, value transfer, precompile dispatch,
// and the empty-bytecode short-circuit before any interpreter bytecode runs.
package frame

import (
	"github.com/pkg/errors"

	"github.com/go-ethevm/evmcore/evmcontext"
	"github.com/go-ethevm/evmcore/evmtypes"
)

// CallStackLimit is the maximum nesting depth a call/create chain may
// reach before further calls fail with CallTooDeep.
const CallStackLimit = 1024

func callResult(instructionResult evmtypes.InstructionResult, gasLimit uint64, returnRange [2]uint64) *evmtypes.FrameOrResult {
	return &evmtypes.FrameOrResult{
		Result: &evmtypes.InterpreterResult{
			Result:       instructionResult,
			GasLimit:     gasLimit,
			GasRemaining: gasLimit,
		},
		ReturnMemoryRange: returnRange,
	}
}

// MakeCallFrame resolves inputs against the current journaled state: it
// checks the depth limit, loads the code at the bytecode address, opens a checkpoint,
// performs the EIP-161 touch or value transfer, tries precompile dispatch,
// and otherwise hands back a CallFrame ready for the interpreter to run. A
// non-nil, non-Frame FrameOrResult means the call is already fully decided
// (too deep, out of funds, precompile output, or empty-code stop) and the
// checkpoint has already been committed or reverted accordingly.
func MakeCallFrame(ctx *evmcontext.Context, inputs *evmtypes.CallInputs) (*evmtypes.FrameOrResult, error) {
	js := ctx.JournaledState

	if js.Depth() > CallStackLimit {
		return callResult(evmtypes.CallTooDeep, inputs.GasLimit, inputs.ReturnMemoryRange), nil
	}

	account, _, err := js.LoadCode(inputs.BytecodeAddress, ctx.Database)
	if err != nil {
		return nil, errors.Wrap(err, "loading callee code")
	}
	codeHash := account.Info.CodeHash
	bytecode := account.Info.Code

	checkpoint := js.Checkpoint()

	if inputs.Value.IsZeroTransfer() {
		if _, _, err := js.LoadAccount(inputs.TargetAddress, ctx.Database); err != nil {
			return nil, errors.Wrap(err, "touching call target")
		}
		js.Touch(inputs.TargetAddress)
	} else if !inputs.Value.Apparent && inputs.Value.Transfer != nil {
		result, err := js.Transfer(inputs.Caller, inputs.TargetAddress, inputs.Value.Transfer, ctx.Database)
		if err != nil {
			return nil, errors.Wrap(err, "transferring call value")
		}
		if result != nil {
			js.CheckpointRevert(checkpoint)
			return callResult(*result, inputs.GasLimit, inputs.ReturnMemoryRange), nil
		}
	}

	if out, precompileErr, handled := ctx.Precompiles.Call(inputs.BytecodeAddress, inputs.Input, inputs.GasLimit); handled {
		interp := &evmtypes.InterpreterResult{GasLimit: inputs.GasLimit, GasRemaining: inputs.GasLimit}
		switch {
		case precompileErr != nil && precompileErr.Fatal != nil:
			return nil, errors.Wrap(precompileErr.Fatal, "precompile execution")
		case precompileErr != nil:
			if precompileErr.IsOOG {
				interp.Result = evmtypes.PrecompileOOG
			} else {
				interp.Result = evmtypes.PrecompileError
			}
			js.CheckpointRevert(checkpoint)
		default:
			if interp.RecordCost(out.GasUsed) {
				interp.Result = evmtypes.Return
				interp.Output = out.Bytes
				js.CheckpointCommit()
			} else {
				interp.Result = evmtypes.PrecompileOOG
				js.CheckpointRevert(checkpoint)
			}
		}
		return &evmtypes.FrameOrResult{Result: interp, ReturnMemoryRange: inputs.ReturnMemoryRange}, nil
	}

	if len(bytecode) > 0 {
		contract := &evmtypes.Contract{
			Caller:          inputs.Caller,
			Address:         inputs.TargetAddress,
			BytecodeAddress: inputs.BytecodeAddress,
			Code:            bytecode,
			CodeHash:        codeHash,
			Input:           inputs.Input,
			Value:           valueOrZero(inputs.Value.Transfer),
			IsStatic:        inputs.IsStatic,
		}
		return &evmtypes.FrameOrResult{
			Frame: &evmtypes.Frame{
				Call: &evmtypes.CallFrame{
					ReturnMemoryRange: inputs.ReturnMemoryRange,
					Checkpoint:        checkpoint,
					Contract:          contract,
					GasLimit:          inputs.GasLimit,
					IsStatic:          inputs.IsStatic,
				},
			},
		}, nil
	}

	js.CheckpointCommit()
	return callResult(evmtypes.Stop, inputs.GasLimit, inputs.ReturnMemoryRange), nil
}

func valueOrZero(v *evmtypes.U256) *evmtypes.U256 {
	if v == nil {
		return new(evmtypes.U256)
	}
	return v
}
