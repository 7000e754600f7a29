package frame

import (
	"github.com/pkg/errors"

	"github.com/go-ethevm/evmcore/evmcontext"
	"github.com/go-ethevm/evmcore/evmtypes"
)

// MakeCreateFrame resolves a CREATE/CREATE2 request: it checks the depth
// limit and caller balance, bumps the caller's nonce, checks for address
// collision against an existing account with code or a non-zero nonce, and
// otherwise hands back a CreateFrame ready for the interpreter to run the
// init code. The caller computes createdAddress (CREATE nonce-derived or
// CREATE2 salt-derived) before entry.
func MakeCreateFrame(ctx *evmcontext.Context, inputs *evmtypes.CreateInputs, createdAddress evmtypes.Address) (*evmtypes.FrameOrResult, error) {
	js := ctx.JournaledState

	if js.Depth() > CallStackLimit {
		return createResult(evmtypes.CallTooDeep, inputs.GasLimit), nil
	}

	callerAcc, _, err := js.LoadAccount(inputs.Caller, ctx.Database)
	if err != nil {
		return nil, errors.Wrap(err, "loading create caller")
	}
	value := valueOrZero(inputs.Value)
	if callerAcc.Info.Balance.Lt(value) {
		return createResult(evmtypes.OutOfFunds, inputs.GasLimit), nil
	}

	checkpoint := js.Checkpoint()
	js.SetNonce(inputs.Caller, callerAcc.Info.Nonce+1)

	targetAcc, _, err := js.LoadAccount(createdAddress, ctx.Database)
	if err != nil {
		return nil, errors.Wrap(err, "loading create target")
	}
	if targetAcc.Info.Nonce != 0 || targetAcc.Info.CodeHash != evmtypes.KeccakEmpty {
		js.CheckpointRevert(checkpoint)
		return createResult(evmtypes.CreateCollision, inputs.GasLimit), nil
	}

	if !value.IsZero() {
		if result, err := js.Transfer(inputs.Caller, createdAddress, value, ctx.Database); err != nil {
			return nil, errors.Wrap(err, "transferring create value")
		} else if result != nil {
			js.CheckpointRevert(checkpoint)
			return createResult(*result, inputs.GasLimit), nil
		}
	}
	js.SetNonce(createdAddress, 1)

	contract := &evmtypes.Contract{
		Caller:          inputs.Caller,
		Address:         createdAddress,
		BytecodeAddress: createdAddress,
		Code:            inputs.InitCode,
		Input:           nil,
		Value:           value,
	}
	return &evmtypes.FrameOrResult{
		Frame: &evmtypes.Frame{
			Create: &evmtypes.CreateFrame{
				Checkpoint:     checkpoint,
				Contract:       contract,
				GasLimit:       inputs.GasLimit,
				CreatedAddress: createdAddress,
			},
		},
	}, nil
}

func createResult(instructionResult evmtypes.InstructionResult, gasLimit uint64) *evmtypes.FrameOrResult {
	return &evmtypes.FrameOrResult{
		Result: &evmtypes.InterpreterResult{
			Result:       instructionResult,
			GasLimit:     gasLimit,
			GasRemaining: gasLimit,
		},
	}
}
