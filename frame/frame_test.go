package frame

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/go-ethevm/evmcore/db"
	"github.com/go-ethevm/evmcore/evmcontext"
	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/host"
	"github.com/go-ethevm/evmcore/specid"
)

func newTestContext() (*evmcontext.Context, *db.MemoryDatabase) {
	d := db.NewMemoryDatabase()
	return evmcontext.NewContext(specid.Cancun, host.Env{}, d), d
}

func mockCallInputs(to evmtypes.Address) *evmtypes.CallInputs {
	return &evmtypes.CallInputs{
		Input:           nil,
		GasLimit:        0,
		BytecodeAddress: to,
		TargetAddress:   to,
		Caller:          evmtypes.Address{},
		Value:           evmtypes.CallValue{Transfer: uint256.NewInt(0)},
	}
}

func TestMakeCallFrameStackTooDeep(t *testing.T) {
	ctx, _ := newTestContext()
	for ctx.JournaledState.Depth() <= CallStackLimit {
		ctx.JournaledState.Checkpoint()
	}
	contract := evmtypes.Address{0xde, 0xad, 0x10}
	res, err := MakeCallFrame(ctx, mockCallInputs(contract))
	require.NoError(t, err)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.CallTooDeep, res.Result.Result)
}

func TestMakeCallFrameTransferRevert(t *testing.T) {
	ctx, _ := newTestContext()
	contract := evmtypes.Address{0xde, 0xad, 0x10}
	inputs := mockCallInputs(contract)
	inputs.Value = evmtypes.CallValue{Transfer: uint256.NewInt(1)}

	res, err := MakeCallFrame(ctx, inputs)
	require.NoError(t, err)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.OutOfFunds, res.Result.Result)
	require.Equal(t, 0, ctx.JournaledState.Depth())
}

func TestMakeCallFrameMissingCodeStops(t *testing.T) {
	ctx, d := newTestContext()
	contract := evmtypes.Address{0xde, 0xad, 0x10}
	bal := uint256.NewInt(3_000_000_000)
	d.SetAccount(evmtypes.Address{}, &evmtypes.AccountInfo{Balance: bal, CodeHash: evmtypes.KeccakEmpty}, nil)

	res, err := MakeCallFrame(ctx, mockCallInputs(contract))
	require.NoError(t, err)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.Stop, res.Result.Result)
}

func TestMakeCallFrameSucceedsWithBytecode(t *testing.T) {
	ctx, d := newTestContext()
	contract := evmtypes.Address{0xde, 0xad, 0x10}
	code := []byte{0x60, 0x00, 0x60, 0x00}
	bal := uint256.NewInt(3_000_000_000)
	codeHash := evmtypes.KeccakEmpty
	codeHash[0] = 0x01
	d.SetAccount(contract, &evmtypes.AccountInfo{Balance: bal, CodeHash: codeHash}, code)

	res, err := MakeCallFrame(ctx, mockCallInputs(contract))
	require.NoError(t, err)
	require.NotNil(t, res.Frame)
	require.NotNil(t, res.Frame.Call)
	require.Equal(t, [2]uint64{0, 0}, res.Frame.Call.ReturnMemoryRange)
}

func TestMakeCallFrameZeroTransferTouchesTarget(t *testing.T) {
	ctx, d := newTestContext()
	contract := evmtypes.Address{0xaa}
	_, err := MakeCallFrame(ctx, mockCallInputs(contract))
	require.NoError(t, err)

	acc, _, err := ctx.JournaledState.LoadAccount(contract, d)
	require.NoError(t, err)
	require.True(t, acc.Touched)
}

func TestMakeCallFramePrecompileWinsOverDeployedCode(t *testing.T) {
	ctx, d := newTestContext()
	identity := evmtypes.Address{0x04}
	codeHash := evmtypes.KeccakEmpty
	codeHash[0] = 0x01
	d.SetAccount(identity, &evmtypes.AccountInfo{Balance: uint256.NewInt(0), CodeHash: codeHash}, []byte{0x60, 0x00})

	inputs := mockCallInputs(identity)
	inputs.Input = []byte("echo")
	inputs.GasLimit = 1_000_000

	res, err := MakeCallFrame(ctx, inputs)
	require.NoError(t, err)
	require.Nil(t, res.Frame)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.Return, res.Result.Result)
	require.Equal(t, []byte("echo"), res.Result.Output)
	require.Equal(t, 0, ctx.JournaledState.Depth())
}

func TestMakeCallFramePrecompileOutOfGasReverts(t *testing.T) {
	ctx, _ := newTestContext()
	identity := evmtypes.Address{0x04}
	inputs := mockCallInputs(identity)
	inputs.Input = make([]byte, 64)
	inputs.GasLimit = 1

	res, err := MakeCallFrame(ctx, inputs)
	require.NoError(t, err)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.PrecompileOOG, res.Result.Result)
	require.Equal(t, 0, ctx.JournaledState.Depth())
}

func TestMakeCallFrameFatalPrecompileAborts(t *testing.T) {
	ctx, _ := newTestContext()
	ecrecover := evmtypes.Address{0x01}
	inputs := mockCallInputs(ecrecover)
	inputs.GasLimit = 1_000_000

	_, err := MakeCallFrame(ctx, inputs)
	require.Error(t, err)
}

func TestMakeCallFrameResultCarriesReturnRange(t *testing.T) {
	ctx, _ := newTestContext()
	for ctx.JournaledState.Depth() <= CallStackLimit {
		ctx.JournaledState.Checkpoint()
	}
	inputs := mockCallInputs(evmtypes.Address{0xbb})
	inputs.ReturnMemoryRange = [2]uint64{32, 96}

	res, err := MakeCallFrame(ctx, inputs)
	require.NoError(t, err)
	require.Equal(t, [2]uint64{32, 96}, res.ReturnMemoryRange)
}

func TestMakeCreateFrameOutOfFunds(t *testing.T) {
	ctx, _ := newTestContext()
	inputs := &evmtypes.CreateInputs{GasLimit: 100, Caller: evmtypes.Address{0x01}, Value: uint256.NewInt(5)}
	res, err := MakeCreateFrame(ctx, inputs, evmtypes.Address{0x02})
	require.NoError(t, err)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.OutOfFunds, res.Result.Result)
}

func TestMakeCreateFrameCollision(t *testing.T) {
	ctx, d := newTestContext()
	caller := evmtypes.Address{0x01}
	target := evmtypes.Address{0x02}
	d.SetAccount(caller, &evmtypes.AccountInfo{Balance: uint256.NewInt(100), CodeHash: evmtypes.KeccakEmpty}, nil)
	d.SetAccount(target, &evmtypes.AccountInfo{Nonce: 1, Balance: uint256.NewInt(0), CodeHash: evmtypes.KeccakEmpty}, nil)

	inputs := &evmtypes.CreateInputs{GasLimit: 100, Caller: caller, Value: uint256.NewInt(0)}
	res, err := MakeCreateFrame(ctx, inputs, target)
	require.NoError(t, err)
	require.NotNil(t, res.Result)
	require.Equal(t, evmtypes.CreateCollision, res.Result.Result)

	callerAcc, _, err := ctx.JournaledState.LoadAccount(caller, d)
	require.NoError(t, err)
	require.Equal(t, uint64(0), callerAcc.Info.Nonce)
}

func TestMakeCreateFrameSucceeds(t *testing.T) {
	ctx, d := newTestContext()
	caller := evmtypes.Address{0x01}
	target := evmtypes.Address{0x02}
	d.SetAccount(caller, &evmtypes.AccountInfo{Balance: uint256.NewInt(100), CodeHash: evmtypes.KeccakEmpty}, nil)

	inputs := &evmtypes.CreateInputs{GasLimit: 100, Caller: caller, Value: uint256.NewInt(10), InitCode: []byte{0x60, 0x00}}
	res, err := MakeCreateFrame(ctx, inputs, target)
	require.NoError(t, err)
	require.NotNil(t, res.Frame)
	require.NotNil(t, res.Frame.Create)
	require.Equal(t, target, res.Frame.Create.CreatedAddress)

	callerAcc, _, err := ctx.JournaledState.LoadAccount(caller, d)
	require.NoError(t, err)
	require.Equal(t, uint64(1), callerAcc.Info.Nonce)
	require.True(t, callerAcc.Info.Balance.Eq(uint256.NewInt(90)))
}
