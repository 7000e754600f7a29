package evmcontext

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/go-ethevm/evmcore/db"
	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/host"
	"github.com/go-ethevm/evmcore/specid"
)

func TestNewContextPrewarmsPrecompiles(t *testing.T) {
	d := db.NewMemoryDatabase()
	ctx := NewContext(specid.Cancun, host.Env{}, d)

	identity := evmtypes.Address{0x04}
	_, wasCold, err := ctx.JournaledState.LoadAccount(identity, d)
	require.NoError(t, err)
	require.False(t, wasCold)
}

func TestContextHostSStoreAndSLoadRoundTrip(t *testing.T) {
	d := db.NewMemoryDatabase()
	ctx := NewContext(specid.Cancun, host.Env{}, d)
	h := NewContextHost(ctx)

	addr := evmtypes.Address{0x01}
	index := uint256.NewInt(3)
	value := uint256.NewInt(99)

	_, ok := h.SStore(addr, index, value)
	require.True(t, ok)

	got, _, ok2 := h.SLoad(addr, index)
	require.True(t, ok2)
	require.True(t, got.Eq(value))
}

func TestNewContextPrewarmsCoinbaseFromShanghai(t *testing.T) {
	coinbase := evmtypes.Address{0xc0}
	env := host.Env{Block: host.BlockEnv{Coinbase: coinbase}}

	d := db.NewMemoryDatabase()
	ctx := NewContext(specid.Shanghai, env, d)
	_, wasCold, err := ctx.JournaledState.LoadAccount(coinbase, d)
	require.NoError(t, err)
	require.False(t, wasCold)

	pre := NewContext(specid.Merge, env, d)
	_, wasCold, err = pre.JournaledState.LoadAccount(coinbase, d)
	require.NoError(t, err)
	require.True(t, wasCold)
}

// failingDatabase errors on every read, exercising the deferred-error slot.
type failingDatabase struct{}

func (failingDatabase) Basic(evmtypes.Address) (*evmtypes.AccountInfo, error) {
	return nil, errors.New("backing store unavailable")
}

func (failingDatabase) CodeByHash(evmtypes.Hash) ([]byte, error) {
	return nil, errors.New("backing store unavailable")
}

func (failingDatabase) Storage(evmtypes.Address, evmtypes.Hash) (*evmtypes.U256, error) {
	return nil, errors.New("backing store unavailable")
}

func (failingDatabase) BlockHash(uint64) (evmtypes.Hash, error) {
	return evmtypes.Hash{}, errors.New("backing store unavailable")
}

func TestContextHostDefersDatabaseError(t *testing.T) {
	ctx := NewContext(specid.Cancun, host.Env{}, failingDatabase{})
	h := NewContextHost(ctx)

	bal, _, ok := h.Balance(evmtypes.Address{0x09})
	require.False(t, ok)
	require.Nil(t, bal)

	err := ctx.TakeError()
	require.Error(t, err)
	// The slot is cleared once taken.
	require.NoError(t, ctx.TakeError())
}

func TestContextHostKeepsFirstDeferredError(t *testing.T) {
	ctx := NewContext(specid.Cancun, host.Env{}, failingDatabase{})
	h := NewContextHost(ctx)

	_, _, first := h.Balance(evmtypes.Address{0x01})
	require.False(t, first)
	_, second := h.BlockHash(1)
	require.False(t, second)

	// Only Balance's error is wrapped with "loading account"; BlockHash's is not.
	require.ErrorContains(t, ctx.TakeError(), "loading account")
	require.NoError(t, ctx.TakeError())
}

func TestContextHostBlockHashSurfacesDatabaseValue(t *testing.T) {
	d := db.NewMemoryDatabase()
	want := evmtypes.Hash{0xaa}
	d.SetBlockHash(7, want)
	ctx := NewContext(specid.Cancun, host.Env{}, d)
	h := NewContextHost(ctx)

	got, ok := h.BlockHash(7)
	require.True(t, ok)
	require.Equal(t, want, got)
}
