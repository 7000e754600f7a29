package host

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/go-ethevm/evmcore/evmtypes"
)

func TestDummyHostSLoadFirstAccessIsCold(t *testing.T) {
	h := NewDummyHost(Env{})
	addr := evmtypes.Address{0x01}
	index := uint256.NewInt(5)

	v, isCold, ok := h.SLoad(addr, index)
	require.True(t, ok)
	require.True(t, isCold)
	require.True(t, v.IsZero())

	v2, isCold2, ok2 := h.SLoad(addr, index)
	require.True(t, ok2)
	require.False(t, isCold2)
	require.True(t, v2.IsZero())
}

func TestDummyHostSStoreReportsCold(t *testing.T) {
	h := NewDummyHost(Env{})
	addr := evmtypes.Address{0x02}
	index := uint256.NewInt(1)

	res, ok := h.SStore(addr, index, uint256.NewInt(9))
	require.True(t, ok)
	require.True(t, res.IsCold)
	require.True(t, res.Present.IsZero())
	require.True(t, res.New.Eq(uint256.NewInt(9)))

	res2, ok2 := h.SStore(addr, index, uint256.NewInt(3))
	require.True(t, ok2)
	require.False(t, res2.IsCold)
	require.True(t, res2.Present.Eq(uint256.NewInt(9)))
}

func TestDummyHostTransientStorageRoundTrip(t *testing.T) {
	h := NewDummyHost(Env{})
	addr := evmtypes.Address{0x03}
	index := uint256.NewInt(2)

	require.True(t, h.TLoad(addr, index).IsZero())
	h.TStore(addr, index, uint256.NewInt(77))
	require.True(t, h.TLoad(addr, index).Eq(uint256.NewInt(77)))
}

func TestDummyHostSelfdestructPanics(t *testing.T) {
	h := NewDummyHost(Env{})
	require.Panics(t, func() {
		h.SelfDestruct(evmtypes.Address{0x04}, evmtypes.Address{0x05})
	})
}

func TestDummyHostBalanceAndCodeReadEmpty(t *testing.T) {
	h := NewDummyHost(Env{})
	addr := evmtypes.Address{0x06}

	bal, isCold, ok := h.Balance(addr)
	require.True(t, ok)
	require.False(t, isCold)
	require.True(t, bal.IsZero())

	code, isCold2, ok2 := h.Code(addr)
	require.True(t, ok2)
	require.False(t, isCold2)
	require.Nil(t, code)

	hash, isCold3, ok3 := h.CodeHash(addr)
	require.True(t, ok3)
	require.False(t, isCold3)
	require.Equal(t, evmtypes.KeccakEmpty, hash)
}
