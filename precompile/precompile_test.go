package precompile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-ethevm/evmcore/specid"
)

func TestForSpecAddressesIncludesAllFour(t *testing.T) {
	r := ForSpec(specid.Cancun)
	addrs := r.Addresses()
	require.True(t, addrs.Contains(addrEcrecover))
	require.True(t, addrs.Contains(addrSha256))
	require.True(t, addrs.Contains(addrRipemd160))
	require.True(t, addrs.Contains(addrIdentity))
}

func TestIdentityReturnsInputVerbatim(t *testing.T) {
	r := ForSpec(specid.Cancun)
	input := []byte("hello world, this is more than one word")
	out, errs, ok := r.Call(addrIdentity, input, 1_000_000)
	require.True(t, ok)
	require.Nil(t, errs)
	require.Equal(t, input, out.Bytes)
	require.Equal(t, uint64(15+3*2), out.GasUsed)
}

func TestIdentityOutOfGasIsRecoverable(t *testing.T) {
	r := ForSpec(specid.Cancun)
	out, errs, ok := r.Call(addrIdentity, make([]byte, 64), 1)
	require.True(t, ok)
	require.Nil(t, out)
	require.True(t, errs.Recoverable)
	require.True(t, errs.IsOOG)
}

func TestEcrecoverIsFatalNotWired(t *testing.T) {
	r := ForSpec(specid.Cancun)
	out, errs, ok := r.Call(addrEcrecover, nil, 1_000_000)
	require.True(t, ok)
	require.Nil(t, out)
	require.Error(t, errs.Fatal)
}

func TestCallOnNonPrecompileAddressReportsAbsent(t *testing.T) {
	r := ForSpec(specid.Cancun)
	other := addrIdentity
	other[19] = 0xff
	out, errs, ok := r.Call(other, nil, 0)
	_ = out
	_ = errs
	require.False(t, ok)
}
