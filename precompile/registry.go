package precompile

import (
	"errors"

	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/specid"
)

var (
	addrEcrecover = evmtypes.Address{0x01}
	addrSha256    = evmtypes.Address{0x02}
	addrRipemd160 = evmtypes.Address{0x03}
	addrIdentity  = evmtypes.Address{0x04}
)

// ForSpec returns the Registry active for the given hardfork. Only the
// always-present address-0x04 identity precompile is fully implemented;
// 0x01-0x03 are registered but return a fatal "not wired" error, since
// their cryptography lives outside this module's scope (see DESIGN.md).
func ForSpec(spec specid.SpecId) *Registry {
	r := NewRegistry()
	r.Register(addrEcrecover, notWired("ecrecover"))
	r.Register(addrSha256, notWired("sha256"))
	r.Register(addrRipemd160, notWired("ripemd160"))
	r.Register(addrIdentity, identity)
	return r
}

func notWired(name string) Precompile {
	return func(_ []byte, _ uint64) (*Output, *Errors) {
		return nil, &Errors{Fatal: errors.New(name + " precompile is not wired")}
	}
}

// identity gas cost follows the Ethereum yellow paper: a flat base cost
// plus a per-32-byte-word cost, matching every EVM implementation's
// address-0x04 handler.
const (
	identityBaseGas = 15
	identityWordGas = 3
)

func identity(input []byte, gasLimit uint64) (*Output, *Errors) {
	words := (len(input) + 31) / 32
	gas := identityBaseGas + identityWordGas*uint64(words)
	if gas > gasLimit {
		return nil, &Errors{Recoverable: true, IsOOG: true}
	}
	out := make([]byte, len(input))
	copy(out, input)
	return &Output{GasUsed: gas, Bytes: out}, nil
}
