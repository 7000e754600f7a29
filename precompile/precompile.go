// Package precompile dispatches calls to addresses reserved for built-in
// contracts (ecrecover, sha256, identity, and so on), outside the normal
// bytecode-interpreter path.
package precompile

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/go-ethevm/evmcore/evmtypes"
)

// Output is a successful precompile execution: the gas it consumed and the
// bytes it produced.
type Output struct {
	GasUsed uint64
	Bytes   []byte
}

// Errors distinguishes a recoverable failure (charged gas, call reverts)
// from a fatal one (the EVM itself cannot continue), matching the
// taxonomy a Host-facing executor needs to translate into InstructionResult.
type Errors struct {
	// Fatal is set for an error the executor cannot recover from (e.g. a
	// malformed precompile registry entry). A nil Fatal means a recoverable
	// failure: MakeCallFrame reverts the call with PrecompileOOG when IsOOG
	// is set and PrecompileError otherwise.
	Fatal       error
	Recoverable bool
	IsOOG       bool
}

func (e *Errors) Error() string {
	if e.Fatal != nil {
		return e.Fatal.Error()
	}
	return "precompile execution error"
}

// Precompile is a single built-in contract implementation.
type Precompile func(input []byte, gasLimit uint64) (*Output, *Errors)

// Registry maps reserved addresses to their implementation, scoped to one
// hardfork: later forks add or repoint addresses, so a frame builder
// consults a Registry rather than a global table.
type Registry struct {
	byAddress map[evmtypes.Address]Precompile
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byAddress: make(map[evmtypes.Address]Precompile)}
}

// Register installs fn at addr, overwriting any previous entry.
func (r *Registry) Register(addr evmtypes.Address, fn Precompile) {
	r.byAddress[addr] = fn
}

// Addresses returns the set of addresses this Registry serves, used to seed
// a JournaledState's pre-warmed address set.
func (r *Registry) Addresses() mapset.Set[evmtypes.Address] {
	set := mapset.NewThreadUnsafeSet[evmtypes.Address]()
	for addr := range r.byAddress {
		set.Add(addr)
	}
	return set
}

// Call dispatches to the precompile at addr, if any. A nil Output and nil
// Errors (with ok == false) means addr is not a precompile at all, and the
// caller should fall through to normal bytecode execution.
func (r *Registry) Call(addr evmtypes.Address, input []byte, gasLimit uint64) (*Output, *Errors, bool) {
	fn, ok := r.byAddress[addr]
	if !ok {
		return nil, nil, false
	}
	out, errs := fn(input, gasLimit)
	return out, errs, true
}
