package host

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/journal"
)

// DummyHost is a minimal Host that never consults a database: balances,
// code, and accounts always read as empty and warm, storage (cold on first
// access only) and transient storage are plain maps, and Selfdestruct
// panics. It exists for
// unit-testing interpreter logic that touches the Host boundary without
// wiring a full JournaledState.
type DummyHost struct {
	env              Env
	storage          map[evmtypes.Hash]*evmtypes.U256
	transientStorage map[evmtypes.Hash]*evmtypes.U256
	logs             []*types.Log
}

// NewDummyHost constructs a DummyHost with the given environment.
func NewDummyHost(env Env) *DummyHost {
	return &DummyHost{
		env:              env,
		storage:          make(map[evmtypes.Hash]*evmtypes.U256),
		transientStorage: make(map[evmtypes.Hash]*evmtypes.U256),
	}
}

// Clear empties storage and logs, leaving the environment untouched.
func (h *DummyHost) Clear() {
	h.storage = make(map[evmtypes.Hash]*evmtypes.U256)
	h.logs = nil
}

func (h *DummyHost) Env() *Env { return &h.env }

func (h *DummyHost) LoadAccount(evmtypes.Address) (*LoadAccountResult, bool) {
	return &LoadAccountResult{}, true
}

func (h *DummyHost) BlockHash(uint64) (evmtypes.Hash, bool) {
	return evmtypes.Hash{}, true
}

func (h *DummyHost) Balance(evmtypes.Address) (*evmtypes.U256, bool, bool) {
	return uint256.NewInt(0), false, true
}

func (h *DummyHost) Code(evmtypes.Address) ([]byte, bool, bool) {
	return nil, false, true
}

func (h *DummyHost) CodeHash(evmtypes.Address) (evmtypes.Hash, bool, bool) {
	return evmtypes.KeccakEmpty, false, true
}

func (h *DummyHost) SLoad(_ evmtypes.Address, index *evmtypes.U256) (*evmtypes.U256, bool, bool) {
	key := evmtypes.Hash(index.Bytes32())
	if v, ok := h.storage[key]; ok {
		return v, false, true
	}
	zero := uint256.NewInt(0)
	h.storage[key] = zero
	return zero, true, true
}

func (h *DummyHost) SStore(_ evmtypes.Address, index, value *evmtypes.U256) (*journal.SStoreResult, bool) {
	key := evmtypes.Hash(index.Bytes32())
	present, ok := h.storage[key]
	isCold := !ok
	if !ok {
		present = uint256.NewInt(0)
	}
	h.storage[key] = value
	return &journal.SStoreResult{
		Original: uint256.NewInt(0),
		Present:  present,
		New:      value,
		IsCold:   isCold,
	}, true
}

func (h *DummyHost) TLoad(_ evmtypes.Address, index *evmtypes.U256) *evmtypes.U256 {
	key := evmtypes.Hash(index.Bytes32())
	if v, ok := h.transientStorage[key]; ok {
		return v
	}
	return uint256.NewInt(0)
}

func (h *DummyHost) TStore(_ evmtypes.Address, index, value *evmtypes.U256) {
	h.transientStorage[evmtypes.Hash(index.Bytes32())] = value
}

func (h *DummyHost) Log(log *types.Log) {
	h.logs = append(h.logs, log)
}

// SelfDestruct is unsupported by DummyHost and panics; a test that needs
// selfdestruct semantics must use a JournaledState-backed host.
func (h *DummyHost) SelfDestruct(evmtypes.Address, evmtypes.Address) (*journal.SelfDestructResult, bool) {
	panic("Selfdestruct is not supported for this host")
}
