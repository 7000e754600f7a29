package evmcontext

import (
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/host"
	"github.com/go-ethevm/evmcore/journal"
)

// ContextHost adapts a Context to the host.Host interface, the boundary the
// interpreter's opcode handlers are written against. Its no-error-returning
// methods funnel any database failure into the context's deferred-error
// slot rather than a Go error return, matching how opcode handlers can't
// otherwise signal failure mid-instruction.
type ContextHost struct {
	ctx *Context
}

// NewContextHost wraps ctx as a host.Host.
func NewContextHost(ctx *Context) *ContextHost {
	return &ContextHost{ctx: ctx}
}

func (h *ContextHost) Env() *host.Env { return &h.ctx.Env }

func (h *ContextHost) LoadAccount(address evmtypes.Address) (*host.LoadAccountResult, bool) {
	_, wasCold, err := h.ctx.JournaledState.LoadAccount(address, h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return nil, false
	}
	return &host.LoadAccountResult{IsCold: wasCold}, true
}

func (h *ContextHost) BlockHash(number uint64) (evmtypes.Hash, bool) {
	hash, err := h.ctx.Database.BlockHash(number)
	if err != nil {
		h.ctx.recordError(err)
		return evmtypes.Hash{}, false
	}
	return hash, true
}

func (h *ContextHost) Balance(address evmtypes.Address) (*evmtypes.U256, bool, bool) {
	acc, wasCold, err := h.ctx.JournaledState.LoadAccount(address, h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return nil, false, false
	}
	return acc.Info.Balance, wasCold, true
}

func (h *ContextHost) Code(address evmtypes.Address) ([]byte, bool, bool) {
	acc, wasCold, err := h.ctx.JournaledState.LoadCode(address, h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return nil, false, false
	}
	return acc.Info.Code, wasCold, true
}

func (h *ContextHost) CodeHash(address evmtypes.Address) (evmtypes.Hash, bool, bool) {
	acc, wasCold, err := h.ctx.JournaledState.LoadAccount(address, h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return evmtypes.Hash{}, false, false
	}
	return acc.Info.CodeHash, wasCold, true
}

func (h *ContextHost) SLoad(address evmtypes.Address, index *evmtypes.U256) (*evmtypes.U256, bool, bool) {
	value, wasCold, err := h.ctx.JournaledState.SLoad(address, evmtypes.Hash(index.Bytes32()), h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return nil, false, false
	}
	return value, wasCold, true
}

func (h *ContextHost) SStore(address evmtypes.Address, index, value *evmtypes.U256) (*journal.SStoreResult, bool) {
	result, err := h.ctx.JournaledState.SStore(address, evmtypes.Hash(index.Bytes32()), value, h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return nil, false
	}
	return result, true
}

func (h *ContextHost) TLoad(address evmtypes.Address, index *evmtypes.U256) *evmtypes.U256 {
	return h.ctx.JournaledState.TLoad(address, evmtypes.Hash(index.Bytes32()))
}

func (h *ContextHost) TStore(address evmtypes.Address, index, value *evmtypes.U256) {
	h.ctx.JournaledState.TStore(address, evmtypes.Hash(index.Bytes32()), value)
}

func (h *ContextHost) Log(log *types.Log) {
	h.ctx.JournaledState.Log(log)
}

func (h *ContextHost) SelfDestruct(address, target evmtypes.Address) (*journal.SelfDestructResult, bool) {
	result, err := h.ctx.JournaledState.SelfDestruct(address, target, h.ctx.Database)
	if err != nil {
		h.ctx.recordError(err)
		return nil, false
	}
	return result, true
}
