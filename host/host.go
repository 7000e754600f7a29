// Package host defines the boundary between the interpreter and everything
// outside a single call frame: block/tx environment, account and storage
// reads with cold/warm reporting, and log emission.
package host

import (
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/journal"
)

// BlockEnv carries the block-level values the interpreter's BLOCKHASH,
// COINBASE, TIMESTAMP, and related opcodes read.
type BlockEnv struct {
	Number      uint64
	Timestamp   uint64
	GasLimit    uint64
	Coinbase    evmtypes.Address
	BaseFee     *evmtypes.U256
	Difficulty  *evmtypes.U256
	BlobBaseFee *evmtypes.U256
}

// TxEnv carries the transaction-level values the interpreter's ORIGIN,
// GASPRICE, and related opcodes read.
type TxEnv struct {
	Caller   evmtypes.Address
	GasPrice *evmtypes.U256
	GasLimit uint64
}

// CfgEnv carries chain-level configuration that is constant across blocks.
type CfgEnv struct {
	ChainID uint64
}

// Env bundles the chain, block, and transaction environment, mirroring what
// an InnerContext hands to a Host implementation.
type Env struct {
	Cfg   CfgEnv
	Block BlockEnv
	Tx    TxEnv
}

// LoadAccountResult reports whether an address is a delegated account
// (EIP-7702) in addition to whether the load was cold.
type LoadAccountResult struct {
	IsCold     bool
	IsDelegate bool
}

// Host is the set of effects an executing frame may have on the world
// outside itself. A concrete implementation is normally backed by a
// JournaledState plus a Database; DummyHost is a minimal in-memory stand-in
// for testing interpreter logic in isolation.
type Host interface {
	Env() *Env

	LoadAccount(address evmtypes.Address) (*LoadAccountResult, bool)
	BlockHash(number uint64) (evmtypes.Hash, bool)
	Balance(address evmtypes.Address) (*evmtypes.U256, bool, bool)
	Code(address evmtypes.Address) ([]byte, bool, bool)
	CodeHash(address evmtypes.Address) (evmtypes.Hash, bool, bool)

	SLoad(address evmtypes.Address, index *evmtypes.U256) (*evmtypes.U256, bool, bool)
	SStore(address evmtypes.Address, index, value *evmtypes.U256) (*journal.SStoreResult, bool)

	TLoad(address evmtypes.Address, index *evmtypes.U256) *evmtypes.U256
	TStore(address evmtypes.Address, index, value *evmtypes.U256)

	Log(log *types.Log)

	SelfDestruct(address, target evmtypes.Address) (*journal.SelfDestructResult, bool)
}
