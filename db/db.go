// Package db defines the narrow, read-oriented storage abstraction that
// JournaledState loads accounts, code, and storage through. It is
// deliberately smaller than the Host interface: callers that need warm/cold
// tracking or logs go through journal/host instead.
package db

import "github.com/go-ethevm/evmcore/evmtypes"

// Database is the backing-store contract consumed by JournaledState. A
// real implementation wraps a trie/KV store; errors are implementation
// defined and surface to callers as evmcontext's deferred database error.
type Database interface {
	// Basic returns the account header for addr, or nil if the account
	// does not exist.
	Basic(addr evmtypes.Address) (*evmtypes.AccountInfo, error)
	// CodeByHash returns the bytecode for a previously-seen code hash.
	CodeByHash(hash evmtypes.Hash) ([]byte, error)
	// Storage returns the value stored at key in addr's storage.
	Storage(addr evmtypes.Address, key evmtypes.Hash) (*evmtypes.U256, error)
	// BlockHash resolves the canonical hash of the block at number.
	BlockHash(number uint64) (evmtypes.Hash, error)
}
