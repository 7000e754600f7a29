package db

import (
	"sync"

	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/holiman/uint256"
)

// MemoryDatabase is a map-backed Database reference implementation used by
// tests. No errors are ever returned and a missing account is nil rather
// than a sentinel, matching an in-memory store that cannot fail.
type MemoryDatabase struct {
	mu       sync.RWMutex
	accounts map[evmtypes.Address]*evmtypes.AccountInfo
	code     map[evmtypes.Hash][]byte
	storage  map[evmtypes.Address]map[evmtypes.Hash]*evmtypes.U256
	hashes   map[uint64]evmtypes.Hash
}

// NewMemoryDatabase returns an empty in-memory Database.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		accounts: make(map[evmtypes.Address]*evmtypes.AccountInfo),
		code:     make(map[evmtypes.Hash][]byte),
		storage:  make(map[evmtypes.Address]map[evmtypes.Hash]*evmtypes.U256),
		hashes:   make(map[uint64]evmtypes.Hash),
	}
}

// SetAccount installs or overwrites an account header. Passing code
// alongside also registers it under CodeByHash.
func (m *MemoryDatabase) SetAccount(addr evmtypes.Address, info *evmtypes.AccountInfo, code []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[addr] = cloneAccountInfo(info)
	if len(code) > 0 {
		m.code[info.CodeHash] = append([]byte(nil), code...)
	}
}

// cloneAccountInfo deep-copies the Balance pointer so the returned
// AccountInfo shares no balance with the caller or with anything a later
// Basic() call returns: a journal mutates balances in place, and that must
// not corrupt the backing store. The Code slice is not copied.
func cloneAccountInfo(info *evmtypes.AccountInfo) *evmtypes.AccountInfo {
	cp := *info
	if info.Balance != nil {
		cp.Balance = new(uint256.Int).Set(info.Balance)
	}
	return &cp
}

// SetStorage installs a storage slot for addr.
func (m *MemoryDatabase) SetStorage(addr evmtypes.Address, key evmtypes.Hash, value *evmtypes.U256) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(map[evmtypes.Hash]*evmtypes.U256)
		m.storage[addr] = slots
	}
	slots[key] = value
}

// SetBlockHash registers the canonical hash for a given block number.
func (m *MemoryDatabase) SetBlockHash(number uint64, hash evmtypes.Hash) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hashes[number] = hash
}

func (m *MemoryDatabase) Basic(addr evmtypes.Address) (*evmtypes.AccountInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.accounts[addr]
	if !ok {
		return nil, nil
	}
	return cloneAccountInfo(info), nil
}

func (m *MemoryDatabase) CodeByHash(hash evmtypes.Hash) ([]byte, error) {
	if hash == evmtypes.KeccakEmpty {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.code[hash]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), code...), nil
}

func (m *MemoryDatabase) Storage(addr evmtypes.Address, key evmtypes.Hash) (*evmtypes.U256, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	slots, ok := m.storage[addr]
	if !ok {
		return uint256.NewInt(0), nil
	}
	v, ok := slots[key]
	if !ok {
		return uint256.NewInt(0), nil
	}
	return new(uint256.Int).Set(v), nil
}

func (m *MemoryDatabase) BlockHash(number uint64) (evmtypes.Hash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hashes[number], nil
}
