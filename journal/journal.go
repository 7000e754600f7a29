// Package journal implements the transactional overlay of world state that
// lets nested calls checkpoint, commit, or revert mutations exactly, while
// tracking EIP-2929 warm/cold access and EIP-161 account touching. It sits
// between the Database collaborator and the Host-facing engine.
package journal

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/go-ethevm/evmcore/db"
	"github.com/go-ethevm/evmcore/evmtypes"
	"github.com/go-ethevm/evmcore/specid"
	"github.com/go-ethevm/evmcore/tracing"
)

// CodeCacheSize bounds the LRU cache of code_hash -> bytecode populated by
// LoadCode, keeping repeated CALLs to the same hot contract from re-reading
// the database.
const CodeCacheSize = 4096

type slotKey struct {
	Address evmtypes.Address
	Key     evmtypes.Hash
}

// Account is the in-memory overlay of one account's header, storage, and
// per-transaction flags.
type Account struct {
	Info    evmtypes.AccountInfo
	Storage map[evmtypes.Hash]*evmtypes.U256
	// OriginalStorage holds each slot's value as first observed this
	// JournaledState lifetime (i.e. the transaction-original value SStore
	// needs for EIP-3529 refund accounting), distinct from Storage's
	// current working value.
	OriginalStorage map[evmtypes.Hash]*evmtypes.U256
	Touched         bool
	// Created is set when SetCode installs code on this account in the
	// current transaction. Reverting that SetCode restores the old code but
	// does not clear Created.
	Created        bool
	SelfDestructed bool
}

// SStoreResult mirrors the Host contract's sstore outcome: the triple of
// values needed to recompute EIP-3529 gas refunds, plus cold/warm status.
type SStoreResult struct {
	Original *evmtypes.U256
	Present  *evmtypes.U256
	New      *evmtypes.U256
	IsCold   bool
}

// SelfDestructResult mirrors the Host contract's selfdestruct outcome.
type SelfDestructResult struct {
	HadBalance           bool
	TargetExisted        bool
	IsCold               bool
	PreviouslyDestructed bool
}

// JournaledState is the transactional overlay of world state: accounts and
// storage mutate in memory, every mutation is journaled, and a checkpoint
// can be committed or reverted exactly.
type JournaledState struct {
	spec specid.SpecId

	accounts         map[evmtypes.Address]*Account
	transientStorage map[slotKey]*evmtypes.U256

	warmAddresses mapset.Set[evmtypes.Address]
	warmSlots     mapset.Set[slotKey]
	// preloaded is the subset of warmAddresses established before
	// execution began (precompiles, protocol-warm addresses) — these stay
	// warm across a revert.
	preloaded mapset.Set[evmtypes.Address]

	journal [][]JournalEntry
	depth   int

	codeCache *lru.Cache[evmtypes.Hash, []byte]
	logs      []*types.Log
}

// New constructs an empty JournaledState for the given hardfork.
func New(spec specid.SpecId) *JournaledState {
	cache, err := lru.New[evmtypes.Hash, []byte](CodeCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// CodeCacheSize never is.
		panic(err)
	}
	return &JournaledState{
		spec:             spec,
		accounts:         make(map[evmtypes.Address]*Account),
		transientStorage: make(map[slotKey]*evmtypes.U256),
		warmAddresses:    mapset.NewThreadUnsafeSet[evmtypes.Address](),
		warmSlots:        mapset.NewThreadUnsafeSet[slotKey](),
		preloaded:        mapset.NewThreadUnsafeSet[evmtypes.Address](),
		journal:          [][]JournalEntry{{}},
		codeCache:        cache,
	}
}

// Spec reports the hardfork this journaled state is operating under.
func (j *JournaledState) Spec() specid.SpecId { return j.spec }

// Depth reports the number of open checkpoints.
func (j *JournaledState) Depth() int { return j.depth }

// Logs returns the logs emitted so far (survivors of any reverted frames).
func (j *JournaledState) Logs() []*types.Log { return j.logs }

// SetWarmPreloadedAddresses seeds the pre-warmed address set (precompiles,
// and protocol-required addresses such as coinbase from Shanghai onward)
// before execution begins. These marks are not reversible — they are
// established outside any checkpoint window.
func (j *JournaledState) SetWarmPreloadedAddresses(addrs mapset.Set[evmtypes.Address]) {
	for addr := range addrs.Iter() {
		j.preloaded.Add(addr)
		j.warmAddresses.Add(addr)
	}
}

func (j *JournaledState) append(entry JournalEntry) {
	top := len(j.journal) - 1
	j.journal[top] = append(j.journal[top], entry)
}

// emptyAccountInfo returns the AccountInfo for an account absent from the
// database: zero nonce, zero balance, empty code hash.
func emptyAccountInfo() evmtypes.AccountInfo {
	return evmtypes.AccountInfo{Balance: uint256.NewInt(0), CodeHash: evmtypes.KeccakEmpty}
}

// ensureLoaded returns the in-memory Account for addr, loading it from the
// database on first reference within this JournaledState's lifetime. This
// is distinct from EIP-2929 warm/cold tracking, which LoadAccount layers on
// top.
func (j *JournaledState) ensureLoaded(addr evmtypes.Address, database db.Database) (*Account, error) {
	if acc, ok := j.accounts[addr]; ok {
		return acc, nil
	}
	info, err := database.Basic(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "loading account %x", addr)
	}
	var acc *Account
	if info == nil {
		base := emptyAccountInfo()
		acc = &Account{Info: base, Storage: make(map[evmtypes.Hash]*evmtypes.U256), OriginalStorage: make(map[evmtypes.Hash]*evmtypes.U256)}
	} else {
		acc = &Account{Info: *info, Storage: make(map[evmtypes.Hash]*evmtypes.U256), OriginalStorage: make(map[evmtypes.Hash]*evmtypes.U256)}
	}
	j.accounts[addr] = acc
	j.append(AccountCreatedEntry{Address: addr})
	return acc, nil
}

// LoadAccount ensures addr is present in the overlay and reports whether
// this is the first (cold) access within the current transaction.
func (j *JournaledState) LoadAccount(addr evmtypes.Address, database db.Database) (*Account, bool, error) {
	acc, err := j.ensureLoaded(addr, database)
	if err != nil {
		return nil, false, err
	}
	wasCold := !j.warmAddresses.Contains(addr)
	if wasCold {
		j.warmAddresses.Add(addr)
		j.append(AccountWarmedEntry{Address: addr})
	}
	return acc, wasCold, nil
}

// LoadCode is LoadAccount plus guaranteeing Info.Code is populated when
// CodeHash != KeccakEmpty, using the LRU code cache to avoid re-reading the
// database for a hash this JournaledState has already loaded.
func (j *JournaledState) LoadCode(addr evmtypes.Address, database db.Database) (*Account, bool, error) {
	acc, wasCold, err := j.LoadAccount(addr, database)
	if err != nil {
		return nil, false, err
	}
	if acc.Info.CodeHash == evmtypes.KeccakEmpty || acc.Info.Code != nil {
		return acc, wasCold, nil
	}
	if cached, ok := j.codeCache.Get(acc.Info.CodeHash); ok {
		acc.Info.Code = cached
		return acc, wasCold, nil
	}
	code, err := database.CodeByHash(acc.Info.CodeHash)
	if err != nil {
		return nil, false, errors.Wrapf(err, "loading code for %x", addr)
	}
	log.Debug("evmcore: code cache miss", "address", addr, "codeHash", acc.Info.CodeHash)
	acc.Info.Code = code
	j.codeCache.Add(acc.Info.CodeHash, code)
	return acc, wasCold, nil
}

// Touch marks addr as touched per EIP-161. A touched empty account is
// erased at transaction end by the caller that owns finalization.
func (j *JournaledState) Touch(addr evmtypes.Address) {
	acc, ok := j.accounts[addr]
	if !ok {
		return
	}
	if acc.Touched {
		return
	}
	j.append(AccountTouchedEntry{Address: addr, WasTouchedBefore: false})
	acc.Touched = true
}

// Transfer atomically debits from and credits to. It returns a non-nil
// InstructionResult (OutOfFunds) without moving any balance if the balance
// is insufficient; otherwise it returns (nil, nil) and appends a
// BalanceTransferEntry.
func (j *JournaledState) Transfer(from, to evmtypes.Address, value *evmtypes.U256, database db.Database) (*evmtypes.InstructionResult, error) {
	fromAcc, err := j.ensureLoaded(from, database)
	if err != nil {
		return nil, err
	}
	if value == nil || value.IsZero() {
		if _, err := j.ensureLoaded(to, database); err != nil {
			return nil, err
		}
		j.Touch(to)
		return nil, nil
	}
	if fromAcc.Info.Balance.Lt(value) {
		outOfFunds := evmtypes.OutOfFunds
		return &outOfFunds, nil
	}
	toAcc, err := j.ensureLoaded(to, database)
	if err != nil {
		return nil, err
	}
	fromAcc.Info.Balance.Sub(fromAcc.Info.Balance, value)
	toAcc.Info.Balance.Add(toAcc.Info.Balance, value)
	j.append(BalanceTransferEntry{From: from, To: to, Value: new(evmtypes.U256).Set(value)})
	log.Debug("evmcore: balance change", "reason", tracing.BalanceChangeCallValue, "from", from, "to", to, "value", value)
	j.Touch(from)
	j.Touch(to)
	return nil, nil
}

// SLoad reads a storage slot, reporting whether this is the first (cold)
// access to that slot within the current transaction.
func (j *JournaledState) SLoad(addr evmtypes.Address, key evmtypes.Hash, database db.Database) (*evmtypes.U256, bool, error) {
	acc, err := j.ensureLoaded(addr, database)
	if err != nil {
		return nil, false, err
	}
	value, ok := acc.Storage[key]
	if !ok {
		v, err := database.Storage(addr, key)
		if err != nil {
			return nil, false, errors.Wrapf(err, "loading storage %x/%x", addr, key)
		}
		if v == nil {
			v = uint256.NewInt(0)
		}
		value = v
		acc.Storage[key] = value
		acc.OriginalStorage[key] = new(evmtypes.U256).Set(v)
	}
	sk := slotKey{addr, key}
	wasCold := !j.warmSlots.Contains(sk)
	if wasCold {
		j.warmSlots.Add(sk)
		j.append(StorageWarmedEntry{Address: addr, Key: key})
	}
	return value, wasCold, nil
}

// SStore writes a storage slot, returning the (original, present, new)
// triple a caller needs to recompute gas refunds.
func (j *JournaledState) SStore(addr evmtypes.Address, key evmtypes.Hash, newValue *evmtypes.U256, database db.Database) (*SStoreResult, error) {
	_, wasCold, err := j.SLoad(addr, key, database)
	if err != nil {
		return nil, err
	}
	acc := j.accounts[addr]
	original := acc.OriginalStorage[key]
	present := acc.Storage[key]
	j.append(StorageChangedEntry{Address: addr, Key: key, PreviousValue: present})
	acc.Storage[key] = newValue
	return &SStoreResult{
		Original: new(evmtypes.U256).Set(original),
		Present:  new(evmtypes.U256).Set(present),
		New:      new(evmtypes.U256).Set(newValue),
		IsCold:   wasCold,
	}, nil
}

// TLoad reads a transient storage slot (EIP-1153); unset slots read as
// zero and are never persisted.
func (j *JournaledState) TLoad(addr evmtypes.Address, key evmtypes.Hash) *evmtypes.U256 {
	if v, ok := j.transientStorage[slotKey{addr, key}]; ok {
		return new(evmtypes.U256).Set(v)
	}
	return uint256.NewInt(0)
}

// TStore writes a transient storage slot.
func (j *JournaledState) TStore(addr evmtypes.Address, key evmtypes.Hash, value *evmtypes.U256) {
	sk := slotKey{addr, key}
	previous, ok := j.transientStorage[sk]
	if !ok {
		previous = uint256.NewInt(0)
	}
	j.append(TransientStorageChangedEntry{Address: addr, Key: key, PreviousValue: previous})
	j.transientStorage[sk] = value
}

// SetCode installs code on addr, used by CREATE/CREATE2 completion.
func (j *JournaledState) SetCode(addr evmtypes.Address, codeHash evmtypes.Hash, code []byte) {
	acc, ok := j.accounts[addr]
	if !ok {
		return
	}
	j.append(CodeChangedEntry{Address: addr, OldCodeHash: acc.Info.CodeHash, OldCode: acc.Info.Code})
	acc.Info.CodeHash = codeHash
	acc.Info.Code = code
	acc.Created = true
}

// SetNonce overwrites addr's nonce, journaling the previous value.
func (j *JournaledState) SetNonce(addr evmtypes.Address, nonce uint64) {
	acc, ok := j.accounts[addr]
	if !ok {
		return
	}
	j.append(NonceChangedEntry{Address: addr, OldNonce: acc.Info.Nonce})
	log.Debug("evmcore: nonce change", "reason", tracing.NonceChangeContractCreator, "address", addr, "nonce", nonce)
	acc.Info.Nonce = nonce
}

// SelfDestruct moves addr's entire balance to target and marks it
// destructed, reporting the information the Host contract exposes to
// callers (e.g. for gas refund bookkeeping pre-London).
func (j *JournaledState) SelfDestruct(addr, target evmtypes.Address, database db.Database) (*SelfDestructResult, error) {
	acc, err := j.ensureLoaded(addr, database)
	if err != nil {
		return nil, err
	}
	targetAcc, wasCold, err := j.LoadAccount(target, database)
	if err != nil {
		return nil, err
	}
	hadBalance := !acc.Info.Balance.IsZero()
	wasAlready := acc.SelfDestructed
	value := new(evmtypes.U256).Set(acc.Info.Balance)
	j.append(AccountDestroyedEntry{
		Address:              addr,
		Target:               target,
		Value:                value,
		WasAlreadyDestructed: wasAlready,
		HadBalance:           hadBalance,
	})
	if hadBalance && addr != target {
		acc.Info.Balance.Clear()
		targetAcc.Info.Balance.Add(targetAcc.Info.Balance, value)
		log.Debug("evmcore: balance change", "reason", tracing.BalanceChangeSelfDestruct, "from", addr, "to", target, "value", value)
	}
	acc.SelfDestructed = true
	j.Touch(target)
	return &SelfDestructResult{
		HadBalance:           hadBalance,
		TargetExisted:        true,
		IsCold:               wasCold,
		PreviouslyDestructed: wasAlready,
	}, nil
}

// Log appends an emitted log. Reverting the checkpoint this was emitted
// under drops it; logs are never reordered or re-buffered.
func (j *JournaledState) Log(entry *types.Log) {
	j.logs = append(j.logs, entry)
	j.append(LogAddedEntry{})
}

// Checkpoint records the current position as a rollback point and opens a
// new journal frame.
func (j *JournaledState) Checkpoint() evmtypes.JournalCheckpoint {
	cp := evmtypes.JournalCheckpoint{JournalIndex: len(j.journal), Depth: j.depth}
	j.journal = append(j.journal, []JournalEntry{})
	j.depth++
	return cp
}

// CheckpointCommit merges the top-of-stack journal frame into the
// enclosing one (or discards it if there is no enclosing frame, i.e. this
// was the outermost checkpoint). Warm-access state persists upward either
// way, since it lives outside the journal frames.
func (j *JournaledState) CheckpointCommit() {
	top := len(j.journal) - 1
	if top < 1 {
		// Only the base frame is left: there is no open checkpoint to
		// commit, and popping the base would orphan later appends.
		return
	}
	entries := j.journal[top]
	j.journal = j.journal[:top]
	j.journal[top-1] = append(j.journal[top-1], entries...)
	if j.depth > 0 {
		j.depth--
	}
}

// CheckpointRevert pops journal frames down to cp, inverting each entry in
// LIFO order so the overlay becomes byte-identical to its state
// immediately before cp was taken.
func (j *JournaledState) CheckpointRevert(cp evmtypes.JournalCheckpoint) {
	for len(j.journal) > cp.JournalIndex {
		top := len(j.journal) - 1
		frame := j.journal[top]
		j.journal = j.journal[:top]
		for i := len(frame) - 1; i >= 0; i-- {
			frame[i].revert(j)
		}
	}
	if len(j.journal) == 0 {
		j.journal = [][]JournalEntry{{}}
	}
	j.depth = cp.Depth
}
