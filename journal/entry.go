package journal

import "github.com/go-ethevm/evmcore/evmtypes"

// JournalEntry is an atomic, self-inverting mutation record. Each entry
// carries exactly the data needed to undo itself; CheckpointRevert replays
// a checkpoint's entries in LIFO order by calling revert on each.
type JournalEntry interface {
	revert(j *JournaledState)
}

// AccountWarmedEntry records the first (cold) access to an account within
// the current checkpoint window.
type AccountWarmedEntry struct {
	Address evmtypes.Address
}

func (e AccountWarmedEntry) revert(j *JournaledState) {
	// Pre-warmed addresses (precompiles, post-Shanghai coinbase) stay warm
	// across revert; only genuinely newly-warmed addresses are undone.
	if !j.preloaded.Contains(e.Address) {
		j.warmAddresses.Remove(e.Address)
	}
}

// StorageWarmedEntry records the first (cold) access to a storage slot
// within the current checkpoint window.
type StorageWarmedEntry struct {
	Address evmtypes.Address
	Key     evmtypes.Hash
}

func (e StorageWarmedEntry) revert(j *JournaledState) {
	j.warmSlots.Remove(slotKey{e.Address, e.Key})
}

// AccountTouchedEntry records a transition of an account's touched flag
// (EIP-161).
type AccountTouchedEntry struct {
	Address          evmtypes.Address
	WasTouchedBefore bool
}

func (e AccountTouchedEntry) revert(j *JournaledState) {
	if acc, ok := j.accounts[e.Address]; ok {
		acc.Touched = e.WasTouchedBefore
	}
}

// AccountCreatedEntry records that an account had no prior entry in the
// overlay and was materialized by this checkpoint window (e.g. the target
// of a CREATE, or an account touched for the first time by a transfer).
type AccountCreatedEntry struct {
	Address evmtypes.Address
}

func (e AccountCreatedEntry) revert(j *JournaledState) {
	delete(j.accounts, e.Address)
}

// BalanceTransferEntry records a value movement between two accounts.
type BalanceTransferEntry struct {
	From  evmtypes.Address
	To    evmtypes.Address
	Value *evmtypes.U256
}

func (e BalanceTransferEntry) revert(j *JournaledState) {
	if from, ok := j.accounts[e.From]; ok {
		from.Info.Balance.Add(from.Info.Balance, e.Value)
	}
	if to, ok := j.accounts[e.To]; ok {
		to.Info.Balance.Sub(to.Info.Balance, e.Value)
	}
}

// NonceChangedEntry records a nonce bump (contract creation, CREATE sender
// increment).
type NonceChangedEntry struct {
	Address  evmtypes.Address
	OldNonce uint64
}

func (e NonceChangedEntry) revert(j *JournaledState) {
	if acc, ok := j.accounts[e.Address]; ok {
		acc.Info.Nonce = e.OldNonce
	}
}

// CodeChangedEntry records a code deployment (CREATE/CREATE2 completion).
type CodeChangedEntry struct {
	Address     evmtypes.Address
	OldCodeHash evmtypes.Hash
	OldCode     []byte
}

func (e CodeChangedEntry) revert(j *JournaledState) {
	if acc, ok := j.accounts[e.Address]; ok {
		acc.Info.CodeHash = e.OldCodeHash
		acc.Info.Code = e.OldCode
	}
}

// StorageChangedEntry records a write to a storage slot, carrying the
// value the slot held immediately before this write (not the
// transaction-original value, so a chain of writes-then-reverts within one
// checkpoint unwinds correctly in LIFO order).
type StorageChangedEntry struct {
	Address       evmtypes.Address
	Key           evmtypes.Hash
	PreviousValue *evmtypes.U256
}

func (e StorageChangedEntry) revert(j *JournaledState) {
	if acc, ok := j.accounts[e.Address]; ok {
		acc.Storage[e.Key] = e.PreviousValue
	}
}

// TransientStorageChangedEntry records a write to transient storage
// (EIP-1153), which is scoped to the transaction and reverts like any
// other journal entry (unlike persistent storage, it is never committed to
// the database).
type TransientStorageChangedEntry struct {
	Address       evmtypes.Address
	Key           evmtypes.Hash
	PreviousValue *evmtypes.U256
}

func (e TransientStorageChangedEntry) revert(j *JournaledState) {
	j.transientStorage[slotKey{e.Address, e.Key}] = e.PreviousValue
}

// AccountDestroyedEntry records a SELFDESTRUCT: the balance moved to the
// beneficiary and whether the account was already marked destructed.
type AccountDestroyedEntry struct {
	Address              evmtypes.Address
	Target               evmtypes.Address
	Value                *evmtypes.U256
	WasAlreadyDestructed bool
	HadBalance           bool
}

func (e AccountDestroyedEntry) revert(j *JournaledState) {
	if acc, ok := j.accounts[e.Address]; ok {
		acc.SelfDestructed = e.WasAlreadyDestructed
		if e.HadBalance {
			acc.Info.Balance.Add(acc.Info.Balance, e.Value)
		}
	}
	if target, ok := j.accounts[e.Target]; ok && e.HadBalance {
		target.Info.Balance.Sub(target.Info.Balance, e.Value)
	}
}

// LogAddedEntry records a log emission; revert drops the most recently
// appended log. Reverted logs are dropped outright, never buffered for
// re-emission.
type LogAddedEntry struct{}

func (e LogAddedEntry) revert(j *JournaledState) {
	if n := len(j.logs); n > 0 {
		j.logs = j.logs[:n-1]
	}
}
