// Package tracing names the reasons a balance or nonce changed, so logging
// and downstream tracers can distinguish a CALL value transfer from a
// SELFDESTRUCT sweep or a CREATE nonce bump without re-deriving it from the
// call stack.
package tracing

// BalanceChangeReason is a description of the reason why a balance was changed.
type BalanceChangeReason int

const (
	BalanceChangeUnspecified BalanceChangeReason = iota
	BalanceChangeCallValue
	BalanceChangeCreateValue
	BalanceChangeSelfDestruct
	BalanceChangePrecompileCost
)

// String returns a human-readable string for the reason.
func (r BalanceChangeReason) String() string {
	switch r {
	case BalanceChangeUnspecified:
		return "unspecified"
	case BalanceChangeCallValue:
		return "call_value"
	case BalanceChangeCreateValue:
		return "create_value"
	case BalanceChangeSelfDestruct:
		return "selfdestruct"
	case BalanceChangePrecompileCost:
		return "precompile_cost"
	}
	return "unknown"
}

// NonceChangeReason is a description of the reason why a nonce was changed.
type NonceChangeReason int

const (
	NonceChangeUnspecified NonceChangeReason = iota
	NonceChangeContractCreator
)

// String returns a human-readable string for the reason.
func (r NonceChangeReason) String() string {
	switch r {
	case NonceChangeUnspecified:
		return "unspecified"
	case NonceChangeContractCreator:
		return "contract_creator"
	}
	return "unknown"
}
