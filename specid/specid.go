// Package specid defines the totally-ordered enumeration of Ethereum
// hardforks consumed throughout the engine to select pricing and behavior
// tables without runtime branching in hot paths.
package specid

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// SpecId identifies a hardfork. Ordering matches activation order, so
// Enabled(our, other) reduces to a plain integer comparison.
type SpecId uint8

const (
	Frontier        SpecId = 0
	FrontierThawing SpecId = 1
	Homestead       SpecId = 2
	DaoFork         SpecId = 3
	Tangerine       SpecId = 4
	SpuriousDragon  SpecId = 5
	Byzantium       SpecId = 6
	Constantinople  SpecId = 7
	Petersburg      SpecId = 8
	Istanbul        SpecId = 9
	MuirGlacier     SpecId = 10
	Berlin          SpecId = 11
	London          SpecId = 12
	ArrowGlacier    SpecId = 13
	GrayGlacier     SpecId = 14
	Merge           SpecId = 15
	Shanghai        SpecId = 16
	Cancun          SpecId = 17
	Prague          SpecId = 18
	// Latest always sorts after every named fork; new hardforks are
	// inserted above, never renumbering Latest itself.
	Latest SpecId = 255
)

// Enabled reports whether `other`'s rules are active under `our` spec.
// It compares the raw ids; the carrier collapse that Specialize applies
// (see collapse() below) plays no part here.
func Enabled(our, other SpecId) bool {
	return our >= other
}

// String returns the canonical display name. Names are case-sensitive and
// match the Ethereum execution-specs project's naming.
func (s SpecId) String() string {
	switch s {
	case Frontier:
		return "Frontier"
	case FrontierThawing:
		return "Frontier Thawing"
	case Homestead:
		return "Homestead"
	case DaoFork:
		return "DAO Fork"
	case Tangerine:
		return "Tangerine"
	case SpuriousDragon:
		return "Spurious"
	case Byzantium:
		return "Byzantium"
	case Constantinople:
		return "Constantinople"
	case Petersburg:
		return "Petersburg"
	case Istanbul:
		return "Istanbul"
	case MuirGlacier:
		return "MuirGlacier"
	case Berlin:
		return "Berlin"
	case London:
		return "London"
	case ArrowGlacier:
		return "Arrow Glacier"
	case GrayGlacier:
		return "Gray Glacier"
	case Merge:
		return "Merge"
	case Shanghai:
		return "Shanghai"
	case Cancun:
		return "Cancun"
	case Prague:
		return "Prague"
	case Latest:
		return "Latest"
	default:
		return "Latest"
	}
}

// Parse converts a canonical display name back into a SpecId. The match is
// case-sensitive; an unrecognized name collapses to Latest.
func Parse(name string) SpecId {
	switch name {
	case "Frontier":
		return Frontier
	case "Frontier Thawing":
		return FrontierThawing
	case "Homestead":
		return Homestead
	case "DAO Fork":
		return DaoFork
	case "Tangerine":
		return Tangerine
	case "Spurious":
		return SpuriousDragon
	case "Byzantium":
		return Byzantium
	case "Constantinople":
		return Constantinople
	case "Petersburg":
		return Petersburg
	case "Istanbul":
		return Istanbul
	case "MuirGlacier":
		return MuirGlacier
	case "Berlin":
		return Berlin
	case "London":
		return London
	case "Arrow Glacier":
		return ArrowGlacier
	case "Gray Glacier":
		return GrayGlacier
	case "Merge":
		return Merge
	case "Shanghai":
		return Shanghai
	case "Cancun":
		return Cancun
	case "Prague":
		return Prague
	case "Latest":
		return Latest
	default:
		return Latest
	}
}

// TryFromUint8 returns the SpecId for a raw byte, or false for a value that
// does not name a known fork (including gaps left for future forks).
func TryFromUint8(v uint8) (SpecId, bool) {
	switch SpecId(v) {
	case Frontier, FrontierThawing, Homestead, DaoFork, Tangerine, SpuriousDragon,
		Byzantium, Constantinople, Petersburg, Istanbul, MuirGlacier, Berlin,
		London, ArrowGlacier, GrayGlacier, Merge, Shanghai, Cancun, Prague, Latest:
		return SpecId(v), true
	default:
		return 0, false
	}
}

// collapse maps a SpecId onto the carrier that actually governs its EVM
// semantics. Several hardforks introduced no EVM-level change and share
// their predecessor's table.
func collapse(id SpecId) SpecId {
	switch id {
	case FrontierThawing:
		return Frontier
	case DaoFork:
		return Homestead
	case MuirGlacier:
		return Istanbul
	case ArrowGlacier, GrayGlacier:
		return London
	case Constantinople:
		return Petersburg
	default:
		return id
	}
}

// Specialize evaluates a per-hardfork table lookup: the compile-time
// carrier-type specialization that the source implements via generics is
// realized here as a plain map keyed by the collapsed SpecId, since Go has
// no const-generic carrier types to bind at compile time. Callers build the
// table once (e.g. package-level var) and look it up per call; the map
// lookup itself never branches on individual EIP flags.
func Specialize[T any](id SpecId, table map[SpecId]T) T {
	key := collapse(id)
	if v, ok := table[key]; ok {
		return v
	}
	// Fall back to the nearest earlier entry so a table that only lists
	// forks where behavior changed still resolves for later forks.
	var best SpecId
	var bestSet bool
	for k := range table {
		if k <= key && (!bestSet || k > best) {
			best = k
			bestSet = true
		}
	}
	if bestSet {
		return table[best]
	}
	var zero T
	return zero
}

// FromChainConfig derives the active SpecId from a go-ethereum chain
// configuration at the given block number and timestamp. Generalizes
// core/vm's SpecID helper from a raw uint8 return into named constants.
func FromChainConfig(cfg *params.ChainConfig, blockNumber uint64, blockTime uint64) SpecId {
	bn := new(big.Int).SetUint64(blockNumber)
	switch {
	case cfg.IsPrague(bn, blockTime):
		return Prague
	case cfg.IsCancun(bn, blockTime):
		return Cancun
	case cfg.IsShanghai(bn, blockTime):
		return Shanghai
	case cfg.IsLondon(bn):
		if cfg.IsGrayGlacier(bn) {
			return GrayGlacier
		}
		if cfg.IsArrowGlacier(bn) {
			return ArrowGlacier
		}
		return London
	case cfg.IsBerlin(bn):
		return Berlin
	case cfg.IsIstanbul(bn):
		if cfg.IsMuirGlacier(bn) {
			return MuirGlacier
		}
		return Istanbul
	case cfg.IsPetersburg(bn):
		return Petersburg
	case cfg.IsConstantinople(bn):
		return Constantinople
	case cfg.IsByzantium(bn):
		return Byzantium
	case cfg.IsEIP158(bn):
		return SpuriousDragon
	case cfg.IsEIP150(bn):
		return Tangerine
	case cfg.DAOForkSupport && cfg.DAOForkBlock != nil && bn.Cmp(cfg.DAOForkBlock) >= 0:
		return DaoFork
	case cfg.IsHomestead(bn):
		return Homestead
	default:
		return Frontier
	}
}
