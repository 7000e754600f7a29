// Package l2 defines a secondary spec registry for OP-stack-style L2
// chains, which insert additional hardforks between canonical L1
// activations and need a lossy mapping back onto the L1 registry for any
// table that only knows L1 semantics.
package l2

import "github.com/go-ethevm/evmcore/specid"

// SpecId identifies an L2 hardfork. Numbering interleaves with the L1
// registry's ordering so Enabled keeps working as a plain comparison.
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
	Bedrock         SpecId = 16
	Regolith        SpecId = 17
	Shanghai        SpecId = 18
	Canyon          SpecId = 19
	Cancun          SpecId = 20
	Ecotone         SpecId = 21
	Prague          SpecId = 22
	Latest          SpecId = 255
)

// Enabled reports whether `other`'s rules are active under `our` L2 spec.
func Enabled(our, other SpecId) bool {
	return our >= other
}

// ToL1 maps an L2 SpecId onto the L1 SpecId whose EVM-level behavior it
// shares. The mapping is lossy: Bedrock and Regolith both collapse onto
// Merge, Canyon onto Shanghai, Ecotone onto Cancun. Latest intentionally
// maps to specid.Latest rather than a frozen L2 fork, so a table indexed
// by specid.SpecId keeps tracking the newest L1 fork as new ones are
// added.
func (s SpecId) ToL1() specid.SpecId {
	switch s {
	case Frontier:
		return specid.Frontier
	case FrontierThawing:
		return specid.FrontierThawing
	case Homestead:
		return specid.Homestead
	case DaoFork:
		return specid.DaoFork
	case Tangerine:
		return specid.Tangerine
	case SpuriousDragon:
		return specid.SpuriousDragon
	case Byzantium:
		return specid.Byzantium
	case Constantinople:
		return specid.Constantinople
	case Petersburg:
		return specid.Petersburg
	case Istanbul:
		return specid.Istanbul
	case MuirGlacier:
		return specid.MuirGlacier
	case Berlin:
		return specid.Berlin
	case London:
		return specid.London
	case ArrowGlacier:
		return specid.ArrowGlacier
	case GrayGlacier:
		return specid.GrayGlacier
	case Merge, Bedrock, Regolith:
		return specid.Merge
	case Shanghai, Canyon:
		return specid.Shanghai
	case Cancun, Ecotone:
		return specid.Cancun
	case Prague:
		return specid.Prague
	case Latest:
		return specid.Latest
	default:
		return specid.Latest
	}
}

func (s SpecId) String() string {
	switch s {
	case Bedrock:
		return "Bedrock"
	case Regolith:
		return "Regolith"
	case Canyon:
		return "Canyon"
	case Ecotone:
		return "Ecotone"
	case Latest:
		return "Latest"
	default:
		return s.ToL1().String()
	}
}

// Parse converts a canonical name into an L2 SpecId, falling through to the
// L1 names for forks the L2 registry does not redefine.
func Parse(name string) SpecId {
	switch name {
	case "Bedrock":
		return Bedrock
	case "Regolith":
		return Regolith
	case "Canyon":
		return Canyon
	case "Ecotone":
		return Ecotone
	default:
		l1 := specid.Parse(name)
		if l1 == specid.Latest && name != "Latest" {
			return Latest
		}
		return fromL1(l1)
	}
}

func fromL1(id specid.SpecId) SpecId {
	switch id {
	case specid.Frontier:
		return Frontier
	case specid.FrontierThawing:
		return FrontierThawing
	case specid.Homestead:
		return Homestead
	case specid.DaoFork:
		return DaoFork
	case specid.Tangerine:
		return Tangerine
	case specid.SpuriousDragon:
		return SpuriousDragon
	case specid.Byzantium:
		return Byzantium
	case specid.Constantinople:
		return Constantinople
	case specid.Petersburg:
		return Petersburg
	case specid.Istanbul:
		return Istanbul
	case specid.MuirGlacier:
		return MuirGlacier
	case specid.Berlin:
		return Berlin
	case specid.London:
		return London
	case specid.ArrowGlacier:
		return ArrowGlacier
	case specid.GrayGlacier:
		return GrayGlacier
	case specid.Merge:
		return Merge
	case specid.Shanghai:
		return Shanghai
	case specid.Cancun:
		return Cancun
	case specid.Prague:
		return Prague
	default:
		return Latest
	}
}
