package l2

import (
	"testing"

	"github.com/go-ethevm/evmcore/specid"
	"github.com/stretchr/testify/assert"
)

func TestBedrockEnabledInMergeNotShanghai(t *testing.T) {
	assert.True(t, Enabled(Bedrock, Merge))
	assert.False(t, Enabled(Bedrock, Shanghai))
}

func TestEcotoneEnabledInCancunNotLatest(t *testing.T) {
	assert.True(t, Enabled(Ecotone, Cancun))
	assert.False(t, Enabled(Ecotone, Latest))
}

func TestToL1Mapping(t *testing.T) {
	cases := map[SpecId]specid.SpecId{
		Bedrock:  specid.Merge,
		Regolith: specid.Merge,
		Canyon:   specid.Shanghai,
		Ecotone:  specid.Cancun,
		Latest:   specid.Latest,
		London:   specid.London,
	}
	for l2id, want := range cases {
		assert.Equal(t, want, l2id.ToL1(), "%s.ToL1()", l2id)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []SpecId{Bedrock, Regolith, Canyon, Ecotone, London, Latest} {
		assert.Equal(t, s, Parse(s.String()))
	}
}
